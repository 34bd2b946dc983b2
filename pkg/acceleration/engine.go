package acceleration

import (
	"fmt"
	"math"
	"sync"
	"time"

	log "github.com/echocat/slf4g"
)

// firstPressSentinel is the elapsed time assumed for a press without a
// predecessor.
const firstPressSentinel = time.Second

// Engine converts the spacing of consecutive key presses into a volume
// increment. Fast repeats are boosted towards MaxMultiplier, isolated
// presses get MinMultiplier.
type Engine struct {
	params Parameters
	clock  func() time.Time

	lastPress time.Time
	pressed   bool
	history   history

	mutex sync.Mutex
}

func NewEngine(params Parameters) (*Engine, error) {
	return NewEngineWithClock(params, time.Now)
}

func NewEngineWithClock(params Parameters, clock func() time.Time) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		params: params,
		clock:  clock,
	}, nil
}

// Step is the outcome of a single press.
type Step struct {
	Elapsed    time.Duration
	Average    float64
	Samples    int
	Multiplier float32
	Increment  float32
}

// Next records a press at the current time and returns the increment to
// apply for it.
func (this *Engine) Next() float32 {
	now := this.clock()

	this.mutex.Lock()
	step := this.next(now)
	this.mutex.Unlock()

	log.With("elapsed", step.Elapsed).
		With("average", fmt.Sprintf("%.1fms", step.Average)).
		With("samples", step.Samples).
		With("multiplier", fmt.Sprintf("%.2f", step.Multiplier)).
		With("increment", step.Increment).
		Debug("Acceleration calculated.")

	return step.Increment
}

func (this *Engine) next(now time.Time) Step {
	p := this.params

	elapsed, idle := firstPressSentinel, true
	if this.pressed {
		elapsed = max(now.Sub(this.lastPress), 0)
		idle = elapsed >= p.IdleGap
	}
	this.lastPress = now
	this.pressed = true

	if idle {
		this.history.reset()
	} else {
		this.history.add(elapsed)
	}

	avg := this.history.meanMillis(elapsed)
	multiplier := p.multiplierFor(avg)

	return Step{
		Elapsed:    elapsed,
		Average:    avg,
		Samples:    this.history.len(),
		Multiplier: multiplier,
		Increment:  p.BaseIncrement * multiplier,
	}
}

func (this Parameters) multiplierFor(avgMillis float64) float32 {
	v := float64(this.MaxMultiplier) * math.Exp(-float64(this.DecayRate)*avgMillis)
	v = max(v, float64(this.MinMultiplier))
	v = min(v, float64(this.MaxMultiplier))
	return float32(v)
}

// Reset forgets the last press and all recorded intervals.
func (this *Engine) Reset() {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.pressed = false
	this.lastPress = time.Time{}
	this.history.reset()
}

func (this *Engine) Parameters() Parameters {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.params
}

// SetParameters replaces all parameters. They take effect with the next
// press; the recorded history is kept.
func (this *Engine) SetParameters(v Parameters) error {
	if err := v.Validate(); err != nil {
		return err
	}

	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.params = v
	return nil
}

func (this *Engine) SetAccelerationParameters(maxMultiplier, minMultiplier, decay float32) error {
	return this.update(func(p *Parameters) {
		p.MaxMultiplier = maxMultiplier
		p.MinMultiplier = minMultiplier
		p.DecayRate = decay
	})
}

func (this *Engine) SetBaseIncrement(v float32) error {
	return this.update(func(p *Parameters) {
		p.BaseIncrement = v
	})
}

func (this *Engine) update(mod func(*Parameters)) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	buf := this.params
	mod(&buf)
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("cannot update acceleration parameters: %w", err)
	}
	this.params = buf
	return nil
}

