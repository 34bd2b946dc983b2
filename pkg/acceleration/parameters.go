package acceleration

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/blaubaer/focus-volume/pkg/common"
)

const (
	DefaultBaseIncrement = float32(0.01)
	DefaultMinMultiplier = float32(1.0)
	DefaultMaxMultiplier = float32(15.0)
	DefaultDecayRate     = float32(0.016)

	// DefaultIdleGap is the spacing from which on a press starts a new burst.
	DefaultIdleGap = time.Second
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func NewParameters() Parameters {
	return Parameters{
		DefaultBaseIncrement,
		DefaultMinMultiplier,
		DefaultMaxMultiplier,
		DefaultDecayRate,
		DefaultIdleGap,
	}
}

type Parameters struct {
	BaseIncrement float32       `yaml:"baseIncrement" validate:"gt=0,lte=1"`
	MinMultiplier float32       `yaml:"minMultiplier" validate:"gt=0"`
	MaxMultiplier float32       `yaml:"maxMultiplier" validate:"gtefield=MinMultiplier"`
	DecayRate     float32       `yaml:"decayRate" validate:"gt=0"`
	IdleGap       time.Duration `yaml:"idleGap" validate:"gt=0"`
}

func (this *Parameters) SetupConfiguration(using common.FlagHolder) {
	using.Flag("acceleration.baseIncrement", "Volume step of a single isolated key press (0..1].").
		Envar("FV_ACCELERATION_BASE_INCREMENT").
		Float32Var(&this.BaseIncrement)
	using.Flag("acceleration.minMultiplier", "Smallest multiplier applied to the base increment.").
		Envar("FV_ACCELERATION_MIN_MULTIPLIER").
		Float32Var(&this.MinMultiplier)
	using.Flag("acceleration.maxMultiplier", "Largest multiplier applied to the base increment while a key is held.").
		Envar("FV_ACCELERATION_MAX_MULTIPLIER").
		Float32Var(&this.MaxMultiplier)
	using.Flag("acceleration.decayRate", "How fast the multiplier decays per millisecond between two presses.").
		Envar("FV_ACCELERATION_DECAY_RATE").
		Float32Var(&this.DecayRate)
	using.Flag("acceleration.idleGap", "Gap between two presses after which a new burst starts.").
		Envar("FV_ACCELERATION_IDLE_GAP").
		DurationVar(&this.IdleGap)
}

// Validate reports every violated constraint wrapped in
// common.ErrInvalidParameter.
func (this Parameters) Validate() error {
	err := validate.Struct(this)
	if err == nil {
		return nil
	}
	ves, ok := common.AsError[validator.ValidationErrors](err)
	if !ok {
		return fmt.Errorf("%w: %v", common.ErrInvalidParameter, err)
	}
	msgs := make([]string, len(ves))
	for i, fe := range ves {
		msgs[i] = formatViolation(fe)
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidParameter, strings.Join(msgs, "; "))
}

func formatViolation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation '%s'", fe.Field(), fe.Tag())
	}
}
