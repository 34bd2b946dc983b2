package acceleration

import "time"

// HistorySize is the number of inter-press intervals averaged.
const HistorySize = 5

// history is a fixed ring of the most recent inter-press intervals.
type history struct {
	intervals [HistorySize]time.Duration
	index     int
	fill      int
}

func (this *history) add(v time.Duration) {
	this.intervals[this.index] = v
	this.index = (this.index + 1) % HistorySize
	if this.fill < HistorySize {
		this.fill++
	}
}

func (this *history) len() int {
	return this.fill
}

// meanMillis returns the mean of the recorded intervals in milliseconds or
// fallback if nothing was recorded yet.
func (this *history) meanMillis(fallback time.Duration) float64 {
	if this.fill == 0 {
		return millis(fallback)
	}
	var sum time.Duration
	for _, v := range this.intervals[:this.fill] {
		sum += v
	}
	return millis(sum) / float64(this.fill)
}

func (this *history) reset() {
	*this = history{}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
