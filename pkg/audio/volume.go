package audio

import (
	"fmt"

	"github.com/blaubaer/focus-volume/pkg/common"
)

const (
	MinLevel = float32(0)
	MaxLevel = float32(1)
)

// Clamp limits v to [MinLevel, MaxLevel].
func Clamp(v float32) float32 {
	return min(max(v, MinLevel), MaxLevel)
}

func (this *Session) Volume() (float32, error) {
	v, err := this.Control.Volume()
	if err != nil {
		return 0, fmt.Errorf("%w: cannot get volume of %v: %w", common.ErrProvider, this, err)
	}
	return v, nil
}

// SetVolume passes v as is to the provider, which rejects values outside of
// [0,1]. Use Clamp before.
func (this *Session) SetVolume(v float32) error {
	if err := this.Control.SetVolume(v); err != nil {
		return fmt.Errorf("%w: cannot set volume of %v to %.3f: %w", common.ErrProvider, this, v, err)
	}
	return nil
}

func (this *Session) Mute() (bool, error) {
	v, err := this.Control.Mute()
	if err != nil {
		return false, fmt.Errorf("%w: cannot get mute state of %v: %w", common.ErrProvider, this, err)
	}
	return v, nil
}

func (this *Session) SetMute(v bool) error {
	if err := this.Control.SetMute(v); err != nil {
		return fmt.Errorf("%w: cannot set mute state of %v to %v: %w", common.ErrProvider, this, v, err)
	}
	return nil
}

// ToggleMute reads the mute state and writes its negation. A change made by
// someone else in between is overwritten.
func (this *Session) ToggleMute() (muted bool, _ error) {
	current, err := this.Mute()
	if err != nil {
		return false, err
	}
	if err := this.SetMute(!current); err != nil {
		return current, err
	}
	return !current, nil
}

// Increment raises the volume by delta and returns the applied level.
func (this *Session) Increment(delta float32) (float32, error) {
	return this.adjust(delta)
}

// Decrement lowers the volume by delta and returns the applied level.
func (this *Session) Decrement(delta float32) (float32, error) {
	return this.adjust(-delta)
}

// adjust is a read followed by a write; last writer wins.
func (this *Session) adjust(delta float32) (float32, error) {
	current, err := this.Volume()
	if err != nil {
		return 0, err
	}
	next := Clamp(current + delta)
	if err := this.SetVolume(next); err != nil {
		return current, err
	}
	return next, nil
}
