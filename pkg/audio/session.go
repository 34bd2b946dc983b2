package audio

import (
	"fmt"
	"iter"
)

// Control is the provider side of a single audio session. Levels are linear
// attenuation factors in [0,1].
type Control interface {
	Volume() (float32, error)
	SetVolume(float32) error
	Mute() (bool, error)
	SetMute(bool) error

	// Release frees the underlying handle. The Control must not be used
	// afterward.
	Release() error
}

// Session is a per-application audio stream on the default render endpoint.
// It is borrowed for a single key event and released afterward.
type Session struct {
	Pid     uint32
	Control Control
}

func (this *Session) String() string {
	return fmt.Sprintf("session(pid=%d)", this.Pid)
}

func (this *Session) Release() error {
	if this == nil || this.Control == nil {
		return nil
	}
	return this.Control.Release()
}

// Provider enumerates the sessions of the default render endpoint. Every
// yielded session must be released by the consumer. The order is only
// stable for one enumeration.
type Provider interface {
	Sessions() iter.Seq2[*Session, error]
}

// ProviderFunc adapts a plain function to a Provider.
type ProviderFunc func() iter.Seq2[*Session, error]

func (this ProviderFunc) Sessions() iter.Seq2[*Session, error] {
	return this()
}
