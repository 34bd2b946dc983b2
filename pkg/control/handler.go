package control

import (
	"fmt"

	"github.com/blaubaer/focus-volume/pkg/acceleration"
	"github.com/blaubaer/focus-volume/pkg/keyboard"
)

// Handler applies volume keys to the session of the focused application.
// OnVolumeKey must not be called concurrently.
type Handler struct {
	Resolver *Resolver
	Engine   *acceleration.Engine
	Reporter Reporter
}

// OnVolumeKey handles a single key-down. Every failure is reported and ends
// the handling of this key only.
func (this *Handler) OnVolumeKey(key keyboard.Key) {
	adjustment, err := this.handle(key)
	if err != nil {
		this.reporter().ReportFailure(key, err)
		return
	}
	this.reporter().ReportAdjusted(adjustment)
}

func (this *Handler) handle(key keyboard.Key) (result Adjustment, rErr error) {
	result.Key = key

	target, err := this.Resolver.ResolveTargetSession()
	if err != nil {
		return result, err
	}
	defer func() {
		if err := target.Release(); err != nil && rErr == nil {
			rErr = err
		}
	}()
	result.Target = target.Identity

	switch key {
	case keyboard.KeyVolumeUp:
		result.Increment = this.Engine.Next()
		result.Level, err = target.Session.Increment(result.Increment)
	case keyboard.KeyVolumeDown:
		result.Increment = this.Engine.Next()
		result.Level, err = target.Session.Decrement(result.Increment)
	case keyboard.KeyMute:
		result.Muted, err = target.Session.ToggleMute()
	default:
		err = fmt.Errorf("unsupported key: %v", key)
	}
	return result, err
}

func (this *Handler) reporter() Reporter {
	if v := this.Reporter; v != nil {
		return v
	}
	return LogReporter{}
}
