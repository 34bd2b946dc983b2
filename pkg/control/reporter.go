package control

import (
	log "github.com/echocat/slf4g"

	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/focus"
	"github.com/blaubaer/focus-volume/pkg/keyboard"
)

// Adjustment is what a successfully handled key changed.
type Adjustment struct {
	Key       keyboard.Key
	Target    focus.Identity
	Increment float32
	Level     float32
	Muted     bool
}

// Reporter surfaces the outcome of every handled key.
type Reporter interface {
	ReportAdjusted(Adjustment)
	ReportFailure(keyboard.Key, error)
}

// Reporters reports to all of its elements.
type Reporters []Reporter

func (this Reporters) ReportAdjusted(v Adjustment) {
	for _, r := range this {
		r.ReportAdjusted(v)
	}
}

func (this Reporters) ReportFailure(key keyboard.Key, err error) {
	for _, r := range this {
		r.ReportFailure(key, err)
	}
}

// LogReporter reports to the log. Expected conditions, like a focused
// application without audio, are logged at info level only.
type LogReporter struct{}

func (this LogReporter) ReportAdjusted(v Adjustment) {
	l := log.With("key", v.Key).
		With("target", v.Target)
	if v.Key == keyboard.KeyMute {
		l.With("muted", v.Muted).
			Info("Mute toggled.")
		return
	}
	l.With("increment", v.Increment).
		With("level", v.Level).
		Info("Volume adjusted.")
}

func (this LogReporter) ReportFailure(key keyboard.Key, err error) {
	l := log.WithError(err).
		With("key", key).
		With("kind", common.KindOf(err))
	switch common.KindOf(err) {
	case "no-focus", "no-audio-session":
		l.Info("Key ignored.")
	default:
		l.Warn("Cannot handle key.")
	}
}
