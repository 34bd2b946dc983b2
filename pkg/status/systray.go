package status

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/getlantern/systray"

	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/control"
	"github.com/blaubaer/focus-volume/pkg/keyboard"
)

const Title = "Focus volume"

// Systray shows the outcome of the last handled key as tray tooltip and
// icon.
type Systray struct {
	IconIdle   []byte
	IconActive []byte
	IconFailed []byte

	// Display is replaced in tests; defaults to the real tray.
	Display Display

	state State
	mutex sync.Mutex
}

// Display is the part of the tray the Systray writes to.
type Display interface {
	SetIcon([]byte)
	SetTooltip(string)
}

func (this *Systray) Initialize() error {
	if len(this.IconIdle) == 0 {
		return fmt.Errorf("IconIdle is empty")
	}
	if len(this.IconActive) == 0 {
		return fmt.Errorf("IconActive is empty")
	}
	if len(this.IconFailed) == 0 {
		return fmt.Errorf("IconFailed is empty")
	}
	this.show(StateIdle, Title+"\nWaiting for volume keys...")
	return nil
}

func (this *Systray) Dispose() error {
	this.show(StateIdle, Title)
	return nil
}

func (this *Systray) State() State {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.state
}

func (this *Systray) ReportAdjusted(v control.Adjustment) {
	var what string
	switch {
	case v.Key == keyboard.KeyMute && v.Muted:
		what = "muted"
	case v.Key == keyboard.KeyMute:
		what = "unmuted"
	default:
		what = fmt.Sprintf("%.0f%%", v.Level*100)
	}
	this.show(StateActive, fmt.Sprintf("%s\n%s: %s", Title, v.Target.Name(), what))
}

func (this *Systray) ReportFailure(key keyboard.Key, err error) {
	var why string
	switch common.KindOf(err) {
	case "no-focus":
		why = "no window focused"
	case "no-audio-session":
		why = "focused application plays no audio"
	default:
		why = "failed: " + common.KindOf(err)
	}
	this.show(StateFailed, fmt.Sprintf("%s\n%s: %s", Title, key, why))
}

func (this *Systray) show(state State, tooltip string) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	d := this.display()
	if state != this.state || state == StateIdle {
		d.SetIcon(this.iconOf(state))
	}
	d.SetTooltip(truncate(tooltip, maxTooltipBytes))
	this.state = state
}

// The tray truncates tooltips longer than this.
const maxTooltipBytes = 127

// truncate cuts v to at most n bytes without splitting a rune.
func truncate(v string, n int) string {
	if len(v) <= n {
		return v
	}
	for n > 0 && !utf8.RuneStart(v[n]) {
		n--
	}
	return v[:n]
}

func (this *Systray) iconOf(state State) []byte {
	switch state {
	case StateActive:
		return this.IconActive
	case StateFailed:
		return this.IconFailed
	default:
		return this.IconIdle
	}
}

func (this *Systray) display() Display {
	if v := this.Display; v != nil {
		return v
	}
	return trayDisplay{}
}

type trayDisplay struct{}

func (trayDisplay) SetIcon(v []byte) {
	systray.SetIcon(v)
}

func (trayDisplay) SetTooltip(v string) {
	systray.SetTooltip(v)
}
