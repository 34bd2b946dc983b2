//go:build windows

package focus

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/process"
)

// Foreground resolves the owner of the current foreground window.
type Foreground struct{}

func (this Foreground) CurrentFocus() (Identity, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return Identity{}, common.ErrNoFocus
	}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return Identity{}, fmt.Errorf("%w: cannot get process of foreground window: %w", common.ErrProvider, err)
	}
	if pid == 0 {
		return Identity{}, common.ErrNoFocus
	}

	exe, err := process.ExecutableOf(pid)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", common.ErrProvider, err)
	}

	return Identity{pid, exe}, nil
}
