//go:build !windows

package focus

import (
	"fmt"

	"github.com/blaubaer/focus-volume/pkg/common"
)

// Foreground has no window system binding outside of Windows.
type Foreground struct{}

func (this Foreground) CurrentFocus() (Identity, error) {
	return Identity{}, fmt.Errorf("%w: %w: foreground window", common.ErrProvider, common.ErrUnsupported)
}
