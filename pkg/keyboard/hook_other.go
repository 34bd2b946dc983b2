//go:build !windows

package keyboard

import (
	"fmt"

	"github.com/blaubaer/focus-volume/pkg/common"
)

// Hook cannot be installed outside of Windows.
type Hook struct{}

func Install(Keys, Handler) (*Hook, error) {
	return nil, fmt.Errorf("%w: keyboard hook", common.ErrUnsupported)
}

func (this *Hook) Close() error {
	return nil
}
