package focus

import (
	"fmt"
	"path/filepath"
)

// Identity is the process owning the focused window, captured once per key
// event.
type Identity struct {
	Pid            uint32
	ExecutablePath string
}

func (this Identity) Name() string {
	if this.ExecutablePath == "" {
		return fmt.Sprintf("pid %d", this.Pid)
	}
	return filepath.Base(this.ExecutablePath)
}

func (this Identity) String() string {
	return fmt.Sprintf("[%d] %s", this.Pid, this.ExecutablePath)
}

// Resolver reports the process owning the focused window. It fails with
// common.ErrNoFocus if no window has focus.
type Resolver interface {
	CurrentFocus() (Identity, error)
}

type ResolverFunc func() (Identity, error)

func (this ResolverFunc) CurrentFocus() (Identity, error) {
	return this()
}
