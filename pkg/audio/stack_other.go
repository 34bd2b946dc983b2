//go:build !windows

package audio

import (
	"fmt"
	"iter"

	"github.com/blaubaer/focus-volume/pkg/common"
)

// Stack has no session binding outside of Windows.
type Stack struct{}

func (this *Stack) Initialize() error {
	return nil
}

func (this *Stack) Dispose() error {
	return nil
}

func (this *Stack) Sessions() iter.Seq2[*Session, error] {
	return common.Fail[*Session](fmt.Errorf("%w: %w: audio sessions", common.ErrProvider, common.ErrUnsupported))
}
