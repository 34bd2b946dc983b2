package common

import (
	"errors"
)

var (
	ErrNoFocus          = errors.New("no window focused")
	ErrNoAudioSession   = errors.New("no audio session")
	ErrProvider         = errors.New("provider failure")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrUnsupported      = errors.New("unsupported on this platform")
)

func AsError[T error](err error) (T, bool) {
	var target T
	return target, errors.As(err, &target)
}

// KindOf returns a short label of the taxonomy error err belongs to.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrNoFocus):
		return "no-focus"
	case errors.Is(err, ErrNoAudioSession):
		return "no-audio-session"
	case errors.Is(err, ErrInvalidParameter):
		return "invalid-parameter"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	case errors.Is(err, ErrProvider):
		return "provider"
	default:
		return "unknown"
	}
}
