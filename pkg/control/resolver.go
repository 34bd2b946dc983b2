package control

import (
	"errors"
	"fmt"

	"github.com/blaubaer/focus-volume/pkg/audio"
	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/focus"
)

// Target is the session a key event applies to together with the process
// it belongs to. Release it after use.
type Target struct {
	Identity focus.Identity
	Session  *audio.Session
}

func (this *Target) Release() error {
	return this.Session.Release()
}

// Resolver answers which session the next key event affects. Nothing is
// cached; every call starts from the current focus.
type Resolver struct {
	Focus     focus.Resolver
	Directory *audio.Directory
	MatchBy   MatchStrategy

	// Excluded focused executables are treated as having no audio session.
	Excluded common.Regexp
}

func (this *Resolver) ResolveTargetSession() (*Target, error) {
	identity, err := this.Focus.CurrentFocus()
	if err != nil {
		if errors.Is(err, common.ErrNoFocus) {
			return nil, err
		}
		if errors.Is(err, common.ErrProvider) {
			return nil, fmt.Errorf("cannot resolve focused window: %w", err)
		}
		return nil, fmt.Errorf("%w: cannot resolve focused window: %w", common.ErrProvider, err)
	}

	if this.Excluded.MatchString(identity.ExecutablePath) {
		return nil, fmt.Errorf("%w: %v is excluded", common.ErrNoAudioSession, identity)
	}

	var session *audio.Session
	switch this.MatchBy {
	case MatchByPath:
		session, err = this.Directory.FindByPath(identity.ExecutablePath)
	default:
		session, err = this.Directory.FindByPid(identity.Pid)
	}
	if errors.Is(err, audio.ErrSessionNotFound) {
		return nil, fmt.Errorf("%w: %v: %w", common.ErrNoAudioSession, identity, err)
	}
	if err != nil {
		if !errors.Is(err, common.ErrProvider) {
			err = fmt.Errorf("%w: %w", common.ErrProvider, err)
		}
		return nil, fmt.Errorf("cannot find audio session of %v: %w", identity, err)
	}

	return &Target{identity, session}, nil
}
