package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/focus-volume/pkg/common"
)

var ErrSessionNotFound = errors.New("session not found")

// Directory locates the controllable session of a process. The system
// session (pid 0) is never returned.
type Directory struct {
	Provider Provider

	// ExecutableOf resolves the executable path of a process; required by
	// FindByPath only.
	ExecutableOf func(pid uint32) (string, error)
}

func (this *Directory) FindByPid(pid uint32) (*Session, error) {
	if pid == 0 {
		return nil, fmt.Errorf("%w: pid 0 is the system session", ErrSessionNotFound)
	}
	return this.find(fmt.Sprintf("pid %d", pid), func(candidate *Session) (bool, error) {
		return candidate.Pid == pid, nil
	})
}

// FindByPath matches the executable of the owning process. Paths are
// compared cleaned and case-insensitive.
func (this *Directory) FindByPath(path string) (*Session, error) {
	if this.ExecutableOf == nil {
		return nil, fmt.Errorf("cannot find session by path: no executable resolver configured")
	}
	expected := normalizePath(path)
	if expected == "" {
		return nil, fmt.Errorf("%w: empty path", ErrSessionNotFound)
	}
	return this.find(fmt.Sprintf("path %q", path), func(candidate *Session) (bool, error) {
		actual, err := this.ExecutableOf(candidate.Pid)
		if err != nil {
			// Processes can vanish while enumerating or be inaccessible.
			log.WithError(err).
				With("pid", candidate.Pid).
				Debug("Cannot resolve executable of session owner; skipping.")
			return false, nil
		}
		return normalizePath(actual) == expected, nil
	})
}

func (this *Directory) find(query string, matches func(*Session) (bool, error)) (result *Session, rErr error) {
	defer func() {
		if rErr != nil {
			_ = result.Release()
			result = nil
		}
	}()

	for candidate, err := range this.Provider.Sessions() {
		if err != nil {
			if errors.Is(err, common.ErrProvider) {
				return result, err
			}
			return result, fmt.Errorf("%w: cannot enumerate audio sessions: %w", common.ErrProvider, err)
		}
		if result != nil || candidate.Pid == 0 {
			_ = candidate.Release()
			continue
		}
		ok, err := matches(candidate)
		if err != nil {
			_ = candidate.Release()
			return result, err
		}
		if ok {
			result = candidate
		} else {
			_ = candidate.Release()
		}
	}

	if result == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, query)
	}
	return result, nil
}

func normalizePath(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	return strings.ToLower(filepath.Clean(v))
}
