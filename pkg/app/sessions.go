package app

import (
	"fmt"

	log "github.com/echocat/slf4g"

	"github.com/blaubaer/focus-volume/pkg/audio"
	"github.com/blaubaer/focus-volume/pkg/process"
)

// SessionInfo describes one session of the default render endpoint.
type SessionInfo struct {
	Pid            uint32  `json:"pid"`
	ExecutablePath string  `json:"executablePath,omitempty"`
	Level          float32 `json:"level"`
	Muted          bool    `json:"muted"`
}

// ListSessions reads the state of every session of the default render
// endpoint, including the system session.
func (this *App) ListSessions() (result []SessionInfo, _ error) {
	for s, err := range this.provider().Sessions() {
		if err != nil {
			return nil, fmt.Errorf("cannot list audio sessions: %w", err)
		}
		info, err := describe(s)
		_ = s.Release()
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

func describe(s *audio.Session) (SessionInfo, error) {
	result := SessionInfo{Pid: s.Pid}

	if s.Pid != 0 {
		exe, err := process.ExecutableOf(s.Pid)
		if err != nil {
			log.WithError(err).
				With("pid", s.Pid).
				Debug("Cannot resolve executable of session owner.")
		}
		result.ExecutablePath = exe
	}

	var err error
	if result.Level, err = s.Volume(); err != nil {
		return SessionInfo{}, err
	}
	if result.Muted, err = s.Mute(); err != nil {
		return SessionInfo{}, err
	}
	return result, nil
}
