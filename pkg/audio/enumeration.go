package audio

import (
	"errors"

	log "github.com/echocat/slf4g"
	"github.com/go-ole/go-ole"
)

const (
	// hresultFalse is S_FALSE, returned by IsSystemSoundsSession for every
	// session except the system sounds one.
	hresultFalse = uintptr(0x00000001)
	// hresultNoSingleProcess is AUDCLNT_S_NO_SINGLE_PROCESS, a success code of
	// GetProcessId for sessions shared by several processes. The pid is still
	// filled in.
	hresultNoSingleProcess = uintptr(0x0889000D)
)

// isHresult reports whether err carries the given COM result code.
func isHresult(err error, code uintptr) bool {
	var oleErr *ole.OleError
	return errors.As(err, &oleErr) && oleErr.Code() == code
}

// collectSessions introspects count sessions. Sessions which cannot be
// introspected are skipped, so one odd session never hides the others.
func collectSessions(count int, introspect func(int) (*Session, error)) []*Session {
	result := make([]*Session, 0, count)
	for i := 0; i < count; i++ {
		session, err := introspect(i)
		if err != nil {
			log.WithError(err).
				With("index", i).
				Debug("Cannot introspect audio session; skipping it.")
			continue
		}
		result = append(result, session)
	}
	return result
}
