//go:build windows

package audio

import (
	"fmt"
	"unsafe"

	"github.com/moutend/go-wca/pkg/wca"
)

func (this *Stack) sessionsOf(sessionManager *wca.IAudioSessionManager2) ([]*Session, error) {
	var enumerator *wca.IAudioSessionEnumerator
	if err := sessionManager.GetSessionEnumerator(&enumerator); err != nil {
		return nil, fmt.Errorf("cannot get audio sessions: %w", err)
	}
	defer enumerator.Release()

	var count int
	if err := enumerator.GetCount(&count); err != nil {
		return nil, fmt.Errorf("cannot get count of audio sessions: %w", err)
	}

	return collectSessions(count, func(i int) (*Session, error) {
		return this.introspectSessionOf(enumerator, i)
	}), nil
}

func (this *Stack) introspectSessionOf(sessions *wca.IAudioSessionEnumerator, sessionIndex int) (*Session, error) {
	var sessionControl *wca.IAudioSessionControl
	if err := sessions.GetSession(sessionIndex, &sessionControl); err != nil {
		return nil, fmt.Errorf("cannot get audio session %d: %w", sessionIndex, err)
	}
	defer sessionControl.Release()

	dispatch, err := sessionControl.QueryInterface(wca.IID_IAudioSessionControl2)
	if err != nil {
		return nil, fmt.Errorf("cannot get audio session control %d: %w", sessionIndex, err)
	}
	sessionControl2 := (*wca.IAudioSessionControl2)(unsafe.Pointer(dispatch))
	defer sessionControl2.Release()

	var pid uint32
	// The system sounds session keeps pid 0.
	if err := sessionControl2.IsSystemSoundsSession(); err == nil {
		pid = 0
	} else if isHresult(err, hresultFalse) {
		if err := sessionControl2.GetProcessId(&pid); err != nil && !isHresult(err, hresultNoSingleProcess) {
			return nil, fmt.Errorf("cannot get PID of processes which hold session %d: %w", sessionIndex, err)
		}
	} else {
		return nil, fmt.Errorf("cannot determine if audio session %d is a system session or not: %w", sessionIndex, err)
	}

	sav, err := sessionControl.QueryInterface(wca.IID_ISimpleAudioVolume)
	if err != nil {
		return nil, fmt.Errorf("cannot get simple audio volume of session %d: %w", sessionIndex, err)
	}

	return &Session{
		Pid:     pid,
		Control: &wcaControl{(*wca.ISimpleAudioVolume)(unsafe.Pointer(sav))},
	}, nil
}

type wcaControl struct {
	volume *wca.ISimpleAudioVolume
}

func (this *wcaControl) Volume() (result float32, _ error) {
	if err := this.volume.GetMasterVolume(&result); err != nil {
		return 0, err
	}
	return result, nil
}

func (this *wcaControl) SetVolume(v float32) error {
	return this.volume.SetMasterVolume(v, nil)
}

func (this *wcaControl) Mute() (result bool, _ error) {
	if err := this.volume.GetMute(&result); err != nil {
		return false, err
	}
	return result, nil
}

func (this *wcaControl) SetMute(v bool) error {
	return this.volume.SetMute(v, nil)
}

func (this *wcaControl) Release() error {
	if v := this.volume; v != nil {
		v.Release()
		this.volume = nil
	}
	return nil
}
