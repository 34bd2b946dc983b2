//go:build windows

package audio

import (
	"fmt"
	"iter"
	"sync"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"

	"github.com/blaubaer/focus-volume/pkg/common"
)

// Stack is the WASAPI backed Provider. Initialize joins the process to the
// multithreaded apartment, so the returned sessions can be used from any
// goroutine until Dispose.
type Stack struct {
	initialized bool
	mutex       sync.RWMutex
}

func (this *Stack) Initialize() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if this.initialized {
		return nil
	}

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		return fmt.Errorf("failed to initialize ole: %w", err)
	}

	this.initialized = true
	return nil
}

func (this *Stack) Dispose() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if !this.initialized {
		return nil
	}

	ole.CoUninitialize()
	this.initialized = false

	return nil
}

func (this *Stack) Sessions() iter.Seq2[*Session, error] {
	return func(yield func(*Session, error) bool) {
		this.mutex.RLock()
		defer this.mutex.RUnlock()

		if !this.initialized {
			yield(nil, fmt.Errorf("%w: audio stack not initialized", common.ErrProvider))
			return
		}

		sessions, err := this.defaultRenderSessions()
		if err != nil {
			yield(nil, fmt.Errorf("%w: %w", common.ErrProvider, err))
			return
		}

		for i, s := range sessions {
			if !yield(s, nil) {
				for _, rest := range sessions[i+1:] {
					_ = rest.Release()
				}
				return
			}
		}
	}
}

func (this *Stack) defaultRenderSessions() ([]*Session, error) {
	var de *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &de); err != nil {
		return nil, fmt.Errorf("cannot ceate IMMDeviceEnumerator instance: %w", err)
	}
	defer de.Release()

	var device *wca.IMMDevice
	if err := de.GetDefaultAudioEndpoint(wca.ERender, wca.EConsole, &device); err != nil {
		return nil, fmt.Errorf("cannot get default render endpoint: %w", err)
	}
	defer device.Release()

	var sessionManager *wca.IAudioSessionManager2
	if err := device.Activate(wca.IID_IAudioSessionManager2, wca.CLSCTX_ALL, nil, &sessionManager); err != nil {
		return nil, fmt.Errorf("cannot get session manager of default render endpoint: %w", err)
	}
	defer sessionManager.Release()

	return this.sessionsOf(sessionManager)
}
