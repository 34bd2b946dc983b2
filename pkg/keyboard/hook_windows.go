//go:build windows

package keyboard

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	log "github.com/echocat/slf4g"
	"golang.org/x/sys/windows"
)

var (
	dllUser32               = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = dllUser32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = dllUser32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = dllUser32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = dllUser32.NewProc("GetMessageW")
	procPostThreadMessageW  = dllUser32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLl = 13
	wmKeyDown    = 0x0100
	wmQuit       = 0x0012
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type point struct {
	X, Y int32
}

type msg struct {
	Hwnd     windows.HWND
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	LPrivate uint32
}

// Hook is the installed low-level keyboard hook. It is removed by Close,
// which must be called on every path; the hook thread also removes it if
// its message loop ends for any other reason.
type Hook struct {
	keys       Keys
	dispatcher *dispatcher

	threadId uint32
	stopped  chan struct{}

	closed     bool
	closeMutex sync.Mutex
}

// Install intercepts key-downs of keys (all if empty) system wide and
// delivers them to handler. Intercepted keys are not seen by any other
// application; every other key passes through.
func Install(keys Keys, handler Handler) (*Hook, error) {
	result := &Hook{
		keys:       keys,
		dispatcher: newDispatcher(handler),
		stopped:    make(chan struct{}),
	}

	started := make(chan error, 1)
	go result.loop(started)
	if err := <-started; err != nil {
		result.dispatcher.close()
		return nil, err
	}

	log.With("keys", keys).
		Info("Keyboard hook installed. Listening for volume keys...")
	return result, nil
}

// loop owns the hook: it is installed and removed on the same locked OS
// thread which also pumps the messages the hook needs.
func (this *Hook) loop(started chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(this.stopped)

	this.threadId = windows.GetCurrentThreadId()

	handle, _, err := procSetWindowsHookExW.Call(whKeyboardLl, windows.NewCallback(this.callback), 0, 0)
	if handle == 0 {
		started <- fmt.Errorf("cannot install keyboard hook: %w", err)
		return
	}
	defer func() {
		if r, _, err := procUnhookWindowsHookEx.Call(handle); r == 0 {
			log.WithError(err).
				Warn("Cannot uninstall keyboard hook.")
			return
		}
		log.Info("Keyboard hook uninstalled.")
	}()
	started <- nil

	var m msg
	for {
		r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r) {
		case -1:
			log.WithError(err).
				Error("Message loop of keyboard hook failed.")
			return
		case 0:
			return
		}
	}
}

func (this *Hook) callback(code, wParam, lParam uintptr) uintptr {
	if int32(code) >= 0 {
		if key, ok := this.keyOf(wParam, lParam); ok {
			this.dispatcher.offer(key)
			return 1
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, code, wParam, lParam)
	return r
}

// keyOf is the only place which interprets the raw hook payload.
func (this *Hook) keyOf(wParam, lParam uintptr) (Key, bool) {
	if wParam != wmKeyDown {
		return 0, false
	}
	payload := (*kbdllHookStruct)(unsafe.Pointer(lParam))
	key, ok := KeyOfVirtualCode(payload.VkCode)
	if !ok || !this.keys.Has(key) {
		return 0, false
	}
	return key, true
}

// Close removes the hook and waits until every already intercepted key was
// handled. Calling it more than once is safe. If it fails the hook stays
// installed and Close can be called again.
func (this *Hook) Close() error {
	this.closeMutex.Lock()
	defer this.closeMutex.Unlock()

	if this.closed {
		return nil
	}
	select {
	case <-this.stopped:
	default:
		if r, _, err := procPostThreadMessageW.Call(uintptr(this.threadId), wmQuit, 0, 0); r == 0 {
			return fmt.Errorf("cannot stop keyboard hook: %w", err)
		}
		<-this.stopped
	}

	// The hook is removed now, so no callback can offer anymore.
	this.dispatcher.close()
	this.closed = true
	return nil
}
