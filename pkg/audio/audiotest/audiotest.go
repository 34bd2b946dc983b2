// Package audiotest provides an in-memory audio.Provider recording every
// call made against its sessions.
package audiotest

import (
	"fmt"
	"iter"
	"sync"

	"github.com/blaubaer/focus-volume/pkg/audio"
	"github.com/blaubaer/focus-volume/pkg/common"
)

type Provider struct {
	Entries []*Entry
	// Err, if set, is yielded instead of any session.
	Err error

	Enumerations int

	mutex sync.Mutex
}

func NewProvider(entries ...*Entry) *Provider {
	return &Provider{Entries: entries}
}

func (this *Provider) Sessions() iter.Seq2[*audio.Session, error] {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.Enumerations++
	if err := this.Err; err != nil {
		return common.Fail[*audio.Session](err)
	}

	sessions := make([]*audio.Session, len(this.Entries))
	for i, e := range this.Entries {
		e.Acquired++
		sessions[i] = &audio.Session{Pid: e.Pid, Control: e}
	}
	return common.Iter2Err(sessions...)
}

// Entry is a single session with its own state.
type Entry struct {
	Pid   uint32
	Level float32
	Muted bool

	// Fail, if set, is returned by every operation.
	Fail error

	Acquired, Released int
	Calls               []string
}

func (this *Entry) Volume() (float32, error) {
	this.Calls = append(this.Calls, "Volume")
	if this.Fail != nil {
		return 0, this.Fail
	}
	return this.Level, nil
}

func (this *Entry) SetVolume(v float32) error {
	this.Calls = append(this.Calls, fmt.Sprintf("SetVolume(%.4f)", v))
	if this.Fail != nil {
		return this.Fail
	}
	if v < audio.MinLevel || v > audio.MaxLevel {
		return fmt.Errorf("volume out of range: %v", v)
	}
	this.Level = v
	return nil
}

func (this *Entry) Mute() (bool, error) {
	this.Calls = append(this.Calls, "Mute")
	if this.Fail != nil {
		return false, this.Fail
	}
	return this.Muted, nil
}

func (this *Entry) SetMute(v bool) error {
	this.Calls = append(this.Calls, fmt.Sprintf("SetMute(%v)", v))
	if this.Fail != nil {
		return this.Fail
	}
	this.Muted = v
	return nil
}

func (this *Entry) Release() error {
	this.Released++
	return nil
}

// Count returns how often call was made.
func (this *Entry) Count(call string) (result int) {
	for _, c := range this.Calls {
		if c == call {
			result++
		}
	}
	return
}

// Balanced reports whether every acquired session was released again.
func (this *Provider) Balanced() bool {
	for _, e := range this.Entries {
		if e.Acquired != e.Released {
			return false
		}
	}
	return true
}
