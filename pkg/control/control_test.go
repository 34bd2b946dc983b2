package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blaubaer/focus-volume/pkg/acceleration"
	"github.com/blaubaer/focus-volume/pkg/audio"
	"github.com/blaubaer/focus-volume/pkg/audio/audiotest"
	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/focus"
	"github.com/blaubaer/focus-volume/pkg/keyboard"
)

type recordingReporter struct {
	adjusted []Adjustment
	failures []error
}

func (this *recordingReporter) ReportAdjusted(v Adjustment) {
	this.adjusted = append(this.adjusted, v)
}

func (this *recordingReporter) ReportFailure(_ keyboard.Key, err error) {
	this.failures = append(this.failures, err)
}

type fakeClock struct {
	now time.Time
}

func (this *fakeClock) Now() time.Time {
	return this.now
}

func (this *fakeClock) Advance(d time.Duration) {
	this.now = this.now.Add(d)
}

// fixture wires a Handler against in-memory collaborators.
type fixture struct {
	focused  focus.Identity
	focusErr error
	lookups  int

	provider *audiotest.Provider
	clock    *fakeClock
	reporter *recordingReporter
	handler  *Handler
}

func newFixture(t testing.TB, entries ...*audiotest.Entry) *fixture {
	t.Helper()

	result := &fixture{
		focused:  focus.Identity{Pid: 4242, ExecutablePath: `C:\app.exe`},
		provider: audiotest.NewProvider(entries...),
		clock:    &fakeClock{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		reporter: &recordingReporter{},
	}

	params := acceleration.NewParameters()
	params.BaseIncrement = 0.02
	engine, err := acceleration.NewEngineWithClock(params, result.clock.Now)
	require.NoError(t, err)

	result.handler = &Handler{
		Resolver: &Resolver{
			Focus: focus.ResolverFunc(func() (focus.Identity, error) {
				result.lookups++
				return result.focused, result.focusErr
			}),
			Directory: &audio.Directory{
				Provider: result.provider,
				ExecutableOf: func(pid uint32) (string, error) {
					if pid == 4242 {
						return `C:\app.exe`, nil
					}
					return `C:\other.exe`, nil
				},
			},
		},
		Engine:   engine,
		Reporter: result.reporter,
	}
	return result
}

func (this *fixture) noFocus() {
	this.focusErr = common.ErrNoFocus
}
