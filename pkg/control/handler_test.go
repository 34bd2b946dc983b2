package control

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/focus-volume/pkg/audio/audiotest"
	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/keyboard"
)

func TestHandler_volumeUpAfterIdle(t *testing.T) {
	target := &audiotest.Entry{Pid: 4242, Level: 0.40}
	f := newFixture(t, &audiotest.Entry{Pid: 0}, target)

	f.handler.OnVolumeKey(keyboard.KeyVolumeUp)

	require.Empty(t, f.reporter.failures)
	require.Len(t, f.reporter.adjusted, 1)
	actual := f.reporter.adjusted[0]
	assert.Equal(t, uint32(4242), actual.Target.Pid)
	assert.InDelta(t, 0.02, actual.Increment, 1e-6)
	assert.InDelta(t, 0.42, actual.Level, 1e-6)
	assert.InDelta(t, 0.42, target.Level, 1e-6)
	assert.True(t, f.provider.Balanced())
}

func TestHandler_volumeDown(t *testing.T) {
	target := &audiotest.Entry{Pid: 4242, Level: 0.01}
	f := newFixture(t, target)

	f.handler.OnVolumeKey(keyboard.KeyVolumeDown)

	require.Empty(t, f.reporter.failures)
	assert.Equal(t, float32(0), target.Level)
}

func TestHandler_burstAccelerates(t *testing.T) {
	target := &audiotest.Entry{Pid: 4242, Level: 0}
	f := newFixture(t, target)

	for i := 0; i < 5; i++ {
		if i > 0 {
			f.clock.Advance(20 * time.Millisecond)
		}
		f.handler.OnVolumeKey(keyboard.KeyVolumeUp)
	}

	require.Empty(t, f.reporter.failures)
	require.Len(t, f.reporter.adjusted, 5)
	params := f.handler.Engine.Parameters()
	last := f.reporter.adjusted[4].Increment
	assert.Greater(t, last, params.BaseIncrement*params.MaxMultiplier*0.7)
	assert.Greater(t, target.Level, 5*params.BaseIncrement*params.MinMultiplier)
	assert.True(t, f.provider.Balanced())
}

func TestHandler_mute(t *testing.T) {
	target := &audiotest.Entry{Pid: 4242, Level: 0.5}
	f := newFixture(t, target)

	f.handler.OnVolumeKey(keyboard.KeyMute)

	require.Empty(t, f.reporter.failures)
	assert.True(t, target.Muted)
	assert.Equal(t, 1, target.Count("SetMute(true)"))
	assert.Equal(t, []string{"Mute", "SetMute(true)"}, target.Calls)
	assert.True(t, f.reporter.adjusted[0].Muted)

	f.handler.OnVolumeKey(keyboard.KeyMute)
	assert.False(t, target.Muted)
	assert.Equal(t, float32(0.5), target.Level)
}

func TestHandler_noFocus(t *testing.T) {
	target := &audiotest.Entry{Pid: 4242, Level: 0.4}
	f := newFixture(t, target)
	f.noFocus()

	f.handler.OnVolumeKey(keyboard.KeyVolumeUp)
	f.handler.OnVolumeKey(keyboard.KeyMute)

	require.Len(t, f.reporter.failures, 2)
	for _, err := range f.reporter.failures {
		assert.True(t, errors.Is(err, common.ErrNoFocus))
	}
	assert.Empty(t, f.reporter.adjusted)
	assert.Equal(t, 0, f.provider.Enumerations)
	assert.Empty(t, target.Calls)
}

func TestHandler_failedResolutionKeepsAcceleration(t *testing.T) {
	target := &audiotest.Entry{Pid: 4242, Level: 0}
	f := newFixture(t, target)

	f.handler.OnVolumeKey(keyboard.KeyVolumeUp)
	f.clock.Advance(20 * time.Millisecond)

	f.noFocus()
	f.handler.OnVolumeKey(keyboard.KeyVolumeUp)
	f.focusErr = nil
	f.clock.Advance(20 * time.Millisecond)

	f.handler.OnVolumeKey(keyboard.KeyVolumeUp)

	require.Len(t, f.reporter.failures, 1)
	require.Len(t, f.reporter.adjusted, 2)
	// 40ms since the last recorded press.
	params := f.handler.Engine.Parameters()
	assert.Greater(t, f.reporter.adjusted[1].Increment, params.BaseIncrement*params.MinMultiplier)
}

func TestHandler_mutationFailureIsReported(t *testing.T) {
	target := &audiotest.Entry{Pid: 4242, Level: 0.4, Fail: errors.New("device invalidated")}
	f := newFixture(t, target)

	f.handler.OnVolumeKey(keyboard.KeyVolumeUp)

	require.Len(t, f.reporter.failures, 1)
	assert.True(t, errors.Is(f.reporter.failures[0], common.ErrProvider))
	assert.Empty(t, f.reporter.adjusted)
	assert.True(t, f.provider.Balanced())

	// The press itself was recorded; the next one is accelerated.
	target.Fail = nil
	f.clock.Advance(20 * time.Millisecond)
	f.handler.OnVolumeKey(keyboard.KeyVolumeUp)

	require.Len(t, f.reporter.adjusted, 1)
	params := f.handler.Engine.Parameters()
	assert.Greater(t, f.reporter.adjusted[0].Increment, params.BaseIncrement*params.MinMultiplier)
}

func TestHandler_noAudioSession(t *testing.T) {
	f := newFixture(t, &audiotest.Entry{Pid: 0, Level: 0.3})

	f.handler.OnVolumeKey(keyboard.KeyVolumeDown)

	require.Len(t, f.reporter.failures, 1)
	assert.True(t, errors.Is(f.reporter.failures[0], common.ErrNoAudioSession))
	assert.Equal(t, "no-audio-session", common.KindOf(f.reporter.failures[0]))
}

func TestHandler_defaultReporter(t *testing.T) {
	f := newFixture(t, &audiotest.Entry{Pid: 4242, Level: 0.3})
	f.handler.Reporter = nil

	assert.NotPanics(t, func() {
		f.handler.OnVolumeKey(keyboard.KeyVolumeUp)
	})
}

func TestReporters(t *testing.T) {
	a, b := &recordingReporter{}, &recordingReporter{}
	instance := Reporters{a, b}

	instance.ReportAdjusted(Adjustment{Key: keyboard.KeyMute})
	instance.ReportFailure(keyboard.KeyMute, common.ErrNoFocus)

	assert.Len(t, a.adjusted, 1)
	assert.Len(t, b.adjusted, 1)
	assert.Len(t, a.failures, 1)
	assert.Len(t, b.failures, 1)
}
