package app

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/focus-volume/pkg/common"
	"github.com/blaubaer/focus-volume/pkg/control"
	"github.com/blaubaer/focus-volume/pkg/keyboard"
)

func TestConfiguration_saveAndLoad(t *testing.T) {
	instance := NewConfiguration()
	instance.MatchBy = control.MatchByPath
	instance.Keys = keyboard.Keys{keyboard.KeyVolumeUp, keyboard.KeyVolumeDown}
	instance.ExcludedExecutables = common.MustNewRegexp(`\\obs64\.exe$`)
	instance.Acceleration.IdleGap = 750 * time.Millisecond

	var buf bytes.Buffer
	require.NoError(t, instance.saveTo(&buf))
	assert.Contains(t, buf.String(), "matchBy: path\n")
	assert.Contains(t, buf.String(), "idleGap: 750ms\n")

	actual := NewConfiguration()
	require.NoError(t, actual.loadFrom(&buf))
	assert.Equal(t, instance.ExcludedExecutables.String(), actual.ExcludedExecutables.String())
	instance.ExcludedExecutables, actual.ExcludedExecutables = common.Regexp{}, common.Regexp{}
	assert.Equal(t, instance, actual)
}

func TestConfiguration_loadPartial(t *testing.T) {
	actual := NewConfiguration()

	require.NoError(t, actual.loadFrom(strings.NewReader("acceleration:\n  maxMultiplier: 8\nkeys: [mute]\n")))

	expected := NewConfiguration()
	expected.Acceleration.MaxMultiplier = 8
	expected.Keys = keyboard.Keys{keyboard.KeyMute}
	assert.Equal(t, expected, actual)
}

func TestConfiguration_loadEmpty(t *testing.T) {
	actual := NewConfiguration()

	require.NoError(t, actual.loadFrom(strings.NewReader("")))

	assert.Equal(t, NewConfiguration(), actual)
}

func TestConfiguration_loadRejectsUnknownFields(t *testing.T) {
	actual := NewConfiguration()

	assert.Error(t, actual.loadFrom(strings.NewReader("signal:\n  type: hue\n")))
	assert.Error(t, actual.loadFrom(strings.NewReader("matchBy: title\n")))
}

func TestConfiguration_loadFromFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "sub", "configuration.yml")
	actual := NewConfiguration()

	require.NoError(t, actual.loadFromFile(fn, true))
	assert.Error(t, actual.loadFromFile(fn, false))

	actual.Acceleration.BaseIncrement = 0.03
	require.NoError(t, actual.saveToFile(fn))

	loaded := NewConfiguration()
	require.NoError(t, loaded.loadFromFile(fn, false))
	assert.Equal(t, actual, loaded)
}

func TestConfiguration_mergeFrom(t *testing.T) {
	fromFile := NewConfiguration()
	fromFile.MatchBy = control.MatchByPath
	fromFile.ExcludedExecutables = common.MustNewRegexp(`file`)
	fromFile.Acceleration.MaxMultiplier = 8

	var fromFlags Configuration
	cmd := kingpin.New("test", "")
	fromFlags.SetupConfiguration(cmd)
	_, err := cmd.Parse([]string{
		"--acceleration.baseIncrement=0.05",
		"--keys=up",
		"--keys=down",
	})
	require.NoError(t, err)

	require.NoError(t, fromFile.mergeFrom(fromFlags))

	assert.Equal(t, float32(0.05), fromFile.Acceleration.BaseIncrement)
	assert.Equal(t, float32(8), fromFile.Acceleration.MaxMultiplier)
	assert.Equal(t, control.MatchByPath, fromFile.MatchBy)
	assert.Equal(t, keyboard.Keys{keyboard.KeyVolumeUp, keyboard.KeyVolumeDown}, fromFile.Keys)
	assert.Equal(t, "file", fromFile.ExcludedExecutables.String())

	fromFlags.ExcludedExecutables = common.MustNewRegexp(`flag`)
	require.NoError(t, fromFile.mergeFrom(fromFlags))
	assert.Equal(t, "flag", fromFile.ExcludedExecutables.String())
}

func TestConfiguration_Validate(t *testing.T) {
	instance := NewConfiguration()
	require.NoError(t, instance.Validate())

	instance.Acceleration.MinMultiplier = 20
	assert.ErrorIs(t, instance.Validate(), common.ErrInvalidParameter)

	instance = NewConfiguration()
	instance.MatchBy = 0
	assert.ErrorIs(t, instance.Validate(), common.ErrInvalidParameter)
}
