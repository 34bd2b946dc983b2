package process

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutableOf_self(t *testing.T) {
	expected, err := os.Executable()
	require.NoError(t, err)

	actual, err := ExecutableOf(uint32(os.Getpid()))
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(expected), filepath.Base(actual))
}
