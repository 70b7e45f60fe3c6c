package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCommand_MissingKeyIsNotFound(t *testing.T) {
	out, err := execute(t, "get", "91e1bb79-0a34-4d28-b6e8-1ca4157c1915")
	require.NoError(t, err, "a missing key must not be an error")
	assert.Equal(t, "(not found)", strings.TrimSpace(out))
}

func TestGetCommand_InvalidAs(t *testing.T) {
	_, err := execute(t, "get", "some-key", "--as", "bool")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDecoderFor(t *testing.T) {
	for _, as := range []string{"str", "int", "float"} {
		d, err := decoderFor(as)
		require.NoError(t, err)
		require.NotNil(t, d)
	}

	d, err := decoderFor("raw")
	require.NoError(t, err)
	assert.Nil(t, d, "raw means no decoder")
}
