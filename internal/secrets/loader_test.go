package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(file, []byte("  from-file\n"), 0o600))
	t.Setenv("RESUMELYZE_TEST_KEY", " from-env ")

	got, err := Load(Source{Name: "key", Value: "inline", File: file, Env: "RESUMELYZE_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-file", got)

	got, err = Load(Source{Name: "key", Value: " inline ", Env: "RESUMELYZE_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	got, err = Load(Source{Name: "key", Env: "RESUMELYZE_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))
	t.Setenv("RESUMELYZE_TEST_KEY", "from-env")

	_, err := Load(Source{Name: "gemini api key", File: empty, Env: "RESUMELYZE_TEST_KEY"})
	assert.ErrorContains(t, err, "is empty")

	_, err = Load(Source{File: filepath.Join(dir, "missing")})
	assert.ErrorContains(t, err, "reading secret from file")

	_, err = Load(Source{Name: "token"})
	assert.EqualError(t, err, "token is not configured")
}
