package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalScratch_Lifecycle(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalScratch(base)
	require.NoError(t, err)

	assert.Equal(t, base, filepath.Dir(s.Dir()))
	p := s.Path("overview_dashboard_1.png")
	assert.Equal(t, s.Dir(), filepath.Dir(p))
	require.NoError(t, os.WriteFile(p, []byte("png"), 0644))

	require.NoError(t, s.Release())
	_, err = os.Stat(s.Dir())
	assert.True(t, os.IsNotExist(err))

	// second release is a no-op
	assert.NoError(t, s.Release())
}

func TestLocalScratch_UniqueDirectories(t *testing.T) {
	base := t.TempDir()
	a, err := NewLocalScratch(base)
	require.NoError(t, err)
	b, err := NewLocalScratch(base)
	require.NoError(t, err)
	assert.NotEqual(t, a.Dir(), b.Dir())
}

func TestLocalScratch_PathStaysInside(t *testing.T) {
	s, err := NewLocalScratch(t.TempDir())
	require.NoError(t, err)
	defer s.Release()

	assert.Equal(t, s.Dir(), filepath.Dir(s.Path("../../etc/passwd")))
}

func TestLocalScratch_Store(t *testing.T) {
	s, err := NewLocalScratch(t.TempDir())
	require.NoError(t, err)
	defer s.Release()

	path, err := s.Store(strings.NewReader("a,b\n1,2\n"), "sales.csv")
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestNewLocalScratch_DefaultsToTempDir(t *testing.T) {
	s, err := NewLocalScratch("")
	require.NoError(t, err)
	defer s.Release()
	assert.Equal(t, filepath.Clean(os.TempDir()), filepath.Dir(s.Dir()))
}
