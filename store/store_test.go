package store

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoverse/echoverse/internal/osutil"
)

func TestBackends(t *testing.T) {
	for _, backend := range []string{BackendBolt, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "echo.db")

			kv, err := Open(backend, path)
			require.NoError(t, err)

			v, err := kv.Load("entries/123")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, kv.Save("entries/123", []byte(`[{"id":"1"}]`)))
			require.NoError(t, kv.Save("entries/123", []byte(`[{"id":"2"}]`)))

			v, err = kv.Load("entries/123")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"2"}]`, string(v))

			require.NoError(t, kv.Close())

			kv, err = Open(backend, path)
			require.NoError(t, err)

			defer kv.Close()

			v, err = kv.Load("entries/123")
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"2"}]`, string(v))
		})
	}
}

func TestBoltSingleInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "echo.db")

	kv, err := NewClient(path)
	require.NoError(t, err)

	defer kv.Close()

	_, err = NewClient(path)
	assert.ErrorIs(t, err, errEchoRunning)
}

func TestBoltFilePermissions(t *testing.T) {
	if runtime.GOOS == osutil.Windows {
		t.Skip("unix permissions")
	}

	path := filepath.Join(t.TempDir(), "data", "echo.db")

	kv, err := NewClient(path)
	require.NoError(t, err)

	defer kv.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(osutil.PrivateFilePermission), info.Mode().Perm())

	info, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(osutil.DirPermission), info.Mode().Perm())
}

func TestUnknownBackend(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), "x"))

	assert.ErrorIs(t, err, errUnknownBackend)
}
