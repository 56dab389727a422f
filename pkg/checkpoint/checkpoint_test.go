package checkpoint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "followsnap/pkg/errors"
	"followsnap/pkg/logger"
	"followsnap/pkg/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointManager(t *testing.T) {
	dir := t.TempDir()
	started := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

	t.Run("TimestampedPath", func(t *testing.T) {
		mgr, err := NewManager(dir, "followers", started, logger.NewTestLogger())
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "followers_20240309_140507.txt"), mgr.Path())
		assert.NoFileExists(t, mgr.Path(), "nothing is written before the first save")
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		mgr, err := NewManager(dir, "followers", started.Add(time.Second), logger.NewTestLogger())
		require.NoError(t, err)

		require.NoError(t, mgr.Save(snapshot.NewSet("bob", "alice", "carol")))
		require.NoError(t, mgr.Save(snapshot.NewSet("bob", "alice")))
		assert.FileExists(t, mgr.Path())
		assert.NoFileExists(t, mgr.Path()+".tmp")

		data, err := os.ReadFile(mgr.Path())
		require.NoError(t, err)
		assert.Equal(t, "alice\nbob", string(data))

		loaded, err := LoadSeed(mgr.Path(), logger.NewNopLogger())
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, loaded.Sorted())
	})

	t.Run("EmptySetWritesEmptyFile", func(t *testing.T) {
		mgr := NewManagerAt(filepath.Join(dir, "empty.txt"), logger.NewNopLogger())
		require.NoError(t, mgr.Save(snapshot.NewSet()))

		info, err := os.Stat(mgr.Path())
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("Defaults", func(t *testing.T) {
		sub := filepath.Join(dir, "nested", "out")
		mgr, err := NewManager(sub, "", started, nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(sub, "followers_20240309_140507.txt"), mgr.Path())

		_, err = os.Stat(sub)
		assert.NoError(t, err, "output directory should be created")
	})
}

func TestSaveFailure(t *testing.T) {
	dir := t.TempDir()
	// a directory in place of the target file makes the rename fail
	target := filepath.Join(dir, "snapshot.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0755))

	log := logger.NewTestLogger()
	mgr := NewManagerAt(target, log)

	err := mgr.Save(snapshot.NewSet("alice"))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrorTypePersistence))
	assert.DirExists(t, target, "failed save leaves the existing path untouched")
	assert.True(t, log.HasMessage("checkpoint write failed"))
}

func TestLoadSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.txt")
	require.NoError(t, os.WriteFile(path, []byte("carol\n\n  alice \nbob\n"), 0644))

	log := logger.NewTestLogger()
	seed, err := LoadSeed(path, log)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, seed.Sorted())
	assert.True(t, log.HasMessage("snapshot loaded"))

	_, err = LoadSeed(filepath.Join(dir, "missing.txt"), log)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrorTypePersistence))
}
