//go:build !windows

package storage

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_AcquireRelease(t *testing.T) {
	t.Run("acquires and releases lock successfully", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)

		require.NoError(t, lock.Acquire())

		lockPath := filepath.Join(dir, LockFileName)
		assert.Equal(t, lockPath, lock.Path())

		data, err := os.ReadFile(lockPath)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

		require.NoError(t, lock.Release())

		_, err = os.Stat(lockPath)
		assert.True(t, os.IsNotExist(err), "lock file should be removed after release")
	})

	t.Run("second lock fails when first is held", func(t *testing.T) {
		dir := t.TempDir()
		lock1 := NewFileLock(dir)
		lock2 := NewFileLock(dir)

		require.NoError(t, lock1.Acquire())
		defer lock1.Release()

		err := lock2.Acquire()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLockAlreadyHeld)

		var lockErr *LockError
		require.ErrorAs(t, err, &lockErr)
		assert.Equal(t, os.Getpid(), lockErr.PID)
		assert.Contains(t, lockErr.Error(), "another alarmbook instance")
	})

	t.Run("can acquire lock after previous lock is released", func(t *testing.T) {
		dir := t.TempDir()
		lock1 := NewFileLock(dir)
		lock2 := NewFileLock(dir)

		require.NoError(t, lock1.Acquire())
		require.NoError(t, lock1.Release())

		require.NoError(t, lock2.Acquire())
		defer lock2.Release()
	})

	t.Run("release is idempotent", func(t *testing.T) {
		lock := NewFileLock(t.TempDir())

		require.NoError(t, lock.Acquire())
		require.NoError(t, lock.Release())
		assert.NoError(t, lock.Release())
	})

	t.Run("acquire twice on same lock is a no-op", func(t *testing.T) {
		lock := NewFileLock(t.TempDir())

		require.NoError(t, lock.Acquire())
		defer lock.Release()
		assert.NoError(t, lock.Acquire())
	})
}

func TestFileLock_StaleLock(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, LockFileName)

	// A PID far above any real pid_max.
	require.NoError(t, os.WriteFile(lockPath, []byte("99999999"), 0o644))

	lock := NewFileLock(dir)
	require.NoError(t, lock.Acquire())
	defer lock.Release()

	data, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
}

func TestLockErrorWithoutPID(t *testing.T) {
	err := &LockError{Err: ErrLockAlreadyHeld}
	assert.Contains(t, err.Error(), "cannot access database")
	assert.ErrorIs(t, err, ErrLockAlreadyHeld)
}
