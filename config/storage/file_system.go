package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPersistFailed marks a failed write of the target config file
var ErrPersistFailed = errors.New("failed to persist config")

// Default permissions for files and directories created by the tool
const (
	DefaultFileMode os.FileMode = 0600
	DefaultDirMode  os.FileMode = 0755
)

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// lockPath is the sidecar file serializing concurrent updates of filePath.
// It is left in place: removing it would let a waiter lock a stale inode.
func lockPath(filePath string) string {
	return filePath + ".lock"
}

// AtomicFileUpdate replaces filePath with newContent: parent directories are
// created, the content goes to a temporary file that is renamed over the
// target, and the existing file mode is kept (DefaultFileMode for new files).
// A symlinked filePath is written through to its target.
func AtomicFileUpdate(filePath string, newContent string, createBackup bool) error {
	if resolved, err := filepath.EvalSymlinks(filePath); err == nil {
		filePath = resolved
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock, err := os.OpenFile(lockPath(filePath), os.O_RDWR|os.O_CREATE, DefaultFileMode)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer func() {
		unlockFile(lock)
		lock.Close()
	}()
	if err := lockFileExclusive(lock); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}

	mode := DefaultFileMode
	if info, err := os.Stat(filePath); err == nil {
		mode = info.Mode().Perm()
		if createBackup {
			bm := NewBackupManager(DefaultBackupRetention)
			if _, err := bm.CreateBackup(filePath); err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
		}
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op after a successful rename

	if _, err := tmpFile.WriteString(newContent); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temporary file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), mode); err != nil {
		return fmt.Errorf("failed to set permissions on temporary file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filePath); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	if createBackup {
		bm := NewBackupManager(DefaultBackupRetention)
		// Non-fatal, the update itself succeeded
		_ = bm.CleanupOldBackups(filePath)
	}

	return nil
}
