package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultBackupRetention is the default number of backups to keep
const DefaultBackupRetention = 3

// backupTimeLayout is embedded in backup names so they sort chronologically
const backupTimeLayout = "20060102150405"

// BackupManager manages backup files for the Continue config
type BackupManager struct {
	// MaxBackups is the maximum number of backups to retain
	MaxBackups int
	now        func() time.Time
}

// NewBackupManager creates a new BackupManager retaining maxBackups files
func NewBackupManager(maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = DefaultBackupRetention
	}
	return &BackupManager{
		MaxBackups: maxBackups,
		now:        time.Now,
	}
}

// backupPattern matches every backup of filePath
func backupPattern(filePath string) string {
	return filePath + ".backup-*"
}

// CreateBackup copies filePath to filePath.backup-YYYYMMDDHHMMSS-PID
func (bm *BackupManager) CreateBackup(filePath string) (string, error) {
	backupPath := fmt.Sprintf("%s.backup-%s-%d", filePath, bm.now().Format(backupTimeLayout), os.Getpid())
	if err := copyFile(filePath, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return backupPath, nil
}

// ListBackups returns all backups of filePath, oldest first
func (bm *BackupManager) ListBackups(filePath string) ([]string, error) {
	backupFiles, err := filepath.Glob(backupPattern(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	backups := make([]backup, 0, len(backupFiles))
	for _, path := range backupFiles {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, backup{path: path, modTime: info.ModTime()})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].modTime.Equal(backups[j].modTime) {
			return backups[i].path < backups[j].path
		}
		return backups[i].modTime.Before(backups[j].modTime)
	})

	sorted := make([]string, len(backups))
	for i, b := range backups {
		sorted[i] = b.path
	}
	return sorted, nil
}

// CleanupOldBackups removes old backup files, retaining only the most recent MaxBackups
func (bm *BackupManager) CleanupOldBackups(filePath string) error {
	backupFiles, err := bm.ListBackups(filePath)
	if err != nil {
		return err
	}

	numToRemove := len(backupFiles) - bm.MaxBackups
	if numToRemove <= 0 {
		return nil
	}

	for _, oldBackup := range backupFiles[:numToRemove] {
		if err := os.Remove(oldBackup); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", oldBackup, err)
		}
	}
	return nil
}

// RestoreFromBackup restores filePath from one of its backups
func (bm *BackupManager) RestoreFromBackup(filePath string, backupPath string) error {
	match, err := filepath.Match(backupPattern(filePath), backupPath)
	if err != nil {
		return fmt.Errorf("invalid backup path: %w", err)
	}
	if !match {
		return fmt.Errorf("backup path %s is not a valid backup for %s", backupPath, filePath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := AtomicFileUpdate(filePath, string(data), false); err != nil {
		return fmt.Errorf("failed to restore from backup: %w", err)
	}
	return nil
}

// RestoreFromLatestBackup restores filePath from its most recent backup and
// returns the backup used
func (bm *BackupManager) RestoreFromLatestBackup(filePath string) (string, error) {
	backupFiles, err := bm.ListBackups(filePath)
	if err != nil {
		return "", err
	}
	if len(backupFiles) == 0 {
		return "", fmt.Errorf("no backup files found for %s", filePath)
	}

	latest := backupFiles[len(backupFiles)-1]
	return latest, bm.RestoreFromBackup(filePath, latest)
}

// copyFile copies src to dst, keeping the source permissions
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode().Perm())
}
