// Package backup manages timestamped snapshots of the habit store. Imports
// take a snapshot automatically before writing, and the backup command exposes
// create, list, and restore directly.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is the retention limit; older snapshots are rotated out.
	MaxBackups = 14

	dirName    = "backups"
	filePrefix = "habitgrid-"
	timeLayout = "20060102-150405"
)

// Info describes one snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the store file next to it, under a backups/ directory.
// It works for both store backends: SQLite files are copied through
// VACUUM INTO so a live database still yields a consistent snapshot, JSON
// files are plain copies.
type Manager struct {
	storePath string
	dir       string
}

func NewManager(storePath string) *Manager {
	return &Manager{
		storePath: storePath,
		dir:       filepath.Join(filepath.Dir(storePath), dirName),
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create takes a snapshot of the store and rotates old ones past the
// retention limit. It returns the snapshot path.
func (m *Manager) Create(now time.Time) (string, error) {
	path, err := m.snapshot(now)
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		return "", fmt.Errorf("failed to rotate old backups: %w", err)
	}
	return path, nil
}

func (m *Manager) snapshot(now time.Time) (string, error) {
	if _, err := os.Stat(m.storePath); err != nil {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := filePrefix + now.Format(timeLayout) + filepath.Ext(m.storePath)
	dest := filepath.Join(m.dir, name)
	for i := 2; ; i++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		name = fmt.Sprintf("%s%s-%d%s", filePrefix, now.Format(timeLayout), i, filepath.Ext(m.storePath))
		dest = filepath.Join(m.dir, name)
	}

	if isSQLite(m.storePath) {
		if err := vacuumInto(m.storePath, dest); err == nil {
			return dest, nil
		}
		// VACUUM INTO needs SQLite 3.27+; fall through to a file copy.
	}
	if err := copyFile(m.storePath, dest); err != nil {
		return "", fmt.Errorf("failed to copy store: %w", err)
	}
	return dest, nil
}

// List returns the snapshots on disk, newest first. A missing backup
// directory yields an empty list.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), filePrefix) {
			continue
		}
		stamp := strings.TrimPrefix(entry.Name(), filePrefix)
		stamp = strings.TrimSuffix(stamp, filepath.Ext(stamp))
		if i := strings.LastIndexByte(stamp, '-'); i > len(timeLayout)-1 {
			stamp = stamp[:i] // collision counter
		}
		ts, err := time.ParseInLocation(timeLayout, stamp, time.Local)
		if err != nil {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, entry.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Restore replaces the store with a snapshot. The current store is
// snapshotted first so a bad restore is itself recoverable, then the backup
// is moved into place with an atomic rename.
func (m *Manager) Restore(backupPath string, now time.Time) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup does not exist: %s", backupPath)
	}
	if isSQLite(backupPath) {
		if err := verifySQLite(backupPath); err != nil {
			return fmt.Errorf("backup is not a valid database: %w", err)
		}
	}

	if _, err := os.Stat(m.storePath); err == nil {
		if _, err := m.snapshot(now); err != nil {
			return fmt.Errorf("failed to snapshot current store before restore: %w", err)
		}
	}

	tmp := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return fmt.Errorf("failed to stage backup: %w", err)
	}
	if err := os.Rename(tmp, m.storePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to restore store: %w", err)
	}
	return nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return err
		}
	}
	return nil
}

func isSQLite(path string) bool {
	return filepath.Ext(path) != ".json"
}

func vacuumInto(src, dest string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.Exec("VACUUM INTO ?", dest)
	return err
}

func verifySQLite(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
