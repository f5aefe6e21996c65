package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

const manifestName = "manifest.json"

// Manager handles backup creation, restoration, and pruning.
// It is safe for concurrent use.
type Manager struct {
	rootDir        string
	retentionCount int
	now            func() time.Time

	mu   sync.Mutex
	done map[string]bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups to retain per engine.
// Zero or negative values keep the default.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		now:            time.Now,
		done:           make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot backs up files for engine once per Manager. Missing files are
// skipped; if none exist nothing is recorded and nil is returned. A failed
// snapshot is retried on the next call.
func (m *Manager) Snapshot(engine string, files ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done[engine] {
		return nil
	}
	if _, err := m.Backup(engine, files); err != nil {
		if errors.Is(err, ErrNothingToBackUp) {
			m.done[engine] = true
			return nil
		}
		return errors.Wrapf(err, "creating backup for %s", engine)
	}
	m.done[engine] = true
	return m.Prune(engine, m.retentionCount)
}

// Backup copies the given files for an engine and returns the manifest.
// Each file is copied with its permissions and hashed with SHA256.
func (m *Manager) Backup(engine string, files []string) (*Manifest, error) {
	if engine == "" {
		return nil, errors.New("engine is required")
	}
	if len(files) == 0 {
		return nil, errors.New("at least one path is required")
	}

	var present []string
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", f)
		}
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", f)
		}
		present = append(present, f)
	}
	if len(present) == 0 {
		return nil, ErrNothingToBackUp
	}

	createdAt := m.now().UTC()
	backupID, err := m.reserveID(engine, createdAt)
	if err != nil {
		return nil, err
	}
	backupPath := m.backupPath(engine, backupID)

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   createdAt,
		Engine:      engine,
		ToolVersion: Version,
		ID:          backupID,
	}
	for _, src := range present {
		bf, err := backupFile(src, backupPath)
		if err != nil {
			os.RemoveAll(backupPath)
			return nil, errors.Wrapf(err, "backing up %s", src)
		}
		manifest.Files = append(manifest.Files, *bf)
	}

	if err := fileutil.AtomicWriteJSON(filepath.Join(backupPath, manifestName), manifest); err != nil {
		os.RemoveAll(backupPath)
		return nil, errors.Wrap(err, "writing manifest")
	}
	return manifest, nil
}

// reserveID creates a fresh backup directory named after t, adding a
// numeric suffix when a backup with the same timestamp exists.
func (m *Manager) reserveID(engine string, t time.Time) (string, error) {
	if err := os.MkdirAll(m.engineDir(engine), 0o700); err != nil {
		return "", errors.Wrap(err, "creating backup directory")
	}
	base := t.Format("20060102T150405")
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		err := os.Mkdir(m.backupPath(engine, id), 0o700)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", errors.Wrap(err, "creating backup directory")
		}
	}
}

// Restore copies every file of a backup back to its original location,
// after verifying all hashes.
func (m *Manager) Restore(engine, backupID string) error {
	manifest, err := m.Get(engine, backupID)
	if err != nil {
		return err
	}
	backupPath := m.backupPath(engine, backupID)

	for _, bf := range manifest.Files {
		hash, err := hashFile(filepath.Join(backupPath, bf.RelPath))
		if err != nil {
			return errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		if hash != bf.SHA256Hash {
			return errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", bf.RelPath)
		}
	}

	for _, bf := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(backupPath, bf.RelPath))
		if err != nil {
			return errors.Wrapf(err, "reading backup file %s", bf.RelPath)
		}
		if err := fileutil.WriteFile(bf.OriginalPath, data, bf.Mode.Perm()); err != nil {
			return errors.Wrapf(err, "restoring %s", bf.OriginalPath)
		}
	}
	return nil
}

// List returns all backups for an engine, newest first.
func (m *Manager) List(engine string) ([]Manifest, error) {
	if engine == "" {
		return nil, errors.New("engine is required")
	}

	entries, err := os.ReadDir(m.engineDir(engine))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(engine, entry.Name())
		if err != nil {
			// Not a complete backup.
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Prune removes all but the newest keep backups of an engine.
func (m *Manager) Prune(engine string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(engine)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil
		}
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(engine, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest for a specific backup.
func (m *Manager) Get(engine, backupID string) (*Manifest, error) {
	if engine == "" {
		return nil, errors.New("engine is required")
	}
	if backupID == "" || strings.ContainsAny(backupID, `/\`) {
		return nil, errors.Newf("invalid backup ID %q", backupID)
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(engine, backupID), manifestName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s not found", backupID)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	manifest.ID = backupID
	return &manifest, nil
}

func (m *Manager) engineDir(engine string) string {
	return filepath.Join(m.rootDir, engine)
}

func (m *Manager) backupPath(engine, backupID string) string {
	return filepath.Join(m.engineDir(engine), backupID)
}

// backupFile copies src into backupPath and records its hash and mode.
func backupFile(src, backupPath string) (*File, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return nil, errors.Wrap(err, "resolving path")
	}
	relPath := relPathFor(abs)
	dst := filepath.Join(backupPath, relPath)

	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, err := copyFile(abs, dst)
	if err != nil {
		return nil, err
	}
	return &File{OriginalPath: abs, RelPath: relPath, SHA256Hash: hash, Mode: mode}, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst, returning the SHA256 hash and mode of src.
// The copy is created private and keeps that mode, since engine files hold
// credentials.
func copyFile(src, dst string) (hash string, mode fs.FileMode, err error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dstFile, h), srcFile); err != nil {
		dstFile.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := dstFile.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}

	return hex.EncodeToString(h.Sum(nil)), srcInfo.Mode().Perm(), nil
}

// relPathFor maps an absolute path to a location inside a backup
// directory. Volume names and colons are removed so the result is valid
// on every platform.
func relPathFor(absPath string) string {
	clean := filepath.Clean(absPath)
	clean = strings.TrimPrefix(clean, filepath.VolumeName(clean))
	clean = strings.TrimLeft(clean, `/\`)
	return strings.ReplaceAll(clean, ":", "")
}
