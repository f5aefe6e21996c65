package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the default number of backups kept per engine.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the specified engine.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a backed up file no longer matches the
	// hash recorded in its manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrNothingToBackUp indicates none of the requested files exist.
	ErrNothingToBackUp = errors.New("no files to back up")
)

// Manifest contains metadata about a backup.
// It is stored as manifest.json in each backup directory.
type Manifest struct {
	// Version is the manifest format version.
	Version int `json:"version"`

	// CreatedAt is when the backup was created.
	CreatedAt time.Time `json:"created_at"`

	// Engine is the engine whose files were copied.
	Engine string `json:"engine"`

	// Files contains metadata for each backed up file.
	Files []File `json:"files"`

	// ToolVersion is the aisw version that created this backup.
	ToolVersion string `json:"tool_version"`

	// ID is the backup directory name. It is populated when loading from
	// disk and not stored in JSON.
	ID string `json:"-"`
}

// File contains metadata for a single backed up file.
type File struct {
	// OriginalPath is the absolute path where the file was located.
	OriginalPath string `json:"original_path"`

	// RelPath is the path within the backup directory.
	RelPath string `json:"rel_path"`

	// SHA256Hash is the hex-encoded SHA256 hash of the file contents.
	SHA256Hash string `json:"sha256_hash"`

	// Mode is the file's permission bits.
	Mode fs.FileMode `json:"mode"`
}
