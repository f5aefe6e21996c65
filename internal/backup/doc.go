// Package backup keeps copies of engine configuration files before aisw
// rewrites them, and restores them on request.
//
// Each backup is a directory holding the copied files and a manifest with
// their SHA256 hashes:
//
//	<data home>/aisw/backups/
//	└── {engine}/
//	    └── {timestamp}/
//	        ├── manifest.json
//	        └── {copied files...}
//
// Engine stores call [Manager.Snapshot] before a write. The first snapshot
// of an engine in a process creates a backup and prunes old ones down to
// the retention count; later snapshots of the same engine are no-ops, so a
// command that edits a file several times keeps only the original.
//
//	mgr := backup.NewManager(backup.WithRetentionCount(3))
//	if err := mgr.Snapshot("codex", authPath, configPath); err != nil {
//	    return err
//	}
//
// [Manager.Restore] verifies every hash before copying anything back.
package backup
