package doctor

import (
	"github.com/thoreinstein/aisw/internal/paths"
	"github.com/thoreinstein/aisw/internal/platform"
)

// engineFile is one file aisw reads or writes for an engine.
type engineFile struct {
	Engine string
	Path   string
	// Secret marks files holding credentials, which must not be readable
	// by group or other.
	Secret bool
}

// filesOf lists the files of every engine in registry order.
func filesOf(r *platform.Registry) []engineFile {
	var files []engineFile
	for _, e := range r.All() {
		if p := e.MCPConfigPath(); p != "" {
			files = append(files, engineFile{Engine: e.Name(), Path: p})
		}
		if e.Name() == paths.EngineCodex {
			files = append(files, engineFile{Engine: e.Name(), Path: r.Codex().AuthPath(), Secret: true})
		}
	}
	return files
}
