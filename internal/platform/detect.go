package platform

import (
	"os"
)

// InstallStatus indicates the installation state of an engine.
type InstallStatus string

const (
	// StatusInstalled indicates the engine's config directory and MCP file exist.
	StatusInstalled InstallStatus = "installed"

	// StatusNotInstalled indicates neither exists.
	StatusNotInstalled InstallStatus = "not_installed"

	// StatusPartial indicates only one of the two exists, typically an
	// engine that was installed but never configured.
	StatusPartial InstallStatus = "partial"
)

// DetectionResult contains information about a detected engine.
type DetectionResult struct {
	// Name is the engine identifier (claude, codex, gemini).
	Name string

	// DisplayName is the human-readable engine name.
	DisplayName string

	// GlobalConfig is the path to the engine's config directory.
	// This path is always set, even if the directory does not exist.
	GlobalConfig string

	// MCPConfig is the path to the MCP configuration file.
	// This path is always set, even if the file does not exist.
	MCPConfig string

	// Status indicates the installation state of the engine.
	Status InstallStatus
}

// Detect inspects the files of e.
func Detect(e Engine) *DetectionResult {
	if e == nil {
		return nil
	}
	globalConfig := e.GlobalConfigDir()
	mcpConfig := e.MCPConfigPath()

	dir, file := dirExists(globalConfig), fileExists(mcpConfig)
	status := StatusNotInstalled
	switch {
	case dir && file:
		status = StatusInstalled
	case dir || file:
		status = StatusPartial
	}

	return &DetectionResult{
		Name:         e.Name(),
		DisplayName:  e.DisplayName(),
		GlobalConfig: globalConfig,
		MCPConfig:    mcpConfig,
		Status:       status,
	}
}

// Detect returns detection results for every engine in registry order.
func (r *Registry) Detect() []*DetectionResult {
	engines := r.All()
	results := make([]*DetectionResult, 0, len(engines))
	for _, e := range engines {
		results = append(results, Detect(e))
	}
	return results
}

// Installed returns the engines whose status is not StatusNotInstalled.
func (r *Registry) Installed() []*DetectionResult {
	all := r.Detect()
	installed := make([]*DetectionResult, 0, len(all))
	for _, result := range all {
		if result.Status != StatusNotInstalled {
			installed = append(installed, result)
		}
	}
	return installed
}

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
