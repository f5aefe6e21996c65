package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/aisw/internal/credential"
	"github.com/thoreinstein/aisw/internal/platform"
	"github.com/thoreinstein/aisw/internal/platform/jsondoc"
)

// Target modes applied by --fix.
const (
	secureFilePerm   os.FileMode = 0o644
	secureDirPerm    os.FileMode = 0o755
	secureSecretPerm os.FileMode = 0o600
)

// PathPermissionCheck validates the paths and modes of engine files.
type PathPermissionCheck struct {
	PermissionFixer
	registry *platform.Registry
}

var (
	_ Check = (*PathPermissionCheck)(nil)
	_ Fixer = (*PathPermissionCheck)(nil)
)

// NewPathPermissionCheck creates a new path permission check.
func NewPathPermissionCheck(r *platform.Registry) *PathPermissionCheck {
	return &PathPermissionCheck{registry: r}
}

// Name returns the unique identifier for this check.
func (c *PathPermissionCheck) Name() string {
	return "path-permissions"
}

// Category returns the grouping for this check.
func (c *PathPermissionCheck) Category() string {
	return "filesystem"
}

// Run executes the path and permission diagnostic check.
func (c *PathPermissionCheck) Run(context.Context) *CheckResult {
	var issues []pathIssue
	var checked int

	for _, e := range c.registry.All() {
		if dir := e.GlobalConfigDir(); dir != "" {
			issues = append(issues, checkDirectory(dir, e.Name())...)
			checked++
		}
	}
	for _, f := range filesOf(c.registry) {
		issues = append(issues, checkFile(f)...)
		checked++
	}

	c.setIssues(issues)
	return c.buildResult(issues, checked)
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Engine      string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	Target      os.FileMode
}

func (i pathIssue) fixHint() string {
	if i.Target == 0 {
		return ""
	}
	return fmt.Sprintf("chmod %s %s", formatPermissions(i.Target), i.Path)
}

// checkFile validates an engine file. A missing file is not an issue.
func checkFile(f engineFile) []pathIssue {
	info, err := os.Stat(f.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return []pathIssue{{
			Path:     f.Path,
			Engine:   f.Engine,
			Type:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		}}
	}
	if info.IsDir() {
		return []pathIssue{{
			Path:     f.Path,
			Engine:   f.Engine,
			Type:     "file",
			Problem:  "expected file but found directory",
			Severity: SeverityError,
		}}
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		return []pathIssue{{
			Path:        f.Path,
			Engine:      f.Engine,
			Type:        "file",
			Problem:     "file is not readable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			Target:      targetFilePerm(f),
		}}
	}
	fh.Close()

	if runtime.GOOS == "windows" {
		return nil
	}
	return checkFilePermissions(f, info.Mode())
}

func targetFilePerm(f engineFile) os.FileMode {
	if f.Secret {
		return secureSecretPerm
	}
	return secureFilePerm
}

// checkFilePermissions flags world-writable files and credential files
// readable by anyone but the owner.
func checkFilePermissions(f engineFile, mode os.FileMode) []pathIssue {
	perm := mode.Perm()
	base := pathIssue{
		Path:        f.Path,
		Engine:      f.Engine,
		Type:        "file",
		Severity:    SeverityWarning,
		Permissions: formatPermissions(mode),
		Fixable:     true,
		Target:      targetFilePerm(f),
	}

	switch {
	case f.Secret && perm&0o077 != 0:
		base.Problem = fmt.Sprintf("credential file is accessible by other users (mode %s, expected %s)",
			formatPermissions(mode), formatPermissions(secureSecretPerm))
		if perm&0o004 == 0 && perm&0o002 == 0 {
			base.Severity = SeverityInfo
		}
		return []pathIssue{base}
	case perm&0o002 != 0:
		base.Problem = "file is world-writable (security risk)"
		return []pathIssue{base}
	default:
		return nil
	}
}

// checkDirectory validates a config directory. A missing directory is not
// an issue.
func checkDirectory(path, engine string) []pathIssue {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Engine:   engine,
			Type:     "directory",
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		}}
	}
	if !info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Engine:   engine,
			Type:     "directory",
			Problem:  "expected directory but found file",
			Severity: SeverityError,
		}}
	}

	var issues []pathIssue
	if !isDirectoryWritable(path) {
		issues = append(issues, pathIssue{
			Path:        path,
			Engine:      engine,
			Type:        "directory",
			Problem:     "directory is not writable",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
		})
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        path,
			Engine:      engine,
			Type:        "directory",
			Problem:     "directory is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			Target:      secureDirPerm,
		})
	}
	return issues
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func isDirectoryWritable(path string) bool {
	tmp, err := os.CreateTemp(path, ".aisw-doctor-*")
	if err != nil {
		return false
	}
	name := tmp.Name()
	tmp.Close()
	os.Remove(name)
	return true
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *PathPermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d paths have valid permissions", checked),
		}
	}

	highest := SeverityPass
	fixable := false
	var fixHints []string
	issueDetails := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		highest = max(highest, issue.Severity)
		m := map[string]any{
			"path":     issue.Path,
			"engine":   issue.Engine,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			m["permissions"] = issue.Permissions
		}
		if hint := issue.fixHint(); hint != "" {
			m["fix_hint"] = hint
			fixHints = append(fixHints, hint)
		}
		if issue.Fixable {
			fixable = true
		}
		issueDetails = append(issueDetails, m)
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   highest,
		Message:  fmt.Sprintf("found %d permission issue(s) across %d paths", len(issues), checked),
		Details: map[string]any{
			"checked_paths": checked,
			"issue_count":   len(issues),
			"issues":        issueDetails,
		},
		Fixable: fixable,
		FixHint: strings.Join(fixHints, "; "),
	}
}

// formatPermissions returns the octal permission bits (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// ConfigSyntaxCheck validates that every engine file parses.
type ConfigSyntaxCheck struct {
	registry *platform.Registry
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck creates a new ConfigSyntaxCheck instance.
func NewConfigSyntaxCheck(r *platform.Registry) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{registry: r}
}

// Name returns the unique identifier for this check.
func (c *ConfigSyntaxCheck) Name() string {
	return "config-syntax"
}

// Category returns the grouping for this check.
func (c *ConfigSyntaxCheck) Category() string {
	return "config"
}

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Path    string `json:"path" yaml:"path"`
	Engine  string `json:"engine" yaml:"engine"`
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Run parses the MCP file of each engine and the Codex auth.json.
func (c *ConfigSyntaxCheck) Run(context.Context) *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  make(map[string]any),
	}

	var fileResults []syntaxFileResult
	var errorCount, passCount, missingCount int
	for _, f := range filesOf(c.registry) {
		fr := validateFile(f)
		fileResults = append(fileResults, fr)
		switch fr.Status {
		case "pass":
			passCount++
		case "error":
			errorCount++
		case "info":
			missingCount++
		}
	}

	result.Details["files"] = fileResults
	result.Details["checked"] = len(fileResults)
	result.Details["passed"] = passCount
	result.Details["errors"] = errorCount
	result.Details["missing"] = missingCount

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d config file(s) have syntax errors", errorCount)
		result.FixHint = "fix the reported files by hand or restore one with: aisw backup restore <engine>"
	case passCount > 0:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d config file(s) validated successfully", passCount)
	default:
		result.Status = SeverityInfo
		result.Message = "no config files found to validate"
	}
	return result
}

// validateFile checks if a file is syntactically valid.
func validateFile(f engineFile) syntaxFileResult {
	fr := syntaxFileResult{Path: f.Path, Engine: f.Engine}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		switch {
		case errors.Is(err, os.ErrNotExist):
			fr.Status = "info"
			fr.Message = "file does not exist (not configured)"
		case errors.Is(err, os.ErrPermission):
			fr.Status = "error"
			fr.Message = fmt.Sprintf("permission denied: %v", err)
		default:
			fr.Status = "error"
			fr.Message = fmt.Sprintf("read error: %v", err)
		}
		return fr
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		fr.Status = "pass"
		fr.Message = "empty file"
		return fr
	}

	switch {
	case f.Secret:
		err = validateCredential(data)
	case strings.EqualFold(filepath.Ext(f.Path), ".toml"):
		err = validateTOML(data)
	default:
		_, err = jsondoc.Parse(data)
	}
	if err != nil {
		fr.Status = "error"
		fr.Message = err.Error()
		return fr
	}
	fr.Status = "pass"
	return fr
}

func validateCredential(data []byte) error {
	if _, err := jsondoc.Parse(data); err != nil {
		return err
	}
	_, err := credential.Parse(data)
	return err
}

// validateTOML parses data and reports the position of syntax errors.
func validateTOML(data []byte) error {
	var v map[string]any
	err := toml.Unmarshal(data, &v)
	if err == nil {
		return nil
	}
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return errors.Newf("TOML syntax error at line %d, column %d: %s", row, col, decodeErr.Error())
	}
	return errors.Wrap(err, "TOML error")
}
