package doctor

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
)

// Fixer is implemented by checks that can repair what they report. Both
// methods act on the issues found by the last Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult is the outcome of one repair.
type FixResult struct {
	Path        string
	Fixed       bool
	Description string
	Error       error
}

// PermissionFixer repairs the modes reported by PathPermissionCheck.
// Embedding it gives a check the Fixer methods.
type PermissionFixer struct {
	issues []pathIssue
}

// CanFix reports whether the last run found a fixable mode.
func (f *PermissionFixer) CanFix() bool {
	return f.CountFixable() > 0
}

// Fix chmods every fixable path to its target mode.
func (f *PermissionFixer) Fix() []FixResult {
	results := make([]FixResult, 0, f.CountFixable())
	for _, issue := range f.issues {
		if issue.Fixable {
			results = append(results, fixIssue(issue))
		}
	}
	return results
}

func fixIssue(issue pathIssue) FixResult {
	res := FixResult{Path: issue.Path}
	if issue.Target == 0 {
		res.Description = "no target mode for " + issue.Type
		res.Error = errors.Newf("cannot fix %s: no target mode", issue.Path)
		return res
	}

	target := formatPermissions(issue.Target)
	err := os.Chmod(issue.Path, issue.Target)
	switch {
	case os.IsNotExist(err):
		res.Description = "path no longer exists"
		res.Error = errors.Wrapf(err, "chmod %s %s", target, issue.Path)
	case err != nil:
		res.Description = fmt.Sprintf("chmod %s failed: %v", target, err)
		res.Error = errors.Wrapf(err, "chmod %s %s", target, issue.Path)
	case issue.Permissions != "":
		res.Fixed = true
		res.Description = fmt.Sprintf("mode %s -> %s", issue.Permissions, target)
	default:
		res.Fixed = true
		res.Description = "chmod " + target
	}
	return res
}

func (f *PermissionFixer) setIssues(issues []pathIssue) {
	f.issues = issues
}

// CountFixable returns how many reported issues Fix would attempt.
func (f *PermissionFixer) CountFixable() int {
	n := 0
	for _, issue := range f.issues {
		if issue.Fixable {
			n++
		}
	}
	return n
}
