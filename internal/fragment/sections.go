package fragment

import "strings"

// section is a run of lines introduced by a table header.
// The leading top-level block has an empty name and no header.
type section struct {
	name  string
	lines []string
}

// splitSections splits text into the top-level block followed by one
// section per bracketed header, keeping every line verbatim.
func splitSections(text string) []section {
	sections := []section{{}}
	for _, line := range strings.Split(text, "\n") {
		if name, ok := headerName(line); ok {
			sections = append(sections, section{name: name})
		}
		cur := &sections[len(sections)-1]
		cur.lines = append(cur.lines, line)
	}
	return sections
}

func matchesPrefix(name, prefix string) bool {
	return name == prefix || strings.HasPrefix(name, prefix+".")
}

// StripSections removes every table section named prefix or nested under
// it (including array tables) and returns the remaining text unchanged.
func StripSections(text, prefix string) string {
	var kept []string
	for _, s := range splitSections(text) {
		if s.name != "" && matchesPrefix(s.name, prefix) {
			continue
		}
		kept = append(kept, s.lines...)
	}
	return strings.Join(kept, "\n")
}

// ExtractSections returns the verbatim text of every table section named
// prefix or nested under it, in file order. It returns "" when none exist.
func ExtractSections(text, prefix string) string {
	var picked []string
	for _, s := range splitSections(text) {
		if s.name != "" && matchesPrefix(s.name, prefix) {
			picked = append(picked, s.lines...)
		}
	}
	return strings.Join(picked, "\n")
}

// Join concatenates fragment pieces separated by a single blank line,
// skipping empty pieces. The result ends with a newline when non-empty.
func Join(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		p = strings.Trim(p, "\n")
		if strings.TrimSpace(p) == "" {
			continue
		}
		nonEmpty = append(nonEmpty, p)
	}
	if len(nonEmpty) == 0 {
		return ""
	}
	return strings.Join(nonEmpty, "\n\n") + "\n"
}
