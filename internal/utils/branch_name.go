package utils

import (
	"regexp"
	"strings"
)

// MaxBranchNameByteLength keeps refs/heads/<name> within a 255 byte file name
const MaxBranchNameByteLength = 244

var (
	// invalidBranchChars matches everything but letters, numbers, -, _, / and .
	invalidBranchChars = regexp.MustCompile(`[^-_/.a-zA-Z0-9]+`)
	repeatedHyphens    = regexp.MustCompile(`-+`)
	repeatedSlashes    = regexp.MustCompile(`/{2,}`)
	repeatedDots       = regexp.MustCompile(`\.{2,}`)
)

// SanitizeBranchName turns text typed at a prompt into a name git accepts
// for a new branch. It returns "" when nothing usable is left.
func SanitizeBranchName(name string) string {
	name = invalidBranchChars.ReplaceAllString(strings.TrimSpace(name), "-")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = repeatedSlashes.ReplaceAllString(name, "/")
	name = repeatedDots.ReplaceAllString(name, ".")
	name = strings.ReplaceAll(name, "/.", "/")

	parts := strings.Split(name, "/")
	kept := parts[:0]
	for _, part := range parts {
		if part = trimComponent(part); part != "" {
			kept = append(kept, part)
		}
	}
	name = strings.Join(kept, "/")

	if len(name) > MaxBranchNameByteLength {
		name = name[:MaxBranchNameByteLength]
		for {
			trimmed := trimComponent(strings.TrimRight(name, "/"))
			if trimmed == name {
				break
			}
			name = trimmed
		}
	}
	return name
}

// trimComponent strips what git refuses at the edges of a path component:
// leading and trailing dots and hyphens, and a .lock suffix.
func trimComponent(part string) string {
	for {
		trimmed := strings.TrimSuffix(strings.Trim(part, "-."), ".lock")
		if trimmed == part {
			return part
		}
		part = trimmed
	}
}
