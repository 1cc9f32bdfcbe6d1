package format

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

var (
	patternMu    sync.Mutex
	patternCache = make(map[string]*regexp.Regexp)
)

// compilePattern translates a shell-style glob into an anchored
// case-insensitive regexp. Compiled patterns are cached by the pattern
// string so repeated directory scans never recompile.
func compilePattern(pattern string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[pattern]; ok {
		return re
	}

	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")

	re := regexp.MustCompile(b.String())
	patternCache[pattern] = re
	return re
}

// MatchAny reports whether any name matches any of the glob patterns.
func MatchAny(patterns, names []string) bool {
	for _, pattern := range patterns {
		re := compilePattern(pattern)
		for _, name := range names {
			if re.MatchString(name) {
				return true
			}
		}
	}
	return false
}

// Filter returns the subset of names matching at least one pattern,
// sorted and without duplicates.
func Filter(patterns, names []string) []string {
	matched := make(map[string]struct{})
	for _, pattern := range patterns {
		re := compilePattern(pattern)
		for _, name := range names {
			if re.MatchString(name) {
				matched[name] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(matched))
	for name := range matched {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
