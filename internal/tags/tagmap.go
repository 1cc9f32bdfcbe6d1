package tags

import "sort"

// Map is the canonical tag map: vocabulary name to one-or-many values.
type Map map[string][]string

// Add appends a value under a canonical name. Names outside the vocabulary
// and values that sanitize to nothing are dropped.
func (m Map) Add(name, value string) {
	if !Accepts(name) {
		return
	}
	value = Sanitize(value)
	if value == "" {
		return
	}
	m[name] = append(m[name], value)
}

// Empty reports whether the map holds no tags.
func (m Map) Empty() bool { return len(m) == 0 }

// Lines renders the map as name=value lines, one per value, sorted by name.
// This is the vorbiscomment stdin format.
func (m Map) Lines() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	var lines []string
	for _, name := range names {
		for _, value := range m[name] {
			lines = append(lines, name+"="+value)
		}
	}
	return lines
}
