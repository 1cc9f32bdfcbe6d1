// Package format defines the supported source audio formats and the glob
// matching used to select candidate files.
//
// Each format carries its file name patterns and the ordered list of external
// decoders able to read it. Pattern matching is case-insensitive; glob
// patterns are translated to regexps once and cached by pattern string.
package format
