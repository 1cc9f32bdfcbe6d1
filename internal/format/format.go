package format

import "strings"

// ID names a supported source format.
type ID string

const (
	MP3  ID = "mp3"
	M4A  ID = "m4a"
	WMA  ID = "wma"
	FLAC ID = "flac"
	APE  ID = "ape"
	WV   ID = "wv"
	MPC  ID = "mpc"
	WAV  ID = "wav"
)

// Definition describes a supported source format: the glob patterns that
// select its files and the external decoders able to read it, in preference
// order. WAV carries no decoders because the encoder consumes it directly.
type Definition struct {
	ID       ID
	Patterns []string
	Decoders []string
}

var definitions = []Definition{
	{ID: MP3, Patterns: []string{"*.mp3"}, Decoders: []string{"mpg123", "mplayer"}},
	{ID: M4A, Patterns: []string{"*.m4a", "*.mp4", "*.aac"}, Decoders: []string{"faad", "mplayer"}},
	{ID: WMA, Patterns: []string{"*.wma"}, Decoders: []string{"mplayer"}},
	{ID: FLAC, Patterns: []string{"*.flac"}, Decoders: []string{"flac"}},
	{ID: APE, Patterns: []string{"*.ape"}, Decoders: []string{"mac", "mplayer"}},
	{ID: WV, Patterns: []string{"*.wv"}, Decoders: []string{"wvunpack"}},
	{ID: MPC, Patterns: []string{"*.mpc", "*.mp+", "*.mpp"}, Decoders: []string{"mpcdec", "mplayer"}},
	{ID: WAV, Patterns: []string{"*.wav"}, Decoders: nil},
}

// All returns every supported format definition in registry order.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// IDs returns the identifiers of every supported format in registry order.
func IDs() []ID {
	out := make([]ID, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def.ID)
	}
	return out
}

// Lookup returns the definition for the given format identifier.
func Lookup(id ID) (Definition, bool) {
	for _, def := range definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Parse resolves a user-supplied format name to a definition.
func Parse(name string) (Definition, bool) {
	return Lookup(ID(strings.ToLower(strings.TrimSpace(name))))
}

// Detect returns the format whose patterns match the given file name.
func Detect(name string) (Definition, bool) {
	for _, def := range definitions {
		if MatchAny(def.Patterns, []string{name}) {
			return def, true
		}
	}
	return Definition{}, false
}
