package tags

import "strings"

// Remap tables translate native field identifiers to canonical names. The
// tables are fixed; extending one is a compatibility change.

// id3v2Frames maps ID3v2.3/2.4 frame identifiers.
var id3v2Frames = map[string]string{
	"TALB": "album",
	"TBPM": "bpm",
	"TCMP": "compilation",
	"TCOM": "composer",
	"TCON": "genre",
	"TCOP": "copyright",
	"TDRC": "date",
	"TYER": "date",
	"TDAT": "date",
	"TENC": "encodedby",
	"TEXT": "lyricist",
	"TIT1": "description",
	"TIT2": "title",
	"TIT3": "version",
	"TLAN": "language",
	"TMED": "media",
	"TMOO": "mood",
	"TOWN": "label",
	"TPE1": "artist",
	"TPE2": "albumartist",
	"TPE3": "conductor",
	"TPE4": "remixer",
	"TPOS": "discnumber",
	"TPUB": "organization",
	"TRCK": "tracknumber",
	"TSOA": "albumsort",
	"TSOC": "composersort",
	"TSOP": "artistsort",
	"TSOT": "titlesort",
	"TSRC": "isrc",
	"TSST": "discsubtitle",
	"COMM": "comment",
	"USLT": "lyrics",
	"WCOP": "license",
	"WOAR": "website",
}

// id3v22Frames maps the three-character ID3v2.2 frame identifiers.
var id3v22Frames = map[string]string{
	"TAL": "album",
	"TBP": "bpm",
	"TCM": "composer",
	"TCO": "genre",
	"TCR": "copyright",
	"TEN": "encodedby",
	"TP1": "artist",
	"TP2": "albumartist",
	"TP3": "conductor",
	"TP4": "remixer",
	"TPA": "discnumber",
	"TPB": "organization",
	"TRK": "tracknumber",
	"TT1": "description",
	"TT2": "title",
	"TT3": "version",
	"TXT": "lyricist",
	"TYE": "date",
	"COM": "comment",
	"ULT": "lyrics",
}

// mp4Atoms maps MP4/M4A metadata atom names.
var mp4Atoms = map[string]string{
	"\xa9alb": "album",
	"\xa9art": "artist",
	"\xa9ART": "artist",
	"aART":    "albumartist",
	"\xa9cmt": "comment",
	"\xa9day": "date",
	"\xa9gen": "genre",
	"gnre":    "genre",
	"\xa9lyr": "lyrics",
	"\xa9nam": "title",
	"\xa9too": "encodedby",
	"\xa9wrt": "composer",
	"cpil":    "compilation",
	"cprt":    "copyright",
	"disk":    "discnumber",
	"soaa":    "albumartistsort",
	"soal":    "albumsort",
	"soar":    "artistsort",
	"soco":    "composersort",
	"sonm":    "titlesort",
	"tmpo":    "bpm",
	"trkn":    "tracknumber",
}

// asfAttributes maps Windows Media (ASF) attribute names.
var asfAttributes = map[string]string{
	"Author":               "artist",
	"Copyright":            "copyright",
	"Description":          "comment",
	"Title":                "title",
	"WM/AlbumArtist":       "albumartist",
	"WM/AlbumSortOrder":    "albumsort",
	"WM/AlbumTitle":        "album",
	"WM/ArtistSortOrder":   "artistsort",
	"WM/Barcode":           "barcode",
	"WM/BeatsPerMinute":    "bpm",
	"WM/CatalogNo":         "catalognumber",
	"WM/Composer":          "composer",
	"WM/Conductor":         "conductor",
	"WM/EncodedBy":         "encodedby",
	"WM/Genre":             "genre",
	"WM/ISRC":              "isrc",
	"WM/Language":          "language",
	"WM/Lyrics":            "lyrics",
	"WM/Media":             "media",
	"WM/ModifiedBy":        "remixer",
	"WM/Mood":              "mood",
	"WM/PartOfSet":         "discnumber",
	"WM/Producer":          "producer",
	"WM/Publisher":         "label",
	"WM/SetSubTitle":       "discsubtitle",
	"WM/TitleSortOrder":    "titlesort",
	"WM/TrackNumber":       "tracknumber",
	"WM/Writer":            "lyricist",
	"WM/Year":              "date",
}

// apeKeys maps APEv2 item keys, shared by ape, wv, and mpc containers.
// APEv2 keys are case-insensitive; lookups go through titleKey.
var apeKeys = map[string]string{
	"Album":          "album",
	"Album Artist":   "albumartist",
	"Arranger":       "arranger",
	"Artist":         "artist",
	"Barcode":        "barcode",
	"Catalog":        "catalognumber",
	"Comment":        "comment",
	"Compilation":    "compilation",
	"Composer":       "composer",
	"Conductor":      "conductor",
	"Copyright":      "copyright",
	"Disc":           "discnumber",
	"DiscSubtitle":   "discsubtitle",
	"EncodedBy":      "encodedby",
	"Genre":          "genre",
	"ISRC":           "isrc",
	"Label":          "label",
	"Language":       "language",
	"Lyricist":       "lyricist",
	"Lyrics":         "lyrics",
	"Media":          "media",
	"Mixer":          "mixer",
	"Mood":           "mood",
	"Producer":       "producer",
	"Publisher":      "publisher",
	"Title":          "title",
	"Track":          "tracknumber",
	"Year":           "date",
}

// Remap filters a native key/value set through a remap table into the
// canonical map. Unknown native keys, and mapped names that somehow fall
// outside the vocabulary, are dropped.
func Remap(native map[string][]string, table map[string]string) Map {
	out := make(Map)
	for key, values := range native {
		canonical, ok := table[key]
		if !ok {
			continue
		}
		for _, value := range values {
			out.Add(canonical, value)
		}
	}
	return out
}

// RemapVorbis keeps vorbis-comment style keys (flac sources) that already use
// canonical names, lowercasing them first.
func RemapVorbis(native map[string][]string) Map {
	out := make(Map)
	for key, values := range native {
		for _, value := range values {
			out.Add(strings.ToLower(key), value)
		}
	}
	return out
}

// RemapAPE applies the APEv2 table with case-insensitive keys.
func RemapAPE(native map[string][]string) Map {
	folded := make(map[string][]string, len(native))
	for key, values := range native {
		folded[titleKey(key)] = append(folded[titleKey(key)], values...)
	}
	return Remap(folded, apeKeys)
}

// titleKey folds an APEv2 item key to the spelling used by the table:
// case-insensitive match against the table's own keys.
func titleKey(key string) string {
	for candidate := range apeKeys {
		if strings.EqualFold(candidate, key) {
			return candidate
		}
	}
	return key
}
