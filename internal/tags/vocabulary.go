package tags

// vocabulary is the closed set of canonical Vorbis comment names. Keys
// outside it never survive remapping, regardless of source format. The set
// must stay stable for compatibility with libraries tagged by earlier
// versions.
var vocabulary = []string{
	"album",
	"albumartist",
	"albumartistsort",
	"albumsort",
	"arranger",
	"artist",
	"artistsort",
	"author",
	"barcode",
	"bpm",
	"catalognumber",
	"comment",
	"compilation",
	"composer",
	"composersort",
	"conductor",
	"contact",
	"copyright",
	"date",
	"description",
	"discnumber",
	"discsubtitle",
	"disctotal",
	"djmixer",
	"encodedby",
	"encoding",
	"engineer",
	"ensemble",
	"genre",
	"isrc",
	"label",
	"language",
	"license",
	"location",
	"lyricist",
	"lyrics",
	"media",
	"mixer",
	"mood",
	"musicbrainz_albumid",
	"musicbrainz_artistid",
	"musicbrainz_trackid",
	"opus",
	"organization",
	"part",
	"partnumber",
	"performer",
	"producer",
	"publisher",
	"releasecountry",
	"remixer",
	"replaygain_album_gain",
	"replaygain_album_peak",
	"replaygain_track_gain",
	"replaygain_track_peak",
	"script",
	"sourcemedia",
	"title",
	"titlesort",
	"tracknumber",
	"tracktotal",
	"version",
	"website",
}

var vocabularySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(vocabulary))
	for _, name := range vocabulary {
		set[name] = struct{}{}
	}
	return set
}()

// Accepts reports whether name belongs to the canonical vocabulary.
func Accepts(name string) bool {
	_, ok := vocabularySet[name]
	return ok
}

// Vocabulary returns the canonical names in sorted order.
func Vocabulary() []string {
	out := make([]string, len(vocabulary))
	copy(out, vocabulary)
	return out
}
