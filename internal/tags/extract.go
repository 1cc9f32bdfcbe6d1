package tags

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dhowden/tag"

	"vorbify/internal/errs"
)

// id3v1Fields maps the fixed ID3v1 field names the tag library reports.
var id3v1Fields = map[string]string{
	"album":   "album",
	"artist":  "artist",
	"comment": "comment",
	"genre":   "genre",
	"title":   "title",
	"track":   "tracknumber",
	"year":    "date",
}

// Extract reads the source file's tag container and normalizes it into the
// canonical map. The remap table is chosen by the container actually found
// in the file, not the file extension. A parse failure returns an empty map
// alongside the error; callers warn and keep converting rather than aborting
// the file.
func Extract(path string) (Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return Map{}, errs.Wrap(errs.ErrTagRead, "tags", "open", path, err)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return Map{}, errs.Wrap(errs.ErrTagRead, "tags", "parse", path, err)
	}

	native := make(map[string][]string)
	for key, raw := range meta.Raw() {
		value, ok := coerce(raw)
		if !ok {
			continue
		}
		native[key] = append(native[key], value)
	}

	var out Map
	switch meta.Format() {
	case tag.ID3v1:
		out = Remap(native, id3v1Fields)
	case tag.ID3v2_2:
		out = Remap(native, id3v22Frames)
	case tag.ID3v2_3, tag.ID3v2_4:
		out = Remap(native, id3v2Frames)
	case tag.MP4:
		out = Remap(native, mp4Atoms)
	case tag.VORBIS:
		out = RemapVorbis(native)
	default:
		out = RemapVorbis(native)
	}

	backfill(out, meta)
	return out, nil
}

// backfill fills canonical basics through the library's typed accessors when
// the raw remap missed them, which happens for container-specific encodings
// of track and disc numbers.
func backfill(m Map, meta tag.Metadata) {
	fill := func(name, value string) {
		if _, ok := m[name]; ok {
			return
		}
		m.Add(name, value)
	}

	fill("title", meta.Title())
	fill("artist", meta.Artist())
	fill("album", meta.Album())
	fill("albumartist", meta.AlbumArtist())
	fill("composer", meta.Composer())
	fill("genre", meta.Genre())
	if year := meta.Year(); year != 0 {
		fill("date", strconv.Itoa(year))
	}
	if n, total := meta.Track(); n != 0 {
		fill("tracknumber", strconv.Itoa(n))
		if total != 0 {
			fill("tracktotal", strconv.Itoa(total))
		}
	}
	if n, total := meta.Disc(); n != 0 {
		fill("discnumber", strconv.Itoa(n))
		if total != 0 {
			fill("disctotal", strconv.Itoa(total))
		}
	}
	fill("lyrics", meta.Lyrics())
	fill("comment", meta.Comment())
}

// coerce turns a raw tag value into text. Rich comment frames contribute
// their text; pictures and other binary payloads are skipped.
func coerce(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *tag.Comm:
		if v == nil {
			return "", false
		}
		return v.Text, true
	case tag.Comm:
		return v.Text, true
	case *tag.Picture, tag.Picture:
		return "", false
	case []byte:
		return string(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}
