package convert

import (
	"errors"
	"fmt"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// VerifyOgg opens a produced file and confirms it holds a decodable Ogg
// Vorbis stream. Encoder exit codes alone do not guarantee a usable file
// when a pipe producer died mid-stream.
func VerifyOgg(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer file.Close()

	reader, err := oggvorbis.NewReader(file)
	if err != nil {
		return fmt.Errorf("read ogg stream: %w", err)
	}
	if reader.SampleRate() <= 0 || reader.Channels() <= 0 {
		return errors.New("ogg stream reports no audio parameters")
	}
	return nil
}
