// Package media probes mp3 stream properties. Smart-quality estimation
// needs the source bitrate, and raw-PCM pipe encoding needs the sample rate
// and channel count of the original stream.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// StreamInfo describes the source mp3 stream.
type StreamInfo struct {
	SampleRate  int
	Channels    int
	BitrateKbps int
	Duration    time.Duration
}

// Probe decodes enough of the file to report its stream properties. An error
// means the file is not a usable mp3 stream; callers fall back to configured
// defaults.
func Probe(path string) (StreamInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return StreamInfo{}, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return StreamInfo{}, err
	}

	tagBytes, channels, err := scanHeader(file)
	if err != nil {
		return StreamInfo{}, err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return StreamInfo{}, err
	}
	decoder, err := mp3.NewDecoder(file)
	if err != nil {
		return StreamInfo{}, fmt.Errorf("decode mp3 stream: %w", err)
	}

	info := StreamInfo{
		SampleRate: decoder.SampleRate(),
		Channels:   channels,
	}
	if info.SampleRate <= 0 {
		return StreamInfo{}, errors.New("mp3 stream reports no sample rate")
	}

	// Length is the decoded PCM byte count: 16-bit stereo, 4 bytes per
	// sample regardless of the source channel mode.
	pcmBytes := decoder.Length()
	if pcmBytes <= 0 {
		return StreamInfo{}, errors.New("mp3 stream length unavailable")
	}
	seconds := float64(pcmBytes) / float64(4*info.SampleRate)
	if seconds <= 0 {
		return StreamInfo{}, errors.New("mp3 stream reports zero duration")
	}
	info.Duration = time.Duration(seconds * float64(time.Second))

	audioBytes := stat.Size() - tagBytes
	if audioBytes <= 0 {
		return StreamInfo{}, errors.New("mp3 stream holds no audio data")
	}
	info.BitrateKbps = int(float64(audioBytes)*8/seconds/1000 + 0.5)
	if info.BitrateKbps <= 0 {
		return StreamInfo{}, errors.New("mp3 bitrate not detectable")
	}
	return info, nil
}

// scanHeader skips any leading ID3v2 block, finds the first MPEG frame sync,
// and reads the channel mode from its header. The decoding library always
// emits stereo PCM, so the source channel count has to come from the frame
// header directly.
func scanHeader(r io.ReadSeeker) (tagBytes int64, channels int, err error) {
	var id3 [10]byte
	if _, err := io.ReadFull(r, id3[:]); err != nil {
		return 0, 0, fmt.Errorf("read stream head: %w", err)
	}

	var offset int64
	if id3[0] == 'I' && id3[1] == 'D' && id3[2] == '3' {
		size := int64(id3[6]&0x7f)<<21 | int64(id3[7]&0x7f)<<14 | int64(id3[8]&0x7f)<<7 | int64(id3[9]&0x7f)
		offset = 10 + size
	}
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return 0, 0, err
	}

	// Scan a bounded window for the frame sync pattern.
	const window = 64 * 1024
	buf := make([]byte, window)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, 0, err
	}
	buf = buf[:n]
	for i := 0; i+3 < len(buf); i++ {
		if buf[i] != 0xff || buf[i+1]&0xe0 != 0xe0 {
			continue
		}
		version := buf[i+1] >> 3 & 0x03
		layer := buf[i+1] >> 1 & 0x03
		if version == 0x01 || layer == 0x00 {
			continue
		}
		mode := buf[i+3] >> 6
		if mode == 0x03 {
			return offset, 1, nil
		}
		return offset, 2, nil
	}
	return 0, 0, errors.New("no MPEG frame sync found")
}
