package media

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestSmartQualityKnownPoints(t *testing.T) {
	cases := []struct {
		bitrate    int
		correction float64
		want       float64
	}{
		{128, 0, 5.383 * math.Log(0.01616*128)},
		{192, 0, 5.383 * math.Log(0.01616*192)},
		{320, 0, 5.383 * math.Log(0.01616*320)},
		{192, 1.5, 5.383*math.Log(0.01616*192) - 1.5},
	}
	for _, tc := range cases {
		got := SmartQuality(tc.bitrate, tc.correction)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("SmartQuality(%d, %v) = %v, want %v", tc.bitrate, tc.correction, got, tc.want)
		}
	}
}

func TestSmartQualityAlwaysClamped(t *testing.T) {
	for _, bitrate := range []int{1, 8, 32, 64, 96, 128, 160, 192, 256, 320, 1000, 10000} {
		for _, correction := range []float64{-20, -5, 0, 5, 20} {
			got := SmartQuality(bitrate, correction)
			if got < MinQuality || got > MaxQuality {
				t.Fatalf("SmartQuality(%d, %v) = %v escapes [-1, 10]", bitrate, correction, got)
			}
		}
	}
}

func TestClampQuality(t *testing.T) {
	if got := ClampQuality(-3); got != MinQuality {
		t.Fatalf("low clamp: %v", got)
	}
	if got := ClampQuality(12); got != MaxQuality {
		t.Fatalf("high clamp: %v", got)
	}
	if got := ClampQuality(4.5); got != 4.5 {
		t.Fatalf("in range: %v", got)
	}
}

func frameHeader(mono bool) []byte {
	// MPEG1 Layer III, 128 kbps, 44.1 kHz.
	header := []byte{0xff, 0xfb, 0x90, 0x00}
	if mono {
		header[3] = 0xc0
	}
	return header
}

func TestScanHeaderChannelMode(t *testing.T) {
	stereo := bytes.NewReader(append(make([]byte, 10), frameHeader(false)...))
	if _, channels, err := scanHeader(stereo); err != nil || channels != 2 {
		t.Fatalf("stereo: channels=%d err=%v", channels, err)
	}

	mono := bytes.NewReader(append(make([]byte, 10), frameHeader(true)...))
	if _, channels, err := scanHeader(mono); err != nil || channels != 1 {
		t.Fatalf("mono: channels=%d err=%v", channels, err)
	}
}

func TestScanHeaderSkipsID3v2(t *testing.T) {
	// 100-byte ID3v2 body followed by a mono frame header.
	tag := []byte{'I', 'D', '3', 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 100}
	data := append(tag, make([]byte, 100)...)
	data = append(data, frameHeader(true)...)

	tagBytes, channels, err := scanHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("scanHeader: %v", err)
	}
	if tagBytes != 110 {
		t.Fatalf("tagBytes = %d, want 110", tagBytes)
	}
	if channels != 1 {
		t.Fatalf("channels = %d, want 1", channels)
	}
}

func TestScanHeaderNoSync(t *testing.T) {
	if _, _, err := scanHeader(bytes.NewReader(make([]byte, 2048))); err == nil {
		t.Fatal("expected error without a frame sync")
	}
}

func TestProbeRejectsNonMP3(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not.mp3")
	if err := os.WriteFile(path, []byte("plain text, no frames here"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Probe(path); err == nil {
		t.Fatal("expected probe failure for non-mp3 data")
	}
}

func TestProbeMissingFile(t *testing.T) {
	if _, err := Probe(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
