package deps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vorbify/internal/errs"
	"vorbify/internal/format"
)

func stubBinary(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	stubBinary(t, binDir, "present")

	reqs := []Requirement{
		{Name: "Present", Command: filepath.Join(binDir, "present"), Description: "test tool"},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Name != "Present" || results[0].Description != "test tool" {
		t.Fatalf("requirement fields not carried: %#v", results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
}

func TestResolveRegistryPreferenceOrder(t *testing.T) {
	binDir := t.TempDir()
	stubBinary(t, binDir, "oggenc")
	stubBinary(t, binDir, "mplayer")
	stubBinary(t, binDir, "faad")
	t.Setenv("PATH", binDir)

	reg := ResolveRegistry()

	// faad precedes mplayer in the m4a preference list.
	cmd, ok := reg.Decoder(format.M4A)
	if !ok || cmd != "faad" {
		t.Fatalf("m4a decoder = %q ok=%v, want faad", cmd, ok)
	}
	choices := reg.Choices(format.M4A)
	if len(choices) != 2 || choices[0] != "faad" || choices[1] != "mplayer" {
		t.Fatalf("unexpected m4a choices: %v", choices)
	}

	// mp3 falls back to mplayer with mpg123 absent.
	cmd, ok = reg.Decoder(format.MP3)
	if !ok || cmd != "mplayer" {
		t.Fatalf("mp3 decoder = %q ok=%v, want mplayer", cmd, ok)
	}

	// wav needs no decoder at all.
	if _, ok := reg.Decoder(format.WAV); !ok {
		t.Fatal("wav must always resolve")
	}

	// flac has no resolvable decoder here.
	if _, ok := reg.Decoder(format.FLAC); ok {
		t.Fatal("flac should not resolve without the flac binary")
	}
}

func TestRequire(t *testing.T) {
	binDir := t.TempDir()
	stubBinary(t, binDir, "oggenc")
	stubBinary(t, binDir, "mpg123")
	t.Setenv("PATH", binDir)

	reg := ResolveRegistry()
	if err := reg.Require([]format.ID{format.MP3, format.WAV}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := reg.Require([]format.ID{format.FLAC})
	if err == nil {
		t.Fatal("expected error for missing flac decoder")
	}
	if !errors.Is(err, errs.ErrPrecondition) {
		t.Fatalf("expected precondition marker, got %v", err)
	}
}

func TestRequireMissingEncoder(t *testing.T) {
	binDir := t.TempDir()
	stubBinary(t, binDir, "mpg123")
	t.Setenv("PATH", binDir)

	reg := ResolveRegistry()
	err := reg.Require([]format.ID{format.MP3})
	if !errors.Is(err, errs.ErrPrecondition) {
		t.Fatalf("expected precondition error without oggenc, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	binDir := t.TempDir()
	stubBinary(t, binDir, "oggenc")
	stubBinary(t, binDir, "mpg123")
	stubBinary(t, binDir, "mplayer")
	t.Setenv("PATH", binDir)

	reg := ResolveRegistry()
	if err := reg.Select(format.MP3, "mplayer"); err != nil {
		t.Fatalf("select mplayer: %v", err)
	}
	if cmd, _ := reg.Decoder(format.MP3); cmd != "mplayer" {
		t.Fatalf("decoder after select = %q", cmd)
	}

	if err := reg.Select(format.MP3, "flac"); !errors.Is(err, errs.ErrUsage) {
		t.Fatalf("expected usage error for wrong tool, got %v", err)
	}
	if err := reg.Select(format.WV, "wvunpack"); !errors.Is(err, errs.ErrPrecondition) {
		t.Fatalf("expected precondition error for missing tool, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	binDir := t.TempDir()
	stubBinary(t, binDir, "oggenc")
	stubBinary(t, binDir, "flac")
	t.Setenv("PATH", binDir)

	reg := ResolveRegistry()
	got := reg.Available()
	want := []format.ID{format.FLAC, format.WAV}
	if len(got) != len(want) {
		t.Fatalf("Available = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Available = %v, want %v", got, want)
		}
	}
}

func TestRequirementsDedupesSharedDecoders(t *testing.T) {
	reg := ResolveRegistry()
	seen := make(map[string]int)
	for _, req := range reg.Requirements() {
		seen[req.Command]++
	}
	if seen["mplayer"] != 1 {
		t.Fatalf("mplayer listed %d times, want once", seen["mplayer"])
	}
	if seen[EncoderBinary] != 1 {
		t.Fatal("encoder must be listed")
	}
}
