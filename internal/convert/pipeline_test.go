package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vorbify/internal/deps"
	"vorbify/internal/errs"
	"vorbify/internal/format"
	"vorbify/internal/logging"
	"vorbify/internal/media"
	"vorbify/internal/scan"
	"vorbify/internal/tools"
)

// stubExecutor records every invocation and can be told to fail specific
// binaries.
type stubExecutor struct {
	runs  []tools.Command
	pipes [][2]tools.Command
	fail  map[string]error
}

func (s *stubExecutor) Run(_ context.Context, cmd tools.Command) error {
	s.runs = append(s.runs, cmd)
	return s.fail[cmd.Binary]
}

func (s *stubExecutor) RunPipe(_ context.Context, producer, consumer tools.Command) error {
	s.pipes = append(s.pipes, [2]tools.Command{producer, consumer})
	if err := s.fail[producer.Binary]; err != nil {
		return err
	}
	return s.fail[consumer.Binary]
}

func stubBinary(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func testRegistry(t *testing.T, binaries ...string) *deps.Registry {
	t.Helper()
	binDir := t.TempDir()
	for _, name := range binaries {
		stubBinary(t, binDir, name)
	}
	t.Setenv("PATH", binDir)
	return deps.ResolveRegistry()
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not really audio"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func newConverter(opts Options) *Converter {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return New(opts)
}

func TestConvertWavPassthrough(t *testing.T) {
	reg := testRegistry(t, "oggenc")
	exec := &stubExecutor{}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3})

	dir := t.TempDir()
	source := writeSource(t, dir, "track.wav")
	def, _ := format.Lookup(format.WAV)

	result := conv.Convert(context.Background(), source, def)
	if !result.Succeeded() {
		t.Fatalf("convert: %v", result.Err)
	}
	if len(exec.pipes) != 0 {
		t.Fatal("wav source must not decode")
	}
	if len(exec.runs) != 1 {
		t.Fatalf("expected one encode run, got %d", len(exec.runs))
	}
	cmd := exec.runs[0]
	if cmd.Binary != "oggenc" {
		t.Fatalf("binary = %s", cmd.Binary)
	}
	want := []string{"-Q", "-q", "3.00", "-o", filepath.Join(dir, "track.ogg"), source}
	if strings.Join(cmd.Args, " ") != strings.Join(want, " ") {
		t.Fatalf("args = %v, want %v", cmd.Args, want)
	}
	if result.Job.OggPath != filepath.Join(dir, "track.ogg") {
		t.Fatalf("ogg path = %s", result.Job.OggPath)
	}
}

func TestConvertFlacPipe(t *testing.T) {
	reg := testRegistry(t, "oggenc", "flac")
	exec := &stubExecutor{}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 5})

	dir := t.TempDir()
	source := writeSource(t, dir, "song.flac")
	def, _ := format.Lookup(format.FLAC)

	result := conv.Convert(context.Background(), source, def)
	if !result.Succeeded() {
		t.Fatalf("convert: %v", result.Err)
	}
	if len(exec.pipes) != 1 {
		t.Fatalf("expected one pipe, got %d pipes and %d runs", len(exec.pipes), len(exec.runs))
	}
	producer, consumer := exec.pipes[0][0], exec.pipes[0][1]
	if producer.Binary != "flac" {
		t.Fatalf("producer = %s", producer.Binary)
	}
	wantProd := []string{"-s", "-d", "-c", source}
	if strings.Join(producer.Args, " ") != strings.Join(wantProd, " ") {
		t.Fatalf("producer args = %v", producer.Args)
	}
	if consumer.Binary != "oggenc" || consumer.Args[len(consumer.Args)-1] != "-" {
		t.Fatalf("consumer = %s %v", consumer.Binary, consumer.Args)
	}
	if !result.Job.Pipe || result.Job.Decoder != "flac" {
		t.Fatalf("job = %+v", result.Job)
	}
}

func TestConvertFileModeRemovesWav(t *testing.T) {
	reg := testRegistry(t, "oggenc", "mplayer")
	dir := t.TempDir()
	source := writeSource(t, dir, "clip.wma")
	wav := filepath.Join(dir, "clip.wav")

	exec := &stubExecutor{}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3})
	// Simulate the decoder having produced the intermediate.
	if err := os.WriteFile(wav, []byte("wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	def, _ := format.Lookup(format.WMA)
	result := conv.Convert(context.Background(), source, def)
	if !result.Succeeded() {
		t.Fatalf("convert: %v", result.Err)
	}
	if len(exec.runs) != 2 {
		t.Fatalf("expected decode then encode, got %d runs", len(exec.runs))
	}
	if exec.runs[0].Binary != "mplayer" {
		t.Fatalf("first run = %s", exec.runs[0].Binary)
	}
	joined := strings.Join(exec.runs[0].Args, " ")
	if !strings.Contains(joined, "pcm:fast:file="+wav) {
		t.Fatalf("mplayer args missing wav target: %v", exec.runs[0].Args)
	}
	if exec.runs[1].Binary != "oggenc" || exec.runs[1].Args[len(exec.runs[1].Args)-1] != wav {
		t.Fatalf("encode run = %s %v", exec.runs[1].Binary, exec.runs[1].Args)
	}
	if _, err := os.Stat(wav); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("wav intermediate should be removed")
	}
}

func TestConvertKeepWav(t *testing.T) {
	reg := testRegistry(t, "oggenc", "mac")
	dir := t.TempDir()
	source := writeSource(t, dir, "old.ape")
	wav := filepath.Join(dir, "old.wav")
	if err := os.WriteFile(wav, []byte("wav"), 0o644); err != nil {
		t.Fatal(err)
	}

	exec := &stubExecutor{}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3, KeepWav: true})
	def, _ := format.Lookup(format.APE)

	result := conv.Convert(context.Background(), source, def)
	if !result.Succeeded() {
		t.Fatalf("convert: %v", result.Err)
	}
	if _, err := os.Stat(wav); err != nil {
		t.Fatalf("wav intermediate should remain: %v", err)
	}
}

func TestConvertNoPipeForcesFileMode(t *testing.T) {
	reg := testRegistry(t, "oggenc", "flac")
	exec := &stubExecutor{}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3, NoPipe: true})

	dir := t.TempDir()
	source := writeSource(t, dir, "song.flac")
	def, _ := format.Lookup(format.FLAC)

	result := conv.Convert(context.Background(), source, def)
	if !result.Succeeded() {
		t.Fatalf("convert: %v", result.Err)
	}
	if len(exec.pipes) != 0 || len(exec.runs) != 2 {
		t.Fatalf("expected file mode, got %d pipes %d runs", len(exec.pipes), len(exec.runs))
	}
	if result.Job.Pipe {
		t.Fatal("job should not report pipe mode")
	}
}

func TestConvertUnprobeableMP3FallsBackToFileMode(t *testing.T) {
	// The source is not a real mp3, so the stream probe fails and raw-PCM
	// piping via mpg123 is impossible.
	reg := testRegistry(t, "oggenc", "mpg123")
	exec := &stubExecutor{}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3, Smart: true})

	dir := t.TempDir()
	source := writeSource(t, dir, "broken.mp3")
	def, _ := format.Lookup(format.MP3)

	result := conv.Convert(context.Background(), source, def)
	if !result.Succeeded() {
		t.Fatalf("convert: %v", result.Err)
	}
	if len(exec.pipes) != 0 {
		t.Fatal("raw pipe must not be used without stream info")
	}
	if len(exec.runs) != 2 {
		t.Fatalf("expected decode then encode, got %d runs", len(exec.runs))
	}
	// Smart mode could not estimate, so the configured quality applies.
	if result.Job.Quality != 3 {
		t.Fatalf("quality = %v, want configured 3", result.Job.Quality)
	}
}

func TestConvertDecodeFailure(t *testing.T) {
	reg := testRegistry(t, "oggenc", "flac")
	exec := &stubExecutor{fail: map[string]error{"flac": errors.New("exit status 1")}}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3})

	dir := t.TempDir()
	source := writeSource(t, dir, "song.flac")
	def, _ := format.Lookup(format.FLAC)

	result := conv.Convert(context.Background(), source, def)
	if result.Succeeded() {
		t.Fatal("expected failure")
	}
	if !errors.Is(result.Err, errs.ErrExternalTool) {
		t.Fatalf("want external tool marker, got %v", result.Err)
	}
	if errs.ExitCode(result.Err) != 1 {
		t.Fatalf("unexpected exit mapping: %v", result.Err)
	}
}

func TestConvertDeleteInput(t *testing.T) {
	reg := testRegistry(t, "oggenc")
	exec := &stubExecutor{}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3, DeleteInput: true})

	dir := t.TempDir()
	source := writeSource(t, dir, "track.wav")
	def, _ := format.Lookup(format.WAV)

	result := conv.Convert(context.Background(), source, def)
	if !result.Succeeded() {
		t.Fatalf("convert: %v", result.Err)
	}
	if _, err := os.Stat(source); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("source should be deleted after success")
	}
}

func TestConvertVerifyFailurePreservesInput(t *testing.T) {
	reg := testRegistry(t, "oggenc")
	exec := &stubExecutor{}
	conv := newConverter(Options{
		Registry: reg, Exec: exec,
		Quality: 3, DeleteInput: true, VerifyOutput: true,
	})

	dir := t.TempDir()
	source := writeSource(t, dir, "track.wav")
	def, _ := format.Lookup(format.WAV)

	// The stub executor produces no output file, so read-back verification
	// must fail and the input must stay.
	result := conv.Convert(context.Background(), source, def)
	if result.Succeeded() {
		t.Fatal("expected verification failure")
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source must survive a failed conversion: %v", err)
	}
}

func TestSmartQualityScopedPerFile(t *testing.T) {
	reg := testRegistry(t, "oggenc", "mpg123")
	exec := &stubExecutor{}
	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3, Smart: true})
	// The first file probes as a 320 kbps stream; the second has no
	// readable mpeg frames.
	conv.probe = func(path string) (media.StreamInfo, error) {
		if strings.Contains(path, "first") {
			return media.StreamInfo{SampleRate: 44100, Channels: 2, BitrateKbps: 320}, nil
		}
		return media.StreamInfo{}, errors.New("no MPEG frame sync found")
	}

	dir := t.TempDir()
	writeSource(t, dir, "a_first.mp3")
	writeSource(t, dir, "b_second.mp3")

	sets, err := scan.Collect([]string{dir}, false)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	summary, err := conv.Run(context.Background(), sets, []format.ID{format.MP3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(summary.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(summary.Results))
	}

	smart := media.SmartQuality(320, 0)
	if summary.Results[0].Job.Quality != smart {
		t.Fatalf("first job quality = %v, want smart estimate %v", summary.Results[0].Job.Quality, smart)
	}
	// The estimate is scoped to its own file: the next job starts from the
	// configured quality again.
	if summary.Results[1].Job.Quality != 3 {
		t.Fatalf("second job quality = %v, want configured 3", summary.Results[1].Job.Quality)
	}
}

func TestRunDispatchAndSummary(t *testing.T) {
	reg := testRegistry(t, "oggenc", "flac", "mpg123", "mplayer")
	exec := &stubExecutor{}

	dir := t.TempDir()
	writeSource(t, dir, "a.mp3")
	writeSource(t, dir, "b.flac")
	writeSource(t, dir, "c.txt")
	writeSource(t, dir, "d.wma")

	var observed []Result
	conv := newConverter(Options{
		Registry: reg, Exec: exec, Quality: 3,
		OnResult: func(r Result) { observed = append(observed, r) },
	})

	sets, err := scan.Collect([]string{dir}, false)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	summary, err := conv.Run(context.Background(), sets, []format.ID{format.MP3, format.FLAC})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Converted != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	// d.wma matches a supported format that is not active.
	if summary.Skipped != 1 {
		t.Fatalf("skipped = %d, want 1", summary.Skipped)
	}
	if len(observed) != 2 {
		t.Fatalf("observer saw %d results", len(observed))
	}
}

func TestRunPartialFailure(t *testing.T) {
	reg := testRegistry(t, "oggenc", "flac")
	exec := &stubExecutor{fail: map[string]error{"flac": errors.New("exit status 1")}}

	dir := t.TempDir()
	writeSource(t, dir, "bad.flac")
	writeSource(t, dir, "fine.wav")

	conv := newConverter(Options{Registry: reg, Exec: exec, Quality: 3})
	sets, err := scan.Collect([]string{dir}, false)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	summary, err := conv.Run(context.Background(), sets, []format.ID{format.FLAC, format.WAV})
	if err == nil {
		t.Fatal("expected partial failure")
	}
	if !errors.Is(err, errs.ErrPartialFailure) {
		t.Fatalf("want partial failure marker, got %v", err)
	}
	if errs.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d", errs.ExitCode(err))
	}
	if summary.Converted != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}
