// Package convert runs the per-file conversion pipeline: tag extraction,
// decode through an external tool, Ogg Vorbis encode, output validation, and
// tag write-back.
package convert

import (
	"strconv"

	"vorbify/internal/media"
	"vorbify/internal/tools"
)

// pipeTemplates holds the decoder invocations that stream decoded audio on
// stdout. Tools absent here can only write files.
var pipeTemplates = map[string]tools.Template{
	"mpg123":   {Tool: "mpg123", Args: []string{"-q", "-s", "{input}"}, Streams: true},
	"faad":     {Tool: "faad", Args: []string{"-q", "-w", "{input}"}, Streams: true},
	"flac":     {Tool: "flac", Args: []string{"-s", "-d", "-c", "{input}"}, Streams: true},
	"wvunpack": {Tool: "wvunpack", Args: []string{"-q", "{input}", "-o", "-"}, Streams: true},
	"mpcdec":   {Tool: "mpcdec", Args: []string{"{input}", "-"}, Streams: true},
}

// fileTemplates holds the decoder invocations that write an intermediate wav.
var fileTemplates = map[string]tools.Template{
	"mpg123":   {Tool: "mpg123", Args: []string{"-q", "-w", "{wav}", "{input}"}},
	"faad":     {Tool: "faad", Args: []string{"-q", "-o", "{wav}", "{input}"}},
	"flac":     {Tool: "flac", Args: []string{"-s", "-d", "-f", "-o", "{wav}", "{input}"}},
	"mplayer":  {Tool: "mplayer", Args: []string{"-really-quiet", "-vo", "null", "-vc", "null", "-ao", "pcm:fast:file={wav}", "{input}"}},
	"mac":      {Tool: "mac", Args: []string{"{input}", "{wav}", "-d"}},
	"wvunpack": {Tool: "wvunpack", Args: []string{"-q", "{input}", "-o", "{wav}"}},
	"mpcdec":   {Tool: "mpcdec", Args: []string{"{input}", "{wav}"}},
}

// CanPipe reports whether the tool can stream decoded audio on stdout.
// mplayer and mac are file-output only.
func CanPipe(tool string) bool {
	return pipeTemplates[tool].Streams
}

// rawPCM reports whether the tool's streamed output is headerless PCM rather
// than WAV. oggenc then needs explicit raw-input hints from a stream probe.
func rawPCM(tool string) bool {
	return tool == "mpg123"
}

func decodePipeCommand(tool, input string) (tools.Command, error) {
	return pipeTemplates[tool].Render(tool, map[string]string{"input": input})
}

func decodeFileCommand(tool, input, wav string) (tools.Command, error) {
	return fileTemplates[tool].Render(tool, map[string]string{"input": input, "wav": wav})
}

func formatQuality(quality float64) string {
	return strconv.FormatFloat(quality, 'f', 2, 64)
}

// encodeStdinCommand builds the oggenc invocation reading audio from stdin.
// For raw PCM producers the stream's sample rate and channel count must be
// passed along since the data carries no header.
func encodeStdinCommand(encoder string, quality float64, output string, raw *media.StreamInfo) tools.Command {
	args := []string{"-Q", "-q", formatQuality(quality), "-o", output}
	if raw != nil {
		args = append(args, "-r",
			"--raw-rate", strconv.Itoa(raw.SampleRate),
			"--raw-chan", strconv.Itoa(raw.Channels))
	}
	args = append(args, "-")
	return tools.Command{Binary: encoder, Args: args}
}

// encodeFileCommand builds the oggenc invocation reading a wav file. Used for
// wav sources and for the intermediate of file-mode decoding.
func encodeFileCommand(encoder string, quality float64, output, input string) tools.Command {
	return tools.Command{Binary: encoder, Args: []string{"-Q", "-q", formatQuality(quality), "-o", output, input}}
}
