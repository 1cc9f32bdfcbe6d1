package deps

import (
	"fmt"
	"os/exec"

	"vorbify/internal/errs"
	"vorbify/internal/format"
)

// Tool names with a fixed role independent of source format.
const (
	EncoderBinary = "oggenc"
	TaggerBinary  = "vorbiscomment"
)

// Decoder records the resolution result for one format: the tool picked as
// default and every preferred tool that was actually found.
type Decoder struct {
	Format  format.ID
	Command string
	Choices []string
}

// Registry holds the decoder/encoder resolution performed once at startup.
type Registry struct {
	decoders   map[format.ID]Decoder
	hasEncoder bool
	hasTagger  bool
}

// ResolveRegistry scans PATH for every tool in each format's preference
// order. Missing tools are recorded, not fatal; callers decide which formats
// they actually need via Require.
func ResolveRegistry() *Registry {
	reg := &Registry{decoders: make(map[format.ID]Decoder)}
	for _, def := range format.All() {
		dec := Decoder{Format: def.ID}
		for _, tool := range def.Decoders {
			if _, err := exec.LookPath(tool); err != nil {
				continue
			}
			if dec.Command == "" {
				dec.Command = tool
			}
			dec.Choices = append(dec.Choices, tool)
		}
		reg.decoders[def.ID] = dec
	}
	if _, err := exec.LookPath(EncoderBinary); err == nil {
		reg.hasEncoder = true
	}
	if _, err := exec.LookPath(TaggerBinary); err == nil {
		reg.hasTagger = true
	}
	return reg
}

// Decoder returns the default decoder command for a format. WAV reports
// ok with an empty command since the encoder reads it directly.
func (r *Registry) Decoder(id format.ID) (string, bool) {
	dec, ok := r.decoders[id]
	if !ok {
		return "", false
	}
	if id == format.WAV {
		return "", true
	}
	return dec.Command, dec.Command != ""
}

// Choices returns every resolved decoder for a format, in preference order.
func (r *Registry) Choices(id format.ID) []string {
	return append([]string(nil), r.decoders[id].Choices...)
}

// Select overrides the default decoder for a format. The tool must be in the
// format's preference list and present on PATH.
func (r *Registry) Select(id format.ID, tool string) error {
	def, ok := format.Lookup(id)
	if !ok {
		return errs.Wrap(errs.ErrUsage, "deps", "select", fmt.Sprintf("unknown format %q", id), nil)
	}
	allowed := false
	for _, candidate := range def.Decoders {
		if candidate == tool {
			allowed = true
			break
		}
	}
	if !allowed {
		return errs.Wrap(errs.ErrUsage, "deps", "select", fmt.Sprintf("%s is not a %s decoder", tool, id), nil)
	}
	if _, err := exec.LookPath(tool); err != nil {
		return errs.Wrap(errs.ErrPrecondition, "deps", "select", fmt.Sprintf("decoder %q not found on PATH", tool), nil)
	}
	dec := r.decoders[id]
	dec.Command = tool
	r.decoders[id] = dec
	return nil
}

// Require verifies that every requested format has a usable decoder and that
// the encoder is present. Any gap is a fatal precondition.
func (r *Registry) Require(ids []format.ID) error {
	if !r.hasEncoder {
		return errs.Wrap(errs.ErrPrecondition, "deps", "resolve", fmt.Sprintf("encoder %q not found on PATH", EncoderBinary), nil)
	}
	for _, id := range ids {
		if _, ok := r.Decoder(id); !ok {
			return errs.Wrap(errs.ErrPrecondition, "deps", "resolve", fmt.Sprintf("no decoder available for %s", id), nil)
		}
	}
	return nil
}

// Available returns the formats whose decoder resolved, in registry order.
// This is the active set under "convert all".
func (r *Registry) Available() []format.ID {
	out := make([]format.ID, 0, len(r.decoders))
	for _, id := range format.IDs() {
		if _, ok := r.Decoder(id); ok {
			out = append(out, id)
		}
	}
	return out
}

// HasTagger reports whether the tag-writing binary resolved.
func (r *Registry) HasTagger() bool { return r.hasTagger }

// Requirements lists every external binary for status output: the encoder,
// the tagger, and each decoder with the formats it serves. Decoders shared
// between formats appear once.
func (r *Registry) Requirements() []Requirement {
	reqs := []Requirement{
		{Name: "oggenc", Command: EncoderBinary, Description: "Ogg Vorbis encoder"},
		{Name: "vorbiscomment", Command: TaggerBinary, Description: "Vorbis comment editor", Optional: true},
	}
	seen := make(map[string]int)
	for _, def := range format.All() {
		for i, tool := range def.Decoders {
			if idx, ok := seen[tool]; ok {
				reqs[idx].Description += ", " + string(def.ID)
				continue
			}
			seen[tool] = len(reqs)
			reqs = append(reqs, Requirement{
				Name:        tool,
				Command:     tool,
				Description: fmt.Sprintf("decoder: %s", def.ID),
				Optional:    i > 0,
			})
		}
	}
	return reqs
}
