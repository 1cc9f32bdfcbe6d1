// Package tags normalizes source-format metadata into the canonical Vorbis
// comment vocabulary and writes it to converted files.
//
// Each source format has an immutable remap table from its native field
// identifiers (ID3 frames, MP4 atoms, ASF attributes, APEv2 keys) to the
// canonical lowercase names. Only names inside the closed vocabulary survive
// remapping; everything else is silently dropped. Reading uses the dhowden
// tag library; writing delegates to the vorbiscomment binary so the produced
// ogg stays untouched by this process.
package tags
