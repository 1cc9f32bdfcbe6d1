package media

import "math"

// Vorbis quality scale bounds.
const (
	MinQuality = -1.0
	MaxQuality = 10.0
)

// SmartQuality derives a target Vorbis quality from a source mp3 bitrate via
// a logarithmic regression fit, minus a user correction, clamped to the
// encoder's quality scale. The coefficients are part of the tool's observable
// behavior and must not be retuned casually.
func SmartQuality(bitrateKbps int, correction float64) float64 {
	quality := 5.383*math.Log(0.01616*float64(bitrateKbps)) - correction
	return ClampQuality(quality)
}

// ClampQuality bounds a quality value to the Vorbis scale [-1, 10].
func ClampQuality(quality float64) float64 {
	if quality < MinQuality {
		return MinQuality
	}
	if quality > MaxQuality {
		return MaxQuality
	}
	return quality
}
