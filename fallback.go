package flowicon

import (
	_ "embed"
)

//go:embed data/fallback.svg
var fallbackSVG []byte

// FallbackArtifact is the static icon handed to the sink when no raster capability is available.
type FallbackArtifact struct {
	Name string
	Data []byte
}

// FallbackSVG returns a copy of the embedded static icon.
func FallbackSVG() []byte {
	return append([]byte(nil), fallbackSVG...)
}
