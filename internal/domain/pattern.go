package domain

import (
	"fmt"
	"time"
)

// StopTransform describes a stop relative to some reference point: lightness and
// chroma as ratios, hue as a signed shortest-path offset in degrees.
type StopTransform struct {
	LightnessMultiplier float64 `json:"lightnessMultiplier"`
	ChromaMultiplier    float64 `json:"chromaMultiplier"`
	HueShiftDegrees     float64 `json:"hueShiftDegrees"`
}

// IdentityTransform is the transform of a stop relative to itself.
func IdentityTransform() StopTransform {
	return StopTransform{LightnessMultiplier: 1, ChromaMultiplier: 1}
}

// PatternMetadata records where a pattern came from.
type PatternMetadata struct {
	SourceCount int     `json:"sourceCount"`
	Confidence  float64 `json:"confidence"`
}

// Pattern is a learned description of how lightness, chroma and hue change
// across the ten stops relative to ReferenceStop.
type Pattern struct {
	ID            string
	Name          string
	ReferenceStop StopPosition
	Transforms    Stops[StopTransform]
	Metadata      PatternMetadata
	CreatedAt     time.Time
}

// Transform returns the transform stored for stop.
func (p *Pattern) Transform(stop StopPosition) (StopTransform, error) {
	t, err := p.Transforms.At(stop)
	if err != nil {
		return StopTransform{}, fmt.Errorf("pattern %q: %w", p.Name, err)
	}
	return t, nil
}
