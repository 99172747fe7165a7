package render

import "errors"

var (
	//ErrUnknownPalette is returned for palette names NewPalette does not know.
	ErrUnknownPalette = errors.New("render: unknown palette")
	//ErrNoFrames is returned when encoding an animation with no frames.
	ErrNoFrames = errors.New("render: animation has no frames")
	//ErrTooFewSamples is returned when a chart has fewer than two points.
	ErrTooFewSamples = errors.New("render: chart needs at least two samples")
)
