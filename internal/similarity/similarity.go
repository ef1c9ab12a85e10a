// Package similarity defines the text-pair similarity capability consumed by
// the scorer and the reorganizer. The capability is injected: callers pick a
// provider at startup and thread it through every component call.
package similarity

import "context"

// Provider computes a similarity score in [0, 1] for a pair of texts.
// Implementations must return 0 when either input has no usable
// representation (empty or degenerate text).
type Provider interface {
	Name() string
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Clamp bounds a raw similarity value to [0, 1].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
