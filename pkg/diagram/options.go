package diagram

import (
	"log/slog"
	"strings"

	"github.com/rendis/flowviz/pkg/schema"
)

// Direction is a mermaid flowchart direction.
type Direction string

const (
	DirectionLR Direction = "LR"
	DirectionRL Direction = "RL"
	DirectionTB Direction = "TB"
	DirectionTD Direction = "TD"
	DirectionBT Direction = "BT"
)

// ParseDirection normalizes a direction value case-insensitively. Empty
// input defaults to LR; anything outside the five known values is a
// CONFIG_ERROR.
func ParseDirection(s string) (Direction, error) {
	if s == "" {
		return DirectionLR, nil
	}
	d := Direction(strings.ToUpper(s))
	switch d {
	case DirectionLR, DirectionRL, DirectionTB, DirectionTD, DirectionBT:
		return d, nil
	}
	return "", schema.NewErrorf(schema.ErrCodeConfig, "direction must be one of LR/RL/TB/TD/BT, got %q", s)
}

// DefaultMaxNodes is the traversal budget used by DefaultOptions.
const DefaultMaxNodes = 1000

// Options configure a single Visualize call. The zero value is not usable
// because MaxNodes must be positive; start from DefaultOptions.
type Options struct {
	// Direction is the flowchart direction, one of LR/RL/TB/TD/BT,
	// case-insensitive. Empty means LR.
	Direction string

	// ShowDefault renders the "default" action label on edges instead of a
	// bare arrow.
	ShowDefault bool

	// HighlightStarts applies a style class to every resolved flow entry
	// node.
	HighlightStarts bool

	// MaxNodes caps how many distinct objects discovery may visit before the
	// call fails. Must be positive.
	MaxNodes int

	// Logger receives a record per warning; nil disables logging. Warnings
	// are always collected in the returned Diagnostics regardless.
	Logger *slog.Logger
}

// DefaultOptions returns the standard configuration: LR direction,
// default-action labels hidden, start highlighting on, budget of 1000.
func DefaultOptions() Options {
	return Options{
		Direction:       string(DirectionLR),
		HighlightStarts: true,
		MaxNodes:        DefaultMaxNodes,
	}
}
