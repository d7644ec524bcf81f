package config

import (
	"github.com/osokin/composite/internal/geometry"
)

// DefaultStart is the geometry used when no start is configured: a small
// box in the upper right corner.
const DefaultStart = "85%,5%:10%x10%"

// Transition is the declarative configuration of one composite transition.
// Start and End use the geometry string syntax X[%],Y[%]:W[%]xH[%]:MIX[%];
// an empty End inherits every field from Start (keyframe inheritance).
type Transition struct {
	Start       string          `yaml:"start"`
	End         string          `yaml:"end,omitempty"`
	HAlign      string          `yaml:"halign,omitempty"`
	VAlign      string          `yaml:"valign,omitempty"`
	Distort     bool            `yaml:"distort,omitempty"`
	Progressive bool            `yaml:"progressive,omitempty"`
	Window      geometry.Window `yaml:"window"`
}

// Config carries the run-wide settings assembled by the CLI.
type Config struct {
	Background    string
	Overlay       string
	Output        string
	Width         int
	Height        int
	NormWidth     int
	NormHeight    int
	FPS           int
	Frames        int
	Workers       int
	DisplayAspect float64
	Quality       int
	VideoEncoder  string
	RawOutput     bool
	ShowStats     bool
	Transition    Transition
}
