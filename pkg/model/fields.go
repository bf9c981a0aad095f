package model

import "strings"

type Depth int

const (
	DepthSurface Depth = iota
	DepthBottom
)

func (d Depth) String() string {
	switch d {
	case DepthSurface:
		return "Surface"
	case DepthBottom:
		return "Bottom"
	default:
		return "Surface"
	}
}

// Code is the single-letter suffix used in the first header row.
func (d Depth) Code() string {
	switch d {
	case DepthBottom:
		return "B"
	default:
		return "S"
	}
}

func ParseDepth(code string) (Depth, bool) {
	switch code {
	case "S":
		return DepthSurface, true
	case "B":
		return DepthBottom, true
	default:
		return DepthSurface, false
	}
}

type FunctionalType int

const (
	FunctionalUnclassified FunctionalType = iota
	FunctionalMixoplankton
	FunctionalOther
)

func (f FunctionalType) String() string {
	switch f {
	case FunctionalMixoplankton:
		return "mixoplankton"
	case FunctionalOther:
		return "other"
	default:
		return "unclassified"
	}
}

// ParseFunctionalType maps a reference-table value to a functional type.
// Anything that is not mixoplankton is "other"; Unclassified is never read
// from the reference table, it only marks a lookup miss.
func ParseFunctionalType(s string) FunctionalType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mixoplankton", "mixotroph":
		return FunctionalMixoplankton
	default:
		return FunctionalOther
	}
}
