package expression

import "fmt"

// Device idiom the stylesheet is being resolved for. Numeric values are part
// of the expression language: they must agree with the constant table.
type Idiom int

const (
	IdiomUnspecified Idiom = -1
	IdiomPhone       Idiom = 0
	IdiomPad         Idiom = 1
	IdiomTV          Idiom = 2
	IdiomCarPlay     Idiom = 3
	IdiomMac         Idiom = 5
)

func (i Idiom) String() string {
	switch i {
	case IdiomPhone:
		return "phone"
	case IdiomPad:
		return "pad"
	case IdiomTV:
		return "tv"
	case IdiomCarPlay:
		return "carplay"
	case IdiomMac:
		return "mac"
	default:
		return "unspecified"
	}
}

func ParseIdiom(s string) (Idiom, error) {
	switch s {
	case "phone":
		return IdiomPhone, nil
	case "pad":
		return IdiomPad, nil
	case "tv":
		return IdiomTV, nil
	case "carplay":
		return IdiomCarPlay, nil
	case "mac":
		return IdiomMac, nil
	case "unspecified":
		return IdiomUnspecified, nil
	}
	return IdiomUnspecified, fmt.Errorf("unknown idiom %q", s)
}

// Interface orientation.
type Orientation int

const (
	OrientationUnknown   Orientation = 0
	OrientationPortrait  Orientation = 1
	OrientationLandscape Orientation = 2
)

func (o Orientation) String() string {
	switch o {
	case OrientationPortrait:
		return "portrait"
	case OrientationLandscape:
		return "landscape"
	default:
		return "unknown"
	}
}

func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "portrait":
		return OrientationPortrait, nil
	case "landscape":
		return OrientationLandscape, nil
	}
	return OrientationUnknown, fmt.Errorf("unknown orientation %q", s)
}

// Horizontal or vertical size class.
type SizeClass int

const (
	SizeClassUndefined SizeClass = 0
	SizeClassCompact   SizeClass = 1
	SizeClassRegular   SizeClass = 2
)

func (c SizeClass) String() string {
	switch c {
	case SizeClassCompact:
		return "compact"
	case SizeClassRegular:
		return "regular"
	default:
		return "undefined"
	}
}

func ParseSizeClass(s string) (SizeClass, error) {
	switch s {
	case "compact":
		return SizeClassCompact, nil
	case "regular":
		return SizeClassRegular, nil
	case "undefined":
		return SizeClassUndefined, nil
	}
	return SizeClassUndefined, fmt.Errorf("unknown size class %q", s)
}
