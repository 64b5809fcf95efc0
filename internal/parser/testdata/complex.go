package testdata

import "github.com/alexhholmes/flatipc"

// @flatipc repr=C kind=variant
type TextBounds struct {
	Tag            uint8
	BoundingBox    Rectangle                       `flatipc:"case=0"`
	GrowableFromBr struct{ Anchor Point; W uint16 } `flatipc:"case=1"`
	CenteredTop    Rectangle                       `flatipc:"case=5"`
}

// @flatipc repr=C
type TextView struct {
	Point
	ClipRect flatipc.Option[Rectangle]
	Token    flatipc.Option[[4]uint32]
	Bounds   TextBounds
}

// @flatipc kind=union
type Raw struct {
	Word  uint32
	Bytes [4]byte
}
