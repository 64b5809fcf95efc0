package example

import "github.com/alexhholmes/flatipc"

//go:generate go run github.com/alexhholmes/flatipc/cmd/flatipcgen -file $GOFILE

// Point specifies a pixel coordinate.
//
// @flatipc repr=C
type Point struct {
	X int16
	Y int16
}

// PixelColor is the color of a monochrome pixel.
//
// @flatipc repr=C
type PixelColor uint8

const (
	Dark PixelColor = iota
	Light
)

// Bool reports whether the pixel is set.
func (c PixelColor) Bool() bool {
	return c == Dark
}

// DrawStyle holds the style properties of an object.
//
// @flatipc repr=C
type DrawStyle struct {
	FillColor   flatipc.Option[PixelColor]
	StrokeColor flatipc.Option[PixelColor]
	StrokeWidth int16
}

// @flatipc repr=C
type Rectangle struct {
	TL    Point
	BR    Point
	Style DrawStyle
}

// Gid is a 128-bit random identifier for graphical objects.
//
// @flatipc repr=C
type Gid [4]uint32

// Growth is a fixed-width text box that grows away from an anchor.
//
// @flatipc repr=C
type Growth struct {
	Anchor Point
	Width  uint16
}

// BoundsKind selects the live case of a TextBounds.
type BoundsKind uint8

const (
	BoundingBox BoundsKind = iota
	GrowableFromBr
	GrowableFromTl
	GrowableFromBl
	GrowableFromTr
	CenteredTop
	CenteredBot
)

// TextBounds places text on a canvas. Coordinates are local to the
// canvas, not the screen. Only the case selected by Kind is meaningful.
//
// @flatipc repr=C kind=variant
type TextBounds struct {
	Kind           BoundsKind
	BoundingBox    Rectangle `flatipc:"case=0"`
	GrowableFromBr Growth    `flatipc:"case=1"`
	GrowableFromTl Growth    `flatipc:"case=2"`
	GrowableFromBl Growth    `flatipc:"case=3"`
	GrowableFromTr Growth    `flatipc:"case=4"`
	CenteredTop    Rectangle `flatipc:"case=5"`
	CenteredBot    Rectangle `flatipc:"case=6"`
}

// Box returns bounds fixed to r.
func Box(r Rectangle) TextBounds {
	return TextBounds{Kind: BoundingBox, BoundingBox: r}
}

// GrowFromBottomRight returns bounds of the given width that grow up from
// anchor.
func GrowFromBottomRight(anchor Point, width uint16) TextBounds {
	return TextBounds{Kind: GrowableFromBr, GrowableFromBr: Growth{Anchor: anchor, Width: width}}
}

// Rect returns the rectangle of a rectangle-shaped case.
func (b TextBounds) Rect() (Rectangle, bool) {
	switch b.Kind {
	case BoundingBox:
		return b.BoundingBox, true
	case CenteredTop:
		return b.CenteredTop, true
	case CenteredBot:
		return b.CenteredBot, true
	}
	return Rectangle{}, false
}

// TextOp is the operation requested of a TextView.
type TextOp uint8

const (
	Nop TextOp = iota
	Render
	ComputeBounds
)

// GlyphStyle selects a Latin script font.
type GlyphStyle uint8

const (
	Small GlyphStyle = iota
	Regular
	Bold
	Monospace
	Cjk
	Large
	ExtraLarge
	Tall
)

// @flatipc repr=C
type Cursor struct {
	Pt         Point
	LineHeight uint
}

// TextView is a text drawing request sent to the graphics server. The
// string itself travels separately; only fixed-size state is carried here.
//
// @flatipc repr=C
type TextView struct {
	Operation          TextOp
	Canvas             Gid
	ClipRect           flatipc.Option[Rectangle]
	Untrusted          bool
	Token              flatipc.Option[[4]uint32]
	Invert             bool
	BoundsHint         TextBounds
	BoundsComputed     flatipc.Option[Rectangle]
	Overflow           flatipc.Option[bool]
	DryRun             bool
	Style              GlyphStyle
	Cursor             Cursor
	Insertion          flatipc.Option[int32]
	Ellipsis           bool
	DrawBorder         bool
	ClearArea          bool
	BorderWidth        uint16
	RoundedBorder      flatipc.Option[uint16]
	Margin             Point
	Selected           flatipc.Option[[2]uint32]
	BusyAnimationState flatipc.Option[uint32]
}

// NewTextView returns a view that draws onto canvas.
func NewTextView(canvas Gid, bounds TextBounds) TextView {
	return TextView{
		Operation:  Render,
		Canvas:     canvas,
		BoundsHint: bounds,
		ClearArea:  true,
		Style:      Regular,
	}
}

// Value is a single-word message.
//
// @flatipc repr=C
type Value struct {
	Value uint32
}
