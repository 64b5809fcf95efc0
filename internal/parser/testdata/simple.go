package testdata

// @flatipc repr=C
type Point struct {
	X int16
	Y int16
}

// Gid is a 128-bit object identifier.
type Gid [4]uint32

// Rectangle is a canvas region.
//
// @flatipc repr=C
type Rectangle struct {
	TL, BR Point
	Canvas Gid
}

// @flatipc repr=C
type PixelColor uint8

// No annotation - should be skipped
type IgnoredType struct {
	Field *uint32
}
