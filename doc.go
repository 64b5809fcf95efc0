// Package flatipc wraps fixed-size, pointer-free values in page-aligned
// envelopes that can be lent across a process boundary without copying or
// re-encoding.
//
// Types opt in with a layout directive on their declaration:
//
//	// @flatipc repr=C
//	type Point struct {
//		X int16
//		Y int16
//	}
//
// and running the generator:
//
//	//go:generate go run github.com/alexhholmes/flatipc/cmd/flatipcgen -file $GOFILE
//
// The generator certifies that every field is flat, emitting one
// compile-time proof obligation per field, and gives the type its
// structural Signature and an IntoEnvelope method. At runtime:
//
//	p := Point{X: 1, Y: 2}
//	env, err := p.IntoEnvelope() // p is moved into env
//	env.AsOriginal().X = 3       // zero-copy view
//	reply0, reply1, err := env.LendMut(reg, conn, opcode, 0)
//	p, err = env.IntoOriginal()  // or env.Drop()
//
// A receiver reconstructs the value from raw bytes only when the buffer is
// large enough and the claimed signature matches:
//
//	if v, ok := flatipc.FromBuffer[Point](buf, sig); ok { ... }
package flatipc
