package flatipc_test

import "github.com/alexhholmes/flatipc"

// The types below implement by hand what flatipcgen generates.

type point struct {
	X, Y int16
}

var pointSignature = flatipc.SignatureOf("record point{X int16;Y int16;}")

func (point) IPCSafe()          {}
func (point) Signature() uint32 { return pointSignature }

type value struct {
	Value uint32
}

var valueSignature = flatipc.SignatureOf("record value{Value uint32;}")

func (value) IPCSafe()          {}
func (value) Signature() uint32 { return valueSignature }

type ping struct{}

var pingSignature = flatipc.SignatureOf("record ping{}")

func (ping) IPCSafe()          {}
func (ping) Signature() uint32 { return pingSignature }

// bulk spans two pages.
type bulk struct {
	Data [5000]byte
}

var bulkSignature = flatipc.SignatureOf("record bulk{Data [5000]byte;}")

func (bulk) IPCSafe()          {}
func (bulk) Signature() uint32 { return bulkSignature }

// page fills exactly one page.
type page struct {
	Words [1024]uint32
}

var pageSignature = flatipc.SignatureOf("record page{Words [1024]uint32;}")

func (page) IPCSafe()          {}
func (page) Signature() uint32 { return pageSignature }

// tracked records every destructor run in dropped.
type tracked struct {
	ID uint32
}

var (
	trackedSignature = flatipc.SignatureOf("record tracked{ID uint32;}")
	dropped          []uint32
)

func (tracked) IPCSafe()          {}
func (tracked) Signature() uint32 { return trackedSignature }
func (t *tracked) Drop()          { dropped = append(dropped, t.ID) }

// leaky claims the flat capability without being flat.
type leaky struct {
	N uint32
	P *int
}

var leakySignature = flatipc.SignatureOf("record leaky{N uint32;P *int;}")

func (leaky) IPCSafe()          {}
func (leaky) Signature() uint32 { return leakySignature }

// view nests generic containers.
type view struct {
	Origin point
	Clip   flatipc.Option[[2]point]
	Status flatipc.Result[uint32, int8]
}

var viewSignature = flatipc.SignatureOf("record view{Origin point;Clip flatipc.Option[[2]point];Status flatipc.Result[uint32, int8];}")

func (view) IPCSafe()          {}
func (view) Signature() uint32 { return viewSignature }
