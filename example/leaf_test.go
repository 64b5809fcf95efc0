package example

import (
	"testing"

	"github.com/alexhholmes/flatipc"
	"github.com/alexhholmes/flatipc/lend"
)

func TestLeafNodeFillsOnePage(t *testing.T) {
	if got := flatipc.PaddedSize[LeafNode](); got != flatipc.PageSize {
		t.Fatalf("PaddedSize[LeafNode] = %d, want %d", got, flatipc.PageSize)
	}

	var node LeafNode
	node.Footer = 0xDEADBEEFCAFEBABE
	env, err := node.IntoEnvelope()
	if err != nil {
		t.Fatalf("IntoEnvelope() error: %v", err)
	}
	defer env.Drop()

	// Footer sits in the last eight bytes of the page
	b := env.Bytes()
	if b[4088] != 0xBE || b[4095] != 0xDE {
		t.Errorf("footer bytes = % x, want little-endian 0xDEADBEEFCAFEBABE", b[4088:])
	}
}

func TestLeafNodeInsertLookup(t *testing.T) {
	var node LeafNode
	for _, k := range []uint32{300, 100, 200} {
		if !node.Insert(k, k*10) {
			t.Fatalf("Insert(%d) failed", k)
		}
	}

	live := node.Live()
	if len(live) != 3 || live[0].Key != 100 || live[2].Key != 300 {
		t.Errorf("Live() = %+v, want sorted keys", live)
	}
	if off, ok := node.Lookup(200); !ok || off != 2000 {
		t.Errorf("Lookup(200) = %d, %v", off, ok)
	}
	if _, ok := node.Lookup(250); ok {
		t.Error("Lookup(250) should miss")
	}

	for i := 3; i < LeafCapacity; i++ {
		node.Insert(uint32(1000+i), 0)
	}
	if node.Insert(1, 1) {
		t.Error("Insert into a full node should fail")
	}
}

func TestLeafNodeLend(t *testing.T) {
	reg := lend.NewRegistry(lend.DefaultOptions())

	// Read server: looks up the key passed in Arg
	conn := reg.Register(func(op lend.Op) (uintptr, uintptr) {
		node, ok := flatipc.FromBuffer[LeafNode](op.Buffer, op.Signature)
		if !ok {
			return 0, 1
		}
		off, found := node.Lookup(uint32(op.Arg))
		if !found {
			return 0, 2
		}
		return uintptr(off), 0
	}, nil)

	var node LeafNode
	node.Insert(7, 700)
	node.Insert(9, 900)
	env, err := node.IntoEnvelope()
	if err != nil {
		t.Fatalf("IntoEnvelope() error: %v", err)
	}
	defer env.Drop()

	off, status, err := env.Lend(reg, conn, 0, 9)
	if err != nil || status != 0 || off != 900 {
		t.Errorf("Lend(9) = %d, %d, %v; want 900, 0, nil", off, status, err)
	}
	_, status, _ = env.Lend(reg, conn, 0, 8)
	if status != 2 {
		t.Errorf("Lend(8) status = %d, want 2", status)
	}
}
