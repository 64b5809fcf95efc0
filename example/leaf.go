package example

//go:generate go run github.com/alexhholmes/flatipc/cmd/flatipcgen -file $GOFILE

// @flatipc repr=C
type LeafElement struct {
	Key    uint32
	Offset uint32
}

// @flatipc repr=C
type LeafHeader struct {
	NumKeys  uint16
	Flags    uint16
	NextPage uint32
	PrevPage uint32
	Reserved uint32
}

// LeafCapacity is the number of elements that fit between the header and
// the footer of a one-page LeafNode.
const LeafCapacity = 509

// LeafNode is a B-tree leaf that fills exactly one page: a 16-byte header
// at offset 0, the elements, and a footer at offset 4088.
//
// @flatipc repr=C
type LeafNode struct {
	Header   LeafHeader
	Elements [509]LeafElement
	Footer   uint64
}

// Insert appends an element, keeping keys sorted. It reports false when
// the node is full.
func (n *LeafNode) Insert(key, offset uint32) bool {
	count := int(n.Header.NumKeys)
	if count == LeafCapacity {
		return false
	}
	i := count
	for i > 0 && n.Elements[i-1].Key > key {
		n.Elements[i] = n.Elements[i-1]
		i--
	}
	n.Elements[i] = LeafElement{Key: key, Offset: offset}
	n.Header.NumKeys++
	return true
}

// Lookup returns the offset stored under key.
func (n *LeafNode) Lookup(key uint32) (uint32, bool) {
	lo, hi := 0, int(n.Header.NumKeys)
	for lo < hi {
		mid := (lo + hi) / 2
		switch k := n.Elements[mid].Key; {
		case k == key:
			return n.Elements[mid].Offset, true
		case k < key:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}

// Live returns the occupied elements.
func (n *LeafNode) Live() []LeafElement {
	return n.Elements[:n.Header.NumKeys]
}
