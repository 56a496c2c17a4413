package ast

import (
	"hash/fnv"
	"math"
)

// Equal reports structural equality: kind, leaf text, and children, in order.
// Spans are deliberately excluded so a node copied into a new location still
// matches its original occurrence.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind || a.Text != b.Text {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equal: equal nodes hash
// identically. Collisions are possible and callers must confirm matches
// with Equal.
func Hash(n *Node) uint64 {
	h := fnv.New64a()
	hashNode(h, n)
	return h.Sum64()
}

type hasher interface {
	Write(p []byte) (int, error)
}

func hashNode(h hasher, n *Node) {
	if n == nil {
		h.Write([]byte{0xff})
		return
	}
	h.Write([]byte{byte(n.Kind)})
	writeLen(h, len(n.Text))
	h.Write([]byte(n.Text))
	writeLen(h, len(n.Children))
	for _, c := range n.Children {
		hashNode(h, c)
	}
}

func writeLen(h hasher, n int) {
	if n < 0 || n > math.MaxUint32 {
		n = math.MaxUint32
	}
	var buf [4]byte
	buf[0] = byte(n >> 24)
	buf[1] = byte(n >> 16)
	buf[2] = byte(n >> 8)
	buf[3] = byte(n)
	h.Write(buf[:])
}
