package huffman

import "math"

const (
	// MaxNodes is the arena size: 257 leaves, up to 256 internal nodes and
	// the sentinel.
	MaxNodes = 514
	sentinel = MaxNodes - 1

	noChild = -1
)

// Node is one slot of the tree arena. Count is the live weight used while
// merging and is zeroed once the node is merged; SavedCount keeps it.
type Node struct {
	Count      uint32
	SavedCount uint32
	Child0     int
	Child1     int
}

// IsLeaf reports whether index i addresses a symbol leaf.
func IsLeaf(i int) bool {
	return i <= EndOfStream
}

// Tree is a Huffman tree stored in a fixed arena. Slots 0..256 are the
// symbol leaves, internal nodes are appended from 257 on.
type Tree struct {
	Nodes [MaxNodes]Node
	Root  int
}

// Code is a right-justified bit pattern of Bits bits.
type Code struct {
	Value uint64
	Bits  int
}

// CodeTable maps every symbol to its code. Symbols missing from the tree
// have a zero-length code.
type CodeTable [SymbolCount]Code

// NewTree loads counts into the leaves and builds the tree.
func NewTree(counts *Counts) *Tree {
	t := new(Tree)
	for i := range t.Nodes {
		t.Nodes[i].Child0, t.Nodes[i].Child1 = noChild, noChild
	}
	for i, n := range counts {
		t.Nodes[i].Count = n
	}
	t.build()
	return t
}

// build merges the two lightest live nodes until one is left. The scan
// keeps the first of equal weights, so lower indices win ties.
func (t *Tree) build() {
	nodes := &t.Nodes
	nodes[sentinel].Count = math.MaxUint32
	nextFree := EndOfStream + 1

	for {
		min1, min2 := sentinel, sentinel
		for i := 0; i < nextFree; i++ {
			if nodes[i].Count == 0 {
				continue
			}
			if nodes[i].Count < nodes[min1].Count {
				min2 = min1
				min1 = i
			} else if nodes[i].Count < nodes[min2].Count {
				min2 = i
			}
		}
		if min2 == sentinel {
			break
		}

		nodes[nextFree].Count = nodes[min1].Count + nodes[min2].Count
		nodes[min1].SavedCount, nodes[min1].Count = nodes[min1].Count, 0
		nodes[min2].SavedCount, nodes[min2].Count = nodes[min2].Count, 0
		nodes[nextFree].Child0 = min1
		nodes[nextFree].Child1 = min2
		nextFree++
	}

	t.Root = nextFree - 1
	nodes[t.Root].SavedCount = nodes[t.Root].Count
}

// Codes walks the tree from the root and assigns each reachable leaf the
// path leading to it, 0 for Child0 and 1 for Child1.
func (t *Tree) Codes() *CodeTable {
	type frame struct {
		node int
		code Code
	}
	codes := new(CodeTable)
	stack := []frame{{node: t.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if IsLeaf(f.node) {
			codes[f.node] = f.code
			continue
		}
		n := t.Nodes[f.node]
		stack = append(stack,
			frame{node: n.Child1, code: Code{Value: f.code.Value<<1 | 1, Bits: f.code.Bits + 1}},
			frame{node: n.Child0, code: Code{Value: f.code.Value << 1, Bits: f.code.Bits + 1}},
		)
	}
	return codes
}

// NodeInfo is a read-only view of one populated arena slot.
type NodeInfo struct {
	Index  int    `json:"index"`
	Count  uint32 `json:"count"`
	Child0 int    `json:"child_0"`
	Child1 int    `json:"child_1"`
	Leaf   bool   `json:"leaf"`
}

// Snapshot lists every slot that took part in the tree, root last.
func (t *Tree) Snapshot() []NodeInfo {
	var out []NodeInfo
	for i := 0; i < sentinel; i++ {
		n := t.Nodes[i]
		if n.SavedCount == 0 {
			continue
		}
		out = append(out, NodeInfo{
			Index:  i,
			Count:  n.SavedCount,
			Child0: n.Child0,
			Child1: n.Child1,
			Leaf:   IsLeaf(i),
		})
	}
	return out
}
