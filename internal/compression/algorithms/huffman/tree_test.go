package huffman

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeThreeSymbols(t *testing.T) {
	tree := NewTree(table(map[int]uint32{'A': 3, 'B': 1}))

	// B and EOS tie at 1; B has the lower index and becomes child_0
	require.Equal(t, 258, tree.Root)
	assert.Equal(t, 'B', rune(tree.Nodes[257].Child0))
	assert.Equal(t, EndOfStream, tree.Nodes[257].Child1)
	assert.EqualValues(t, 2, tree.Nodes[257].SavedCount)
	assert.Equal(t, 257, tree.Nodes[258].Child0)
	assert.Equal(t, 'A', rune(tree.Nodes[258].Child1))
	assert.EqualValues(t, 5, tree.Nodes[258].SavedCount)

	codes := tree.Codes()
	assert.Equal(t, Code{Value: 0b1, Bits: 1}, codes['A'])
	assert.Equal(t, Code{Value: 0b00, Bits: 2}, codes['B'])
	assert.Equal(t, Code{Value: 0b01, Bits: 2}, codes[EndOfStream])
	assert.Zero(t, codes['C'].Bits)
}

func TestTreeSingleSymbol(t *testing.T) {
	tree := NewTree(table(map[int]uint32{'x': 7}))

	root := tree.Nodes[tree.Root]
	assert.Equal(t, EndOfStream+1, tree.Root)
	assert.True(t, IsLeaf(root.Child0))
	assert.True(t, IsLeaf(root.Child1))
	assert.ElementsMatch(t, []int{'x', EndOfStream}, []int{root.Child0, root.Child1})

	codes := tree.Codes()
	assert.Equal(t, 1, codes['x'].Bits)
	assert.Equal(t, 1, codes[EndOfStream].Bits)
}

func TestTreeOnlyEndOfStream(t *testing.T) {
	tree := NewTree(table(nil))
	assert.Equal(t, EndOfStream, tree.Root)
	assert.EqualValues(t, 1, tree.Nodes[EndOfStream].SavedCount)
	assert.Zero(t, tree.Codes()[EndOfStream].Bits)
}

func randomCounts(rng *rand.Rand) *Counts {
	c := new(Counts)
	density := rng.Intn(100) + 1
	for i := 0; i < 256; i++ {
		if rng.Intn(100) < density {
			c[i] = uint32(rng.Intn(255) + 1)
		}
	}
	c[rng.Intn(256)] = uint32(rng.Intn(255) + 1)
	c[EndOfStream] = 1
	return c
}

func TestTreeCodesArePrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 100; n++ {
		counts := randomCounts(rng)
		codes := NewTree(counts).Codes()

		var patterns []string
		for sym, c := range codes {
			if counts[sym] == 0 {
				assert.Zero(t, c.Bits, "absent symbol %d got a code", sym)
				continue
			}
			require.NotZero(t, c.Bits, "symbol %d has no code", sym)
			patterns = append(patterns, c.String())
		}
		for i, a := range patterns {
			for j, b := range patterns {
				if i != j {
					require.False(t, strings.HasPrefix(b, a), "%s is a prefix of %s", a, b)
				}
			}
		}
	}
}

func TestTreeStructure(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for n := 0; n < 50; n++ {
		tree := NewTree(randomCounts(rng))

		parents := make(map[int]int)
		for _, info := range tree.Snapshot() {
			if info.Leaf {
				assert.Equal(t, noChild, info.Child0)
				continue
			}
			c0, c1 := tree.Nodes[info.Child0], tree.Nodes[info.Child1]
			assert.Equal(t, c0.SavedCount+c1.SavedCount, info.Count)
			assert.LessOrEqual(t, c0.SavedCount, c1.SavedCount)
			parents[info.Child0]++
			parents[info.Child1]++
		}

		var roots []int
		for _, info := range tree.Snapshot() {
			assert.LessOrEqual(t, parents[info.Index], 1)
			if parents[info.Index] == 0 {
				roots = append(roots, info.Index)
			}
		}
		assert.Equal(t, []int{tree.Root}, roots)
	}
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "0101", Code{Value: 0b0101, Bits: 4}.String())
	assert.Equal(t, "", Code{}.String())
}
