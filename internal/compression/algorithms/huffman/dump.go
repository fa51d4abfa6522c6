package huffman

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PrintModel writes one line per populated arena slot: its symbol, weight,
// children and, for leaves when codes is non-nil, the Huffman code.
func PrintModel(w io.Writer, tree *Tree, codes *CodeTable) error {
	bw := bufio.NewWriter(w)
	for _, n := range tree.Snapshot() {
		fmt.Fprintf(bw, "node=%s count=%3d child_0=%s child_1=%s",
			symbolName(n.Index), n.Count, symbolName(n.Child0), symbolName(n.Child1))
		if codes != nil && n.Leaf {
			fmt.Fprintf(bw, " Huffman code=%s", codes[n.Index])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func symbolName(i int) string {
	switch {
	case i == noChild:
		return "  -"
	case i >= 0x20 && i < 0x7f:
		return fmt.Sprintf("'%c'", rune(i))
	default:
		return fmt.Sprintf("%3d", i)
	}
}

// String renders the code as a string of 0s and 1s.
func (c Code) String() string {
	var sb strings.Builder
	for i := c.Bits - 1; i >= 0; i-- {
		if c.Value>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
