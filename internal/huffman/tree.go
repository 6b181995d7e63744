package huffman

import (
	"container/heap"
	"sort"
)

// Code holds a complete canonical Huffman code: for each symbol in the
// alphabet, the bit length of its code and the code value itself.
// CodeLengths[sym] == 0 means the symbol is unused.
//
// Grounded in the teacher's HuffmanTreeCode (internal/lossless/
// encode_huffman.go), reused as-is for shape; unlike VP8L's codes,
// DEFLATE canonical codes are MSB-first, so no bit-reversal is applied.
type Code struct {
	NumSymbols  int
	CodeLengths []uint8
	Codes       []uint16
}

// treeNode is an internal node (or leaf) used while building a Huffman
// tree from symbol frequencies. Grounded in the teacher's
// huffmanTreeNode, an arena-indexed binary node (children referenced by
// pool index rather than pointer).
type treeNode struct {
	totalCount uint32
	value      int // symbol index for leaves, -1 for internal nodes
	left       int
	right      int
	seq        int // insertion sequence number, for the tie-break rule
}

// nodeHeap is a min-heap over pool indices. Ties on totalCount are
// broken by insertion order (the older node comes first), matching
// spec.md §4.5's tie-break rule and the teacher's nodeHeap.
type nodeHeap struct {
	pool    []treeNode
	indices []int
}

func (h *nodeHeap) Len() int { return len(h.indices) }
func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.pool[h.indices[i]], h.pool[h.indices[j]]
	if a.totalCount != b.totalCount {
		return a.totalCount < b.totalCount
	}
	return a.seq < b.seq
}
func (h *nodeHeap) Swap(i, j int) { h.indices[i], h.indices[j] = h.indices[j], h.indices[i] }
func (h *nodeHeap) Push(x any)    { h.indices = append(h.indices, x.(int)) }
func (h *nodeHeap) Pop() any {
	old := h.indices
	n := len(old)
	idx := old[n-1]
	h.indices = old[:n-1]
	return idx
}

// BuildCanonicalCode builds a canonical Huffman code from a symbol
// frequency histogram. codeLengthLimit caps the maximum code length
// (15 for the LL/DD alphabets, 7 for the meta alphabet).
func BuildCanonicalCode(histogram []uint32, codeLengthLimit int) *Code {
	numSymbols := len(histogram)
	code := &Code{
		NumSymbols:  numSymbols,
		CodeLengths: make([]uint8, numSymbols),
		Codes:       make([]uint16, numSymbols),
	}

	type symCount struct {
		symbol int
		count  uint32
	}
	var nonZero []symCount
	for i, c := range histogram {
		if c > 0 {
			nonZero = append(nonZero, symCount{i, c})
		}
	}

	switch len(nonZero) {
	case 0:
		// Empty histogram: synthesize a dummy 1-bit code at symbol 0 so
		// the alphabet still yields a valid (if unused) canonical code,
		// per spec.md §4.5's dummy-symbol rule.
		if numSymbols > 0 {
			code.CodeLengths[0] = 1
			generateCanonicalCodes(code)
		}
		return code
	case 1:
		// Single symbol: the dummy-symbol rule collapses to assigning a
		// 1-bit code directly (the complementary code value is simply
		// never emitted).
		code.CodeLengths[nonZero[0].symbol] = 1
		generateCanonicalCodes(code)
		return code
	case 2:
		code.CodeLengths[nonZero[0].symbol] = 1
		code.CodeLengths[nonZero[1].symbol] = 1
		generateCanonicalCodes(code)
		return code
	}

	buildTreeAndExtractLengths(histogram, numSymbols, codeLengthLimit, code.CodeLengths)
	generateCanonicalCodes(code)
	return code
}

// buildTreeAndExtractLengths constructs the Huffman tree from
// frequencies and writes the resulting code lengths. If any code
// length would exceed limit, it doubles countMin and rebuilds — the
// same length-limiting strategy as the teacher's
// buildTreeAndExtractLengths (itself matching libwebp's
// GenerateOptimalTree), satisfying spec.md §4.5's "MUST cap"
// requirement.
func buildTreeAndExtractLengths(histogram []uint32, numSymbols, limit int, codeLengths []uint8) {
	treeSize := 0
	for i := 0; i < numSymbols; i++ {
		if histogram[i] != 0 {
			treeSize++
		}
	}
	if treeSize == 0 {
		return
	}

	const maxAttempts = 64 // generous; countMin doubling converges in a handful of rounds
	for attempt, countMin := 0, uint32(1); ; attempt, countMin = attempt+1, countMin*2 {
		if attempt >= maxAttempts {
			// Invariant violation: the length-limiting loop must
			// converge well before this for any alphabet size DEFLATE
			// uses (<=286 symbols). Reaching here indicates a bug in
			// the tree-building logic, not a recoverable input
			// condition, so it is a fatal assertion per spec.md §7's
			// Internal error kind rather than a returned error.
			panic("huffman: length-limiting failed to converge")
		}
		for i := range codeLengths {
			codeLengths[i] = 0
		}

		maxNodes := 2*numSymbols + 1
		h := &nodeHeap{pool: make([]treeNode, 0, maxNodes)}
		seq := 0
		for sym := 0; sym < numSymbols; sym++ {
			if histogram[sym] == 0 {
				continue
			}
			count := histogram[sym]
			if count < countMin {
				count = countMin
			}
			idx := len(h.pool)
			h.pool = append(h.pool, treeNode{totalCount: count, value: sym, left: -1, right: -1, seq: seq})
			h.indices = append(h.indices, idx)
			seq++
		}

		if len(h.indices) == 1 {
			codeLengths[h.pool[h.indices[0]].value] = 1
			return
		}

		heap.Init(h)
		for h.Len() > 1 {
			// Lesser-or-equal weight goes left: popping the two smallest
			// in turn and recording them left-then-right already
			// satisfies that invariant since the heap returns the
			// smaller of the two first.
			leftIdx := heap.Pop(h).(int)
			rightIdx := heap.Pop(h).(int)
			parentIdx := len(h.pool)
			h.pool = append(h.pool, treeNode{
				totalCount: h.pool[leftIdx].totalCount + h.pool[rightIdx].totalCount,
				value:      -1,
				left:       leftIdx,
				right:      rightIdx,
				seq:        seq,
			})
			seq++
			heap.Push(h, parentIdx)
		}

		rootIdx := h.indices[0]
		assignCodeLengths(h.pool, rootIdx, 0, codeLengths)

		maxDepth := 0
		for _, cl := range codeLengths {
			if int(cl) > maxDepth {
				maxDepth = int(cl)
			}
		}
		if maxDepth <= limit {
			return
		}
		// Depth exceeded the limit: double countMin (flattening the
		// frequency distribution) and rebuild.
	}
}

func assignCodeLengths(pool []treeNode, nodeIdx, depth int, codeLengths []uint8) {
	node := &pool[nodeIdx]
	if node.value >= 0 {
		codeLengths[node.value] = uint8(depth)
		return
	}
	if node.left >= 0 {
		assignCodeLengths(pool, node.left, depth+1, codeLengths)
	}
	if node.right >= 0 {
		assignCodeLengths(pool, node.right, depth+1, codeLengths)
	}
}

// generateCanonicalCodes assigns canonical MSB-first code values from
// the code lengths already stored in code.CodeLengths, following
// spec.md §4.5's canonical assignment algorithm: count codes per
// length, derive next_code[length] from a running total, then assign
// ascending code values to symbols in numeric order within each length.
func generateCanonicalCodes(code *Code) {
	maxLen := 0
	for _, cl := range code.CodeLengths {
		if int(cl) > maxLen {
			maxLen = int(cl)
		}
	}
	if maxLen == 0 {
		return
	}

	blCount := make([]int, maxLen+1)
	for _, cl := range code.CodeLengths {
		if cl > 0 {
			blCount[cl]++
		}
	}

	nextCode := make([]uint32, maxLen+1)
	c := uint32(0)
	for bits := 1; bits <= maxLen; bits++ {
		c = (c + uint32(blCount[bits-1])) << 1
		nextCode[bits] = c
	}

	type symLen struct {
		symbol int
		length uint8
	}
	symbols := make([]symLen, 0, code.NumSymbols)
	for i := 0; i < code.NumSymbols; i++ {
		if code.CodeLengths[i] > 0 {
			symbols = append(symbols, symLen{i, code.CodeLengths[i]})
		}
	}
	sort.SliceStable(symbols, func(i, j int) bool {
		if symbols[i].length != symbols[j].length {
			return symbols[i].length < symbols[j].length
		}
		return symbols[i].symbol < symbols[j].symbol
	})

	for _, s := range symbols {
		code.Codes[s.symbol] = uint16(nextCode[s.length])
		nextCode[s.length]++
	}
}
