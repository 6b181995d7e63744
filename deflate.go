package deflate

import (
	"errors"
	"fmt"

	"github.com/compresslab/deflate/internal/bitio"
	"github.com/compresslab/deflate/internal/huffman"
	"github.com/compresslab/deflate/internal/lz77"
)

// MaxInputSize is the largest input Compress will accept, grounded in
// the teacher's MaxDimension precondition pattern in encode.go: a named
// exported bound checked before any work begins. 10 MiB matches the
// bound spec.md §8's round-trip property is stated against.
const MaxInputSize = 10 << 20

// ErrInputTooLarge is returned when the input exceeds MaxInputSize.
var ErrInputTooLarge = errors.New("deflate: input exceeds MaxInputSize")

// Compress reduces input to a DEFLATE (RFC 1951) bitstream consisting
// of a single dynamic-Huffman block terminated by the end-of-block
// symbol (BFINAL=1). It is a pure function: no I/O, no shared state
// across calls, no partial output on failure.
//
// Consumers that need the original bytes back must use any RFC
// 1951-compliant decompressor, e.g. the standard library's
// compress/flate.
func Compress(input []byte) ([]byte, error) {
	if len(input) > MaxInputSize {
		return nil, fmt.Errorf("%w: got %d bytes, limit %d", ErrInputTooLarge, len(input), MaxInputSize)
	}

	tokens := lz77.Find(input)
	llFreq, ddFreq := huffman.Tally(tokens)

	w := bitio.NewWriter(len(input)/2 + 16)
	writeBlock(w, tokens, llFreq, ddFreq)
	return w.Finalize(), nil
}
