package deflate

import (
	"testing"

	"github.com/compresslab/deflate/internal/bitio"
	"github.com/compresslab/deflate/internal/huffman"
	"github.com/compresslab/deflate/internal/lz77"
)

func TestKnownExample_Frequencies(t *testing.T) {
	tokens := lz77.Find([]byte("Oneone oneone twotwo twotwo"))
	llFreq, _ := huffman.Tally(tokens)

	want := map[int]uint32{
		'O': 1, 'n': 2, 'e': 2, 'o': 2, ' ': 1,
		257: 2, 258: 1, 261: 1, 't': 1, 'w': 1,
		huffman.EndOfBlockSymbol: 1,
	}
	for sym, count := range want {
		if llFreq[sym] != count {
			t.Errorf("llFreq[%d] = %d, want %d", sym, llFreq[sym], count)
		}
	}
}

func TestKnownExample_HeaderSizes(t *testing.T) {
	tokens := lz77.Find([]byte("Oneone oneone twotwo twotwo"))
	llFreq, ddFreq := huffman.Tally(tokens)

	llCode := huffman.BuildCanonicalCode(llFreq, huffman.MaxLLDDCodeLength)
	ddCode := huffman.BuildCanonicalCode(ddFreq, huffman.MaxLLDDCodeLength)

	hlit := lastNonZeroIndex(llCode.CodeLengths, 257) + 1
	hdist := lastNonZeroIndex(ddCode.CodeLengths, 1) + 1

	if hlit != 262 {
		t.Errorf("HLIT = %d, want 262", hlit)
	}
	if hdist != 6 {
		t.Errorf("HDIST = %d, want 6", hdist)
	}
}

func TestWriteBlock_EndsWithEOBAndIsByteAligned(t *testing.T) {
	tokens := lz77.Find([]byte("hello hello hello"))
	llFreq, ddFreq := huffman.Tally(tokens)

	// Writing a block must always terminate in a fully-formed byte
	// sequence (BitWriter.Finalize pads the trailing byte).
	w := bitio.NewWriter(64)
	writeBlock(w, tokens, llFreq, ddFreq)
	bitLen := w.BitLen()
	data := w.Finalize()
	if len(data) == 0 {
		t.Fatalf("no output produced")
	}
	if len(data) != (bitLen+7)/8 {
		t.Errorf("len(data) = %d, want %d for %d bits", len(data), (bitLen+7)/8, bitLen)
	}
	// An inflater only returns the input once it has read the
	// end-of-block symbol.
	if got := inflate(t, data); string(got) != "hello hello hello" {
		t.Errorf("inflate = %q, want %q", got, "hello hello hello")
	}
	// BFINAL bit (bit 0 of byte 0) must be 1: this core always emits a
	// single final block.
	if data[0]&1 != 1 {
		t.Errorf("BFINAL bit = %d, want 1", data[0]&1)
	}
	// BTYPE bits (bits 1-2) must be 2 (dynamic Huffman), written
	// LSB-first: bit1=0, bit2=1.
	btype := (data[0] >> 1) & 0b11
	if btype != 0b10 {
		t.Errorf("BTYPE bits = %02b, want 10 (LSB-first encoding of BTYPE=2)", btype)
	}
}
