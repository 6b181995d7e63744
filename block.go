package deflate

import (
	"github.com/compresslab/deflate/internal/bitio"
	"github.com/compresslab/deflate/internal/huffman"
	"github.com/compresslab/deflate/internal/lz77"
)

// writeBlock emits a single dynamic-Huffman DEFLATE block (BFINAL=1,
// BTYPE=2) into w, following the exact emission order of spec.md §4.7.
// Grounded in the teacher's StoreHuffmanCode / storeFullHuffmanCode
// (internal/lossless/encode_huffman.go) for the header-emission shape,
// and in encode.go's top-level "compute structures, then one pass"
// orchestration.
func writeBlock(w *bitio.Writer, tokens []lz77.Token, llFreq, ddFreq []uint32) {
	llCode := huffman.BuildCanonicalCode(llFreq, huffman.MaxLLDDCodeLength)
	ddCode := huffman.BuildCanonicalCode(ddFreq, huffman.MaxLLDDCodeLength)

	hlit := lastNonZeroIndex(llCode.CodeLengths, 257) + 1
	hdist := lastNonZeroIndex(ddCode.CodeLengths, 1) + 1

	combined := make([]uint8, hlit+hdist)
	copy(combined, llCode.CodeLengths[:hlit])
	copy(combined[hlit:], ddCode.CodeLengths[:hdist])

	rleTokens := huffman.EncodeLengths(combined)
	var metaFreq [huffman.NumMetaSymbols]uint32
	for _, tok := range rleTokens {
		metaFreq[tok.Symbol]++
	}
	metaCode := huffman.BuildCanonicalCode(metaFreq[:], huffman.MaxMetaCodeLength)

	hclen := lastNonZeroIndexInOrder(metaCode.CodeLengths, huffman.CodeLengthCodeOrder[:], 4) + 1

	// 1. BFINAL
	w.AppendBit(1)
	// 2. BTYPE = 2 (dynamic Huffman), LSB-first over 2 bits -> "0 1".
	w.AppendBitsLSB(2, 2)
	// 3-5. HLIT-257, HDIST-1, HCLEN-4.
	w.AppendBitsLSB(uint32(hlit-257), 5)
	w.AppendBitsLSB(uint32(hdist-1), 5)
	w.AppendBitsLSB(uint32(hclen-4), 4)

	// 6. Meta code lengths in the permuted transmission order.
	for i := 0; i < hclen; i++ {
		sym := huffman.CodeLengthCodeOrder[i]
		w.AppendBitsLSB(uint32(metaCode.CodeLengths[sym]), 3)
	}

	// 7. RLE tokens of the combined code-length vector: meta code
	// MSB-first, then extra bits LSB-first.
	for _, tok := range rleTokens {
		w.AppendBitsMSB(uint32(metaCode.Codes[tok.Symbol]), int(metaCode.CodeLengths[tok.Symbol]))
		if tok.Symbol >= huffman.CodeLengthRepeatPrevious {
			extra := huffman.CodeLengthExtraBits[tok.Symbol-huffman.CodeLengthRepeatPrevious]
			w.AppendBitsLSB(uint32(tok.ExtraBits), int(extra))
		}
	}

	// 8. The token stream itself.
	for _, tok := range tokens {
		switch tok.Kind {
		case lz77.Literal:
			w.AppendBitsMSB(uint32(llCode.Codes[tok.Byte]), int(llCode.CodeLengths[tok.Byte]))
		case lz77.Match:
			lsym, lextra, lval := huffman.LengthCode(tok.Length)
			w.AppendBitsMSB(uint32(llCode.Codes[lsym]), int(llCode.CodeLengths[lsym]))
			w.AppendBitsLSB(lval, lextra)

			dsym, dextra, dval := huffman.DistanceCode(tok.Distance)
			w.AppendBitsMSB(uint32(ddCode.Codes[dsym]), int(ddCode.CodeLengths[dsym]))
			w.AppendBitsLSB(dval, dextra)
		}
	}

	// 9. End-of-block.
	w.AppendBitsMSB(uint32(llCode.Codes[huffman.EndOfBlockSymbol]), int(llCode.CodeLengths[huffman.EndOfBlockSymbol]))
}

// lastNonZeroIndex returns the index of the last non-zero entry in
// lengths, or min-1 if none exists beyond the guaranteed minimum count
// min (spec.md §4.7: HLIT = max(257, 1+last-nonzero); HDIST = max(1,
// 1+last-nonzero)).
func lastNonZeroIndex(lengths []uint8, min int) int {
	last := min - 1
	for i := len(lengths) - 1; i >= 0; i-- {
		if lengths[i] != 0 {
			if i > last {
				last = i
			}
			break
		}
	}
	return last
}

// lastNonZeroIndexInOrder returns the position in order (the permuted
// meta-alphabet transmission order) of the last entry whose code length
// is non-zero, or min-1 if none exists beyond the guaranteed minimum.
func lastNonZeroIndexInOrder(lengths []uint8, order []int, min int) int {
	last := min - 1
	for i := len(order) - 1; i >= 0; i-- {
		if lengths[order[i]] != 0 {
			if i > last {
				last = i
			}
			break
		}
	}
	return last
}
