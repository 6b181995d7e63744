package huffman

import "github.com/compresslab/deflate/internal/lz77"

// Tally walks a token stream once and accumulates literal/length (ll)
// and distance (dd) symbol frequencies, grounded in the teacher's
// histogram-accumulation step that precedes CreateHuffmanTree in
// internal/lossless/encode_histogram.go. The end-of-block symbol (256)
// always receives a final count of at least 1.
func Tally(tokens []lz77.Token) (ll, dd []uint32) {
	ll = make([]uint32, NumLLSymbols)
	dd = make([]uint32, NumDDSymbols)

	for _, tok := range tokens {
		switch tok.Kind {
		case lz77.Literal:
			ll[tok.Byte]++
		case lz77.Match:
			lsym, _, _ := LengthCode(tok.Length)
			ll[lsym]++
			dsym, _, _ := DistanceCode(tok.Distance)
			dd[dsym]++
		}
	}
	ll[EndOfBlockSymbol]++
	return ll, dd
}
