// Package deflate implements the DEFLATE compression algorithm (RFC
// 1951): a sliding-window LZ77 matcher, a canonical Huffman builder,
// and a bit-level writer that together produce a single dynamic-Huffman
// compressed block from an arbitrary byte sequence.
//
// The package provides the compressor only; there is no decompressor,
// no stored or fixed-Huffman block support, and no zlib/gzip framing.
// Output from Compress can be read back by any RFC 1951-compliant
// inflater, including the standard library's compress/flate.
//
// Basic usage:
//
//	compressed, err := deflate.Compress(data)
package deflate
