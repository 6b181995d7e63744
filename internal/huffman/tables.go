package huffman

import "sync"

// Length/distance base-and-extra-bits tables, grounded in
// naufaldi-go-pixo's deflate_constants.go (an independent from-scratch
// Go DEFLATE implementation enumerating the same RFC 1951 tables).
var (
	lengthBase      = [29]uint16{3, 4, 5, 6, 7, 8, 9, 10, 11, 13, 15, 17, 19, 23, 27, 31, 35, 43, 51, 59, 67, 83, 99, 115, 131, 163, 195, 227, 258}
	lengthExtraBits = [29]uint8{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0}

	distanceBase      = [30]uint16{1, 2, 3, 4, 5, 7, 9, 13, 17, 25, 33, 49, 65, 97, 129, 193, 257, 385, 513, 769, 1025, 1537, 2049, 3073, 4097, 6145, 8193, 12289, 16385, 24577}
	distanceExtraBits = [30]uint8{0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13}
)

// FirstLengthSymbol is the lowest length symbol: length codes occupy
// [257,285] in the combined literal/length alphabet, while distance
// codes occupy [0,29] in their own alphabet.
const (
	FirstLengthSymbol = 257
	EndOfBlockSymbol  = 256
	NumLLSymbols      = 286
	NumDDSymbols      = 30
	NumMetaSymbols    = 19

	MaxLLDDCodeLength   = 15
	MaxMetaCodeLength   = 7
)

// entry describes one row of a length or distance code table: the
// symbol, how many extra bits follow, and their value.
type entry struct {
	symbol    int
	extraBits uint8
	extraVal  uint16
}

var (
	lengthTable   [MaxMatchLength + 1]entry // indexed by match length 3..258
	distanceTable [MaxDistance + 1]entry    // indexed by distance 1..32768

	tablesOnce sync.Once
)

const (
	MaxMatchLength = 258
	MaxDistance    = 32768
)

func initTables() {
	for code := 0; code < len(lengthBase); code++ {
		base := int(lengthBase[code])
		extra := int(lengthExtraBits[code])
		count := 1 << extra
		for i := 0; i < count; i++ {
			length := base + i
			if length > MaxMatchLength {
				break
			}
			lengthTable[length] = entry{
				symbol:    FirstLengthSymbol + code,
				extraBits: lengthExtraBits[code],
				extraVal:  uint16(i),
			}
		}
	}

	for code := 0; code < len(distanceBase); code++ {
		base := int(distanceBase[code])
		extra := int(distanceExtraBits[code])
		count := 1 << extra
		for i := 0; i < count; i++ {
			dist := base + i
			if dist > MaxDistance {
				break
			}
			distanceTable[dist] = entry{
				symbol:    code,
				extraBits: distanceExtraBits[code],
				extraVal:  uint16(i),
			}
		}
	}
}

// LengthCode returns the length symbol (in [257,285]), extra-bit count,
// and extra-bit value for a match of the given length (3..258).
func LengthCode(length int) (symbol int, extraBits int, extraVal uint32) {
	tablesOnce.Do(initTables)
	e := lengthTable[length]
	return e.symbol, int(e.extraBits), uint32(e.extraVal)
}

// DistanceCode returns the distance symbol (in [0,29]), extra-bit
// count, and extra-bit value for a back-reference distance (1..32768).
func DistanceCode(distance int) (symbol int, extraBits int, extraVal uint32) {
	tablesOnce.Do(initTables)
	e := distanceTable[distance]
	return e.symbol, int(e.extraBits), uint32(e.extraVal)
}

// CodeLengthCodeOrder is the order in which meta-alphabet (code-length)
// code lengths are transmitted in the dynamic-block header (RFC 1951
// §3.2.7).
var CodeLengthCodeOrder = [NumMetaSymbols]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}
