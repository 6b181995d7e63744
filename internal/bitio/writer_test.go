package bitio

import (
	"math/rand"
	"testing"
)

func TestWriter_AppendBitsLSB_RoundTrip(t *testing.T) {
	// Write random n-bit values with n in [1,16] and verify the packed
	// byte sequence reproduces them when unpacked LSB-first.
	const numValues = 2000
	rng := rand.New(rand.NewSource(1))

	type entry struct {
		value uint32
		n     int
	}
	entries := make([]entry, numValues)

	w := NewWriter(64)
	for i := range entries {
		n := 1 + rng.Intn(16)
		v := uint32(rng.Int63()) & (1<<uint(n) - 1)
		entries[i] = entry{v, n}
		w.AppendBitsLSB(v, n)
	}
	data := w.Finalize()

	bitPos := 0
	readBit := func() uint32 {
		byteIdx := bitPos / 8
		bit := (data[byteIdx] >> uint(bitPos%8)) & 1
		bitPos++
		return uint32(bit)
	}
	for i, e := range entries {
		var got uint32
		for b := 0; b < e.n; b++ {
			got |= readBit() << uint(b)
		}
		if got != e.value {
			t.Fatalf("entry %d: got %#x, want %#x (n=%d)", i, got, e.value, e.n)
		}
	}
}

func TestWriter_AppendBitsMSB_WritesHighBitFirst(t *testing.T) {
	w := NewWriter(16)
	w.AppendBitsMSB(0b101, 3)
	data := w.Finalize()
	if len(data) == 0 {
		t.Fatalf("no output")
	}
	// MSB-first means bit 0 of the byte (the first emitted bit) is the
	// top bit of the value: 1, then 0, then 1.
	if data[0]&1 != 1 {
		t.Errorf("first emitted bit = %d, want 1", data[0]&1)
	}
	if (data[0]>>1)&1 != 0 {
		t.Errorf("second emitted bit = %d, want 0", (data[0]>>1)&1)
	}
	if (data[0]>>2)&1 != 1 {
		t.Errorf("third emitted bit = %d, want 1", (data[0]>>2)&1)
	}
}

func TestWriter_Finalize_PadsWithZeros(t *testing.T) {
	w := NewWriter(16)
	w.AppendBit(1)
	w.AppendBit(1)
	w.AppendBit(1)
	data := w.Finalize()
	if len(data) != 1 {
		t.Fatalf("len(data) = %d, want 1", len(data))
	}
	if data[0] != 0b00000111 {
		t.Errorf("data[0] = %08b, want 00000111", data[0])
	}
}

func TestWriter_Finalize_LengthIsCeilDiv8(t *testing.T) {
	for n := 0; n <= 40; n++ {
		w := NewWriter(8)
		for i := 0; i < n; i++ {
			w.AppendBit(uint32(i & 1))
		}
		data := w.Finalize()
		want := (n + 7) / 8
		if len(data) != want {
			t.Fatalf("n=%d: len(data) = %d, want %d", n, len(data), want)
		}
	}
}

func TestWriter_BitLen(t *testing.T) {
	w := NewWriter(8)
	if w.BitLen() != 0 {
		t.Fatalf("BitLen() = %d, want 0", w.BitLen())
	}
	w.AppendBitsLSB(0b101, 3)
	w.AppendBitsLSB(0xFFFF, 16)
	if w.BitLen() != 19 {
		t.Fatalf("BitLen() = %d, want 19", w.BitLen())
	}
}

func TestWriter_EmptyFinalize(t *testing.T) {
	w := NewWriter(8)
	data := w.Finalize()
	if len(data) != 0 {
		t.Fatalf("len(data) = %d, want 0", len(data))
	}
}
