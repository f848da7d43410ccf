package stegano
import (
	"bytes"
	"testing"
)

func TestBytesToBitsOrder( t *testing.T ) {
	bits := BytesToBits( []byte{ 0xA5 } )
	expected := []uint8{ 1, 0, 1, 0, 0, 1, 0, 1 }
	if len(bits) != len(expected) {
		t.Fatalf("Expected %d bits, got %d", len(expected), len(bits))
	}
	for i := range expected {
		if bits[i] != expected[i] {
			t.Errorf("Bit %d: expected %d, got %d", i, expected[i], bits[i])
		}
	}
}

func TestBitsRoundTrip( t *testing.T ) {
	tests := [][]byte{
		{},
		{ 0 },
		{ 0xFF },
		[]byte("Hello world!"),
		bytes.Repeat( []byte{ 0xA5, 0x5A }, 1000 ),
	}
	for _, data := range tests {
		restored := BitsToBytes( BytesToBits( data ) )
		if !bytes.Equal( data, restored ) {
			t.Errorf("Round trip spoiled the data. %v != %v", data, restored)
		}
	}
}

func TestBitsToBytesPadding( t *testing.T ) {
	// 9 bits must pack into 2 bytes, trailing bits zero-filled
	bits := []uint8{ 1, 1, 1, 1, 1, 1, 1, 1, 1 }
	packed := BitsToBytes( bits )
	if len(packed) != 2 {
		t.Fatalf("Expected 2 bytes, got %d", len(packed))
	}
	if packed[0] != 0xFF || packed[1] != 0x80 {
		t.Errorf("Expected [0xFF 0x80], got %v", packed)
	}
}

func TestBitsToBytesEmpty( t *testing.T ) {
	if out := BitsToBytes( nil ); len(out) != 0 {
		t.Errorf("Expected empty output for empty input, got %v", out)
	}
}
