package stegano

/*
 * transform data from/to binary form.
 * bits come out most significant first, so the stream reads the same
 * way the bytes print in hex.
 */

func BytesToBits( data []byte ) []uint8 {
	bits := make( []uint8, 0, len(data) * 8 )
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append( bits, (b >> uint(i)) & 1 )
		}
	}
	return bits
}

// the inverse of BytesToBits. an input which is not a multiple of 8
// bits is padded with zero bits on the right before packing.
func BitsToBytes( bits []uint8 ) []byte {
	result := []byte{}
	for i := 0; i < len(bits); i += 8 {
		b := byte(0)
		for j := 0; j < 8; j++ {
			b <<= 1
			if i + j < len(bits) {
				b |= bits[ i + j ] & 1
			}
		}
		result = append( result, b )
	}
	return result
}
