package stegano
import (
	"encoding/binary"
	"fmt"
)

/*
 * the frame is what actually gets written into the image:
 *
 *	[4 bytes body length, big endian][1 byte metadata][body]
 *
 * metadata bit 7 is the compression flag, bits 2..0 record the
 * bits-per-pixel the embedder was asked to use. the recorded bpp is
 * informational only: extraction addresses the body with the value the
 * caller supplies, not the stored one.
 */
const (
	headerSize = 5
	maxDataLength = 10000000	// sanity bound against garbage headers

	compressedFlag = 0x80
	bppMask = 0x07
)

type FrameHeader struct {
	DataLength	uint32
	Compressed	bool
	BitsPerPixel	int
}

// BuildFrame runs the compression stage over the secret bytes and
// packs the result behind the 5 byte header. never fails: a broken
// compressor just means the payload is stored as is.
func BuildFrame( secret []byte, bitsPerPixel int, useCompression bool ) []byte {
	body, compressed := compressPayload( secret, useCompression )

	frame := make( []byte, headerSize, headerSize + len(body) )
	binary.BigEndian.PutUint32( frame[:4], uint32(len(body)) )
	meta := byte(bitsPerPixel) & bppMask
	if compressed {
		meta |= compressedFlag
	}
	frame[4] = meta
	return append( frame, body... )
}

// ParseHeader decodes the 5 header bytes recovered from the image.
func ParseHeader( header []byte ) (*FrameHeader, error) {
	if len(header) < headerSize {
		return nil, fmt.Errorf("%w: got %d header bytes, need %d",
			ErrCorruptHeader, len(header), headerSize)
	}
	length := binary.BigEndian.Uint32( header[:4] )
	if length > maxDataLength {
		return nil, fmt.Errorf("%w: header declares %d bytes",
			ErrInvalidDataLength, length)
	}
	meta := header[4]
	bpp := int( meta & bppMask )
	if !validBitsPerPixel( bpp ) {
		// a damaged metadata byte should not kill the whole
		// extraction, fall back to 1 and keep going
		bpp = 1
	}
	return &FrameHeader{
		DataLength: length,
		Compressed: meta & compressedFlag != 0,
		BitsPerPixel: bpp,
	}, nil
}
