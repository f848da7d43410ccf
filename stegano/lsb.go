package stegano
import (
	"fmt"
)

/*
 * bit placement inside the flattened sample stream.
 *
 * the 40 header bits always sit in the least significant bit of the
 * first 40 samples, one bit per sample, so a reader can locate the
 * header without knowing the embedding parameters. the body starts at
 * the sample right after the header and uses bitsPerPixel low bits of
 * every sample: body bit j goes to sample HeaderBits + j/bpp at slot
 * j%bpp (slot 0 = LSB). each sample is filled through all its slots
 * before the next sample is touched. extraction walks the exact same
 * addressing, the two sides must never diverge.
 */

// embedFrame writes the frame bits into an owned copy of the buffer.
// samples past the end of the frame are left untouched, which is what
// keeps most of the image statistically unchanged.
func embedFrame( buf *PixelBuffer, frameBits []uint8, bitsPerPixel int ) (*PixelBuffer, error) {
	if len(buf.Samples) < HeaderBits || len(frameBits) < HeaderBits {
		return nil, fmt.Errorf("%w: %d samples cannot hold the %d bit header",
			ErrCapacityExceeded, len(buf.Samples), HeaderBits)
	}
	bodyBits := frameBits[HeaderBits:]
	slots := (len(buf.Samples) - HeaderBits) * bitsPerPixel
	if len(bodyBits) > slots {
		return nil, fmt.Errorf("%w: %d body bits, %d slots",
			ErrCapacityExceeded, len(bodyBits), slots)
	}

	// work on a wider copy so the clamp below stays meaningful
	work := make( []int32, len(buf.Samples) )
	for i, s := range buf.Samples {
		work[i] = int32(s)
	}

	// header: one bit per sample, LSB only
	for i := 0; i < HeaderBits; i++ {
		work[i] = (work[i] &^ 1) | int32(frameBits[i])
	}

	// body: bitsPerPixel slots per sample
	for j, bit := range bodyBits {
		idx := HeaderBits + j / bitsPerPixel
		slot := uint( j % bitsPerPixel )
		work[idx] = work[idx] &^ (1 << slot)
		work[idx] |= int32(bit) << slot
	}

	// bit masking on 8-bit samples cannot leave this range, the clamp
	// is kept as a backstop on the way back to bytes
	samples := make( []uint8, len(work) )
	for i, v := range work {
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		samples[i] = uint8(v)
	}

	return &PixelBuffer{
		Samples: samples,
		Width: buf.Width,
		Height: buf.Height,
		Channels: buf.Channels,
		Mode: buf.Mode,
	}, nil
}

// readHeaderBits pulls the 40 header bits out of the first 40 samples.
func readHeaderBits( buf *PixelBuffer ) []uint8 {
	bits := make( []uint8, HeaderBits )
	for i := 0; i < HeaderBits; i++ {
		bits[i] = buf.Samples[i] & 1
	}
	return bits
}

// readBodyBits pulls count body bits using the caller's bitsPerPixel
// addressing. the caller has already checked the image is big enough.
func readBodyBits( buf *PixelBuffer, count, bitsPerPixel int ) []uint8 {
	bits := make( []uint8, count )
	for j := 0; j < count; j++ {
		idx := HeaderBits + j / bitsPerPixel
		slot := uint( j % bitsPerPixel )
		bits[j] = (buf.Samples[idx] >> slot) & 1
	}
	return bits
}
