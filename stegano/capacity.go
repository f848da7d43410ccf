package stegano
import (
	"fmt"
)

// the header always takes the first 40 one-bit slots of the sample
// stream, no matter how many low bits per sample the body uses.
const HeaderBits = 40

/*
 * read-only summary of how much payload an image can carry at a given
 * bits-per-pixel setting. computed fresh per call, no lifecycle.
 */
type CapacityReport struct {
	Width		int
	Height		int
	Pixels		int
	Channels	int
	BitsPerPixel	int
	HeaderBits	int
	AvailableBits	int
	AvailableBytes	int
	Mode		ColorMode
}

func validBitsPerPixel( bpp int ) bool {
	return bpp >= 1 && bpp <= 3
}

// Capacity decodes the image at path and reports the payload capacity
// at the given bits-per-pixel setting.
func Capacity( path string, bitsPerPixel int ) (*CapacityReport, error) {
	if !validBitsPerPixel( bitsPerPixel ) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidParameter, bitsPerPixel)
	}
	buf, err := DecodeImage( path )
	if err != nil {
		return nil, err
	}
	return capacityOf( buf, bitsPerPixel ), nil
}

// capacityOf measures an already decoded buffer. the 40 header slots
// are carved out of the sample stream first, the body then uses
// bitsPerPixel low bits of every remaining sample.
func capacityOf( buf *PixelBuffer, bitsPerPixel int ) *CapacityReport {
	available := (len(buf.Samples) - HeaderBits) * bitsPerPixel
	if available < 0 {
		available = 0
	}
	return &CapacityReport{
		Width: buf.Width,
		Height: buf.Height,
		Pixels: buf.Width * buf.Height,
		Channels: buf.Channels,
		BitsPerPixel: bitsPerPixel,
		HeaderBits: HeaderBits,
		AvailableBits: available,
		AvailableBytes: available / 8,
		Mode: buf.Mode,
	}
}

func (c *CapacityReport) Summary() string {
	return fmt.Sprintf("%dx%d %s image: %d pixels, %d channels, %d bytes available at %d bpp (header %d bits)",
		c.Width, c.Height, c.Mode, c.Pixels, c.Channels,
		c.AvailableBytes, c.BitsPerPixel, c.HeaderBits)
}
