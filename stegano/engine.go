package stegano
import (
	"fmt"
	"os"
	"time"
)

/*
 * top level entry points. both operations are pure, synchronous
 * computations over an in-memory buffer: decode, bit work, encode.
 * nothing is shared between calls, so concurrent use is fine as long
 * as two calls do not write the same output file.
 */

type EmbedResult struct {
	OutputPath	string
	SecretSize	int		// bytes the caller handed in
	EmbeddedSize	int		// body bytes after the compression stage
	Compressed	bool
	CapacityUsed	float64		// fraction of available bits consumed
	Elapsed		time.Duration
}

func (r *EmbedResult) Summary() string {
	return fmt.Sprintf("Embedding successful! Output: %s\nData size: %d bytes\nCapacity used: %.1f%%\nTime: %.2fs",
		r.OutputPath, r.EmbeddedSize, r.CapacityUsed * 100, r.Elapsed.Seconds())
}

type ExtractResult struct {
	Data		[]byte
	Compressed	bool
	StoredBPP	int	// bpp recorded in the header, informational
	Elapsed		time.Duration
}

func (r *ExtractResult) Summary() string {
	return fmt.Sprintf("Extraction successful!\nData size: %d bytes\nTime: %.2fs",
		len(r.Data), r.Elapsed.Seconds())
}

// Embed hides the secret bytes inside the cover image at coverPath and
// writes the stego image to outputPath, always as PNG. the output file
// is written only after the whole frame has been embedded in memory, a
// failed run leaves nothing behind.
func Embed( coverPath string, secret []byte, outputPath string, bitsPerPixel int, useCompression bool ) (*EmbedResult, error) {
	start := time.Now()

	raw, err := os.ReadFile( coverPath )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	encoded, result, err := EmbedBytes( raw, secret, bitsPerPixel, useCompression )
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile( outputPath, encoded, 0660 ); err != nil {
		return nil, err
	}
	result.OutputPath = outputPath
	result.Elapsed = time.Since( start )
	return result, nil
}

// EmbedBytes is Embed for a cover image already held in memory. it
// returns the PNG-encoded stego image instead of writing a file.
func EmbedBytes( cover, secret []byte, bitsPerPixel int, useCompression bool ) ([]byte, *EmbedResult, error) {
	start := time.Now()

	if !validBitsPerPixel( bitsPerPixel ) {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidParameter, bitsPerPixel)
	}
	buf, err := DecodeImageBytes( cover )
	if err != nil {
		return nil, nil, err
	}

	frame := BuildFrame( secret, bitsPerPixel, useCompression )
	frameBits := BytesToBits( frame )

	report := capacityOf( buf, bitsPerPixel )
	required := len(frame) - headerSize
	if (len(frameBits) - HeaderBits) > report.AvailableBits {
		return nil, nil, fmt.Errorf("%w: available %d bytes, required %d bytes",
			ErrCapacityExceeded, report.AvailableBytes, required)
	}

	stego, err := embedFrame( buf, frameBits, bitsPerPixel )
	if err != nil {
		return nil, nil, err
	}
	encoded, err := EncodePNG( stego )
	if err != nil {
		return nil, nil, err
	}

	used := 0.0
	if report.AvailableBits > 0 {
		used = float64(required * 8) / float64(report.AvailableBits)
	}
	return encoded, &EmbedResult{
		SecretSize: len(secret),
		EmbeddedSize: required,
		Compressed: frame[4] & compressedFlag != 0,
		CapacityUsed: used,
		Elapsed: time.Since( start ),
	}, nil
}

// Extract recovers the hidden bytes from a stego image. bitsPerPixel
// must match the value used at embedding time: the header records its
// own copy but the caller's value is what drives the addressing.
func Extract( stegoPath string, bitsPerPixel int ) (*ExtractResult, error) {
	start := time.Now()

	if !validBitsPerPixel( bitsPerPixel ) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidParameter, bitsPerPixel)
	}
	buf, err := DecodeImage( stegoPath )
	if err != nil {
		return nil, err
	}
	return extractFrom( buf, bitsPerPixel, start )
}

// ExtractBytes is Extract for a stego image already held in memory.
func ExtractBytes( stegoImage []byte, bitsPerPixel int ) (*ExtractResult, error) {
	start := time.Now()

	if !validBitsPerPixel( bitsPerPixel ) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidParameter, bitsPerPixel)
	}
	buf, err := DecodeImageBytes( stegoImage )
	if err != nil {
		return nil, err
	}
	return extractFrom( buf, bitsPerPixel, start )
}

func extractFrom( buf *PixelBuffer, bitsPerPixel int, start time.Time ) (*ExtractResult, error) {
	if len(buf.Samples) < HeaderBits {
		return nil, fmt.Errorf("%w: %d samples cannot hold the %d bit header",
			ErrInsufficientData, len(buf.Samples), HeaderBits)
	}

	header, err := ParseHeader( BitsToBytes( readHeaderBits( buf ) ) )
	if err != nil {
		return nil, err
	}

	bodyBits := int(header.DataLength) * 8
	available := (len(buf.Samples) - HeaderBits) * bitsPerPixel
	if bodyBits > available {
		return nil, fmt.Errorf("%w: need %d bits, only %d available",
			ErrInsufficientData, HeaderBits + bodyBits, HeaderBits + available)
	}

	data := BitsToBytes( readBodyBits( buf, bodyBits, bitsPerPixel ) )
	// BitsToBytes pads to whole bytes, cut back to the declared length
	data = data[:header.DataLength]

	if header.Compressed {
		data, err = Decompress( data )
		if err != nil {
			return nil, err
		}
	}
	return &ExtractResult{
		Data: data,
		Compressed: header.Compressed,
		StoredBPP: header.BitsPerPixel,
		Elapsed: time.Since( start ),
	}, nil
}
