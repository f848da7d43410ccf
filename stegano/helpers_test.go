package stegano
import (
	"bytes"
	"crypto/rand"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// makeCoverPNG builds an in-memory RGB gradient cover image.
func makeCoverPNG( t *testing.T, width, height int ) []byte {
	t.Helper()
	img := image.NewRGBA( image.Rect( 0, 0, width, height ) )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set( x, y, color.RGBA{
				uint8( (x * 7) % 256 ),
				uint8( (y * 13) % 256 ),
				uint8( ((x + y) * 3) % 256 ),
				255,
			} )
		}
	}
	buf := new( bytes.Buffer )
	if err := png.Encode( buf, img ); err != nil {
		t.Fatalf("Failed to encode cover image: %v", err)
	}
	return buf.Bytes()
}

// makeGrayPNG builds an 8-bit single channel cover image.
func makeGrayPNG( t *testing.T, width, height int ) []byte {
	t.Helper()
	img := image.NewGray( image.Rect( 0, 0, width, height ) )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray( x, y, color.Gray{ uint8( (x * y) % 256 ) } )
		}
	}
	buf := new( bytes.Buffer )
	if err := png.Encode( buf, img ); err != nil {
		t.Fatalf("Failed to encode grayscale image: %v", err)
	}
	return buf.Bytes()
}

func randomBytes( n int ) ([]byte, error) {
	data := make( []byte, n )
	_, err := rand.Read( data )
	return data, err
}
