package util
import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
)

// CreateTestImage writes a simple RGB gradient PNG. handy as a cover
// image for trying the tool out and as a fixture in tests.
func CreateTestImage( path string, width, height int ) error {
	img := image.NewRGBA( image.Rect( 0, 0, width, height ) )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set( x, y, color.RGBA{
				uint8( (x * 255) / width ),
				uint8( (y * 255) / height ),
				uint8( ((x + y) * 255) / (width + height) ),
				255,
			} )
		}
	}
	buf := new( bytes.Buffer )
	if err := png.Encode( buf, img ); err != nil {
		return err
	}
	return os.WriteFile( path, buf.Bytes(), 0660 )
}
