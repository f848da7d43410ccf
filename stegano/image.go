package stegano
import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// color mode of the source image, resolved once at decode time.
// whatever the mode was, the buffer itself is always canonical RGB.
type ColorMode uint8

const (
	ModeGray ColorMode = iota
	ModeRGB
	ModeRGBA
)

func (m ColorMode) String() string {
	switch m {
	case ModeGray:
		return "grayscale"
	case ModeRGBA:
		return "RGBA"
	}
	return "RGB"
}

/*
 * a decoded raster image flattened to 8-bit samples in row-major
 * R,G,B order. always 3 channels: grayscale is expanded, alpha is
 * dropped. the buffer is owned by a single Embed/Extract call and
 * never shared between calls.
 */
type PixelBuffer struct {
	Samples		[]uint8
	Width		int
	Height		int
	Channels	int
	Mode		ColorMode
}

func DecodeImage( path string ) (*PixelBuffer, error) {
	raw, err := os.ReadFile( path )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return DecodeImageBytes( raw )
}

func DecodeImageBytes( raw []byte ) (*PixelBuffer, error) {
	img, _, err := image.Decode( bytes.NewReader( raw ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return normalizeRGB( img )
}

// normalizeRGB flattens any decoded image into canonical 3-channel
// samples. paletted and grayscale images are expanded to full RGB.
func normalizeRGB( img image.Image ) (*PixelBuffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageDecode)
	}

	mode := ModeRGB
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		mode = ModeGray
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		mode = ModeRGBA
	}

	samples := make( []uint8, 0, width * height * 3 )
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At( x, y ).RGBA()
			samples = append( samples, uint8(r >> 8), uint8(g >> 8), uint8(b >> 8) )
		}
	}
	return &PixelBuffer{
		Samples: samples,
		Width: width,
		Height: height,
		Channels: 3,
		Mode: mode,
	}, nil
}

// SavePNG writes the buffer as a PNG file. the output format is fixed:
// a lossy format would requantize the samples and destroy the low bits
// carrying the payload. the whole image is encoded in memory first, so
// nothing is written on failure.
func SavePNG( buf *PixelBuffer, path string ) error {
	data, err := EncodePNG( buf )
	if err != nil {
		return err
	}
	return os.WriteFile( path, data, 0660 )
}

// EncodePNG is SavePNG without touching the filesystem.
func EncodePNG( buf *PixelBuffer ) ([]byte, error) {
	img := image.NewRGBA( image.Rect( 0, 0, buf.Width, buf.Height ) )
	i := 0
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			img.Set( x, y, color.RGBA{
				buf.Samples[i],
				buf.Samples[i+1],
				buf.Samples[i+2],
				255,
			} )
			i += 3
		}
	}
	out := new( bytes.Buffer )
	if err := png.Encode( out, img ); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
