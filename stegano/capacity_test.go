package stegano
import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCapacityConcreteScenario( t *testing.T ) {
	// 100x100 RGB = 30000 samples, (30000-40)/8 = 3745 at 1 bpp
	cover := makeCoverPNG( t, 100, 100 )
	buf, err := DecodeImageBytes( cover )
	if err != nil {
		t.Fatalf("Failed to decode cover: %v", err)
	}
	report := capacityOf( buf, 1 )

	if report.Pixels != 10000 {
		t.Errorf("Expected 10000 pixels, got %d", report.Pixels)
	}
	if report.Channels != 3 {
		t.Errorf("Expected 3 channels, got %d", report.Channels)
	}
	if report.AvailableBytes != 3745 {
		t.Errorf("Expected 3745 available bytes, got %d", report.AvailableBytes)
	}
}

func TestCapacityHeaderInvariant( t *testing.T ) {
	// the header cost is 40 bits no matter the image size or bpp
	sizes := [][2]int{ {4, 4}, {100, 100}, {313, 177} }
	for _, size := range sizes {
		buf, err := DecodeImageBytes( makeCoverPNG( t, size[0], size[1] ) )
		if err != nil {
			t.Fatalf("Failed to decode cover: %v", err)
		}
		for bpp := 1; bpp <= 3; bpp++ {
			report := capacityOf( buf, bpp )
			if report.HeaderBits != 40 {
				t.Errorf("%dx%d bpp=%d: header bits = %d, expected 40",
					size[0], size[1], bpp, report.HeaderBits)
			}
		}
	}
}

func TestCapacityScalesWithBPP( t *testing.T ) {
	buf, err := DecodeImageBytes( makeCoverPNG( t, 50, 50 ) )
	if err != nil {
		t.Fatalf("Failed to decode cover: %v", err)
	}
	samples := len( buf.Samples )
	for bpp := 1; bpp <= 3; bpp++ {
		report := capacityOf( buf, bpp )
		expected := (samples - 40) * bpp
		if report.AvailableBits != expected {
			t.Errorf("bpp=%d: expected %d bits, got %d", bpp, expected, report.AvailableBits)
		}
	}
}

func TestCapacityInvalidBPP( t *testing.T ) {
	path := filepath.Join( t.TempDir(), "cover.png" )
	if err := os.WriteFile( path, makeCoverPNG( t, 10, 10 ), 0660 ); err != nil {
		t.Fatal( err )
	}
	for _, bpp := range []int{ 0, 4, -1, 8 } {
		_, err := Capacity( path, bpp )
		if !errors.Is( err, ErrInvalidParameter ) {
			t.Errorf("bpp=%d: expected ErrInvalidParameter, got %v", bpp, err)
		}
	}
}

func TestCapacityUnreadableImage( t *testing.T ) {
	path := filepath.Join( t.TempDir(), "garbage.png" )
	if err := os.WriteFile( path, []byte("not an image at all"), 0660 ); err != nil {
		t.Fatal( err )
	}
	_, err := Capacity( path, 1 )
	if !errors.Is( err, ErrImageDecode ) {
		t.Errorf("Expected ErrImageDecode, got %v", err)
	}
}
