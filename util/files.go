package util
import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/neema-sll/Steganography-Tool/cryptography"
)

const ShredCount = 10

var supportedFormats = map[string]bool{
	"png": true,
	"jpeg": true,
	"gif": true,
	"bmp": true,
	"tiff": true,
}

// ValidateImageFile checks that the file exists and really is an image
// in a supported format, without decoding the whole pixel data. used
// by the CLI before handing a path to the engine.
func ValidateImageFile( path string ) (string, error) {
	f, err := os.Open( path )
	if err != nil {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig( f )
	if err != nil {
		return "", fmt.Errorf("invalid image file: %w", err)
	}
	if !supportedFormats[format] {
		return "", fmt.Errorf("unsupported image format: %s", format)
	}
	return fmt.Sprintf("valid %s image, %dx%d", format, cfg.Width, cfg.Height), nil
}

// ReadFiles lists files in a folder matching any of the extensions.
func ReadFiles( folder string, supportedExtensions []string ) ([]string, error) {
	allFiles, err := os.ReadDir( folder )
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, f := range allFiles {
		for _, ext := range supportedExtensions {
			if strings.HasSuffix( f.Name(), "." + ext ) {
				result = append( result, filepath.Join( folder, f.Name() ) )
			}
		}
	}
	return result, nil
}

func FileSizeMB( path string ) (float64, error) {
	info, err := os.Stat( path )
	if err != nil {
		return 0, err
	}
	return float64(info.Size()) / (1024 * 1024), nil
}

// ShredFile overwrites the file with random data a few times before
// removing it. used when rotating the audit database.
func ShredFile( filename string ) error {
	info, err := os.Stat( filename )
	if err != nil {
		return err
	}
	var finalError error
	if info.Size() > 0 {
		for i := 0; i < ShredCount; i++ {
			content, err := cryptography.GenRandom( uint(info.Size()) )
			if err == nil {
				os.WriteFile( filename, content, 0660 )
			} else {
				finalError = err
			}
		}
	}
	if err = os.Remove( filename ); err != nil {
		finalError = err
	}
	return finalError
}
