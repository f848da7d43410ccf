package util
import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateTestImage( t *testing.T ) {
	path := filepath.Join( t.TempDir(), "cover.png" )
	err := CreateTestImage( path, 32, 24 )
	assert.NoError( t, err )

	f, err := os.Open( path )
	assert.NoError( t, err )
	defer f.Close()

	img, format, err := image.Decode( f )
	assert.NoError( t, err )
	assert.Equal( t, "png", format )
	assert.Equal( t, 32, img.Bounds().Dx() )
	assert.Equal( t, 24, img.Bounds().Dy() )
}

func TestValidateImageFile( t *testing.T ) {
	dir := t.TempDir()
	path := filepath.Join( dir, "cover.png" )
	err := CreateTestImage( path, 16, 16 )
	assert.NoError( t, err )

	desc, err := ValidateImageFile( path )
	assert.NoError( t, err )
	assert.Contains( t, desc, "png" )
	assert.Contains( t, desc, "16x16" )

	_, err = ValidateImageFile( filepath.Join( dir, "missing.png" ) )
	assert.Error( t, err )

	// right extension, wrong content
	fake := filepath.Join( dir, "fake.png" )
	err = os.WriteFile( fake, []byte("definitely not pixels"), 0660 )
	assert.NoError( t, err )
	_, err = ValidateImageFile( fake )
	assert.Error( t, err )
}

func TestReadFiles( t *testing.T ) {
	dir := t.TempDir()
	for _, name := range []string{ "a.png", "b.jpg", "c.txt", "d.png" } {
		err := os.WriteFile( filepath.Join( dir, name ), []byte("x"), 0660 )
		assert.NoError( t, err )
	}
	files, err := ReadFiles( dir, []string{ "png", "jpg" } )
	assert.NoError( t, err )
	assert.Len( t, files, 3 )
}

func TestLogger( t *testing.T ) {
	path := filepath.Join( t.TempDir(), "test.log" )
	logger := NewLogger( &LoggerInfo{
		Filename: path,
		IsColored: false,
		SaveTime: false,
		Mode: Error | Warning | Info,
	} )
	logger.LogInfo( "hello" )
	logger.LogWarning( "careful" )

	data, err := os.ReadFile( path )
	assert.NoError( t, err )
	assert.Contains( t, string(data), "[INFO] hello" )
	assert.Contains( t, string(data), "[WARNING] careful" )
}

func TestLoggerLevelMask( t *testing.T ) {
	path := filepath.Join( t.TempDir(), "test.log" )
	logger := NewLogger( &LoggerInfo{
		Filename: path,
		Mode: Error, // info is filtered out
	} )
	logger.LogInfo( "should not appear" )

	_, err := os.Stat( path )
	assert.Error( t, err, "Filtered levels should not create the log file" )
}
