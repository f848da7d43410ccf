package util
import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openTestDB( t *testing.T ) *DB {
	t.Helper()
	path := filepath.Join( t.TempDir(), "audit.db" )
	db, err := ConnectDB( path, "test-password", 100 )
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup( db.Close )
	if err = db.InitDB(); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	return db
}

func TestConnectDB( t *testing.T ) {
	db := openTestDB( t )
	rows, err := db.Count()
	assert.NoError( t, err, "Count operation should succeed" )
	assert.Equal( t, 0, rows, "Initial row count should be 0" )
}

func TestLogOperationAndHistory( t *testing.T ) {
	db := openTestDB( t )

	err := db.LogOperation( &OperationRecord{
		Type: "embed",
		InputFile: "cover.png",
		OutputFile: "stego.png",
		DataSize: 1234,
		EncryptionUsed: true,
		Success: true,
		Metadata: map[string]string{ "bits_per_pixel": "2" },
	} )
	assert.NoError( t, err )

	err = db.LogOperation( &OperationRecord{
		Type: "extract",
		InputFile: "stego.png",
		Success: false,
		ErrorMessage: "image too small for embedded data",
	} )
	assert.NoError( t, err )

	ops, err := db.History( 10 )
	assert.NoError( t, err )
	assert.Len( t, ops, 2 )

	// newest first
	assert.Equal( t, "extract", ops[0].Type )
	assert.False( t, ops[0].Success )
	assert.Equal( t, "embed", ops[1].Type )
	assert.True( t, ops[1].EncryptionUsed )
	assert.Equal( t, "2", ops[1].Metadata["bits_per_pixel"] )

	stats, err := db.Stats()
	assert.NoError( t, err )
	assert.Equal( t, int64(2), stats.TotalOperations )
	assert.Equal( t, int64(1), stats.Embeds )
	assert.Equal( t, int64(1), stats.Extracts )
	assert.Equal( t, int64(1), stats.Failures )
}

func TestSessions( t *testing.T ) {
	db := openTestDB( t )

	sessionID, err := db.StartSession( "linux" )
	assert.NoError( t, err )
	assert.NotEmpty( t, sessionID )

	err = db.EndSession( sessionID )
	assert.NoError( t, err )

	other, err := db.StartSession( "linux" )
	assert.NoError( t, err )
	assert.NotEqual( t, sessionID, other, "Session IDs should be unique" )
}

func TestFileHashes( t *testing.T ) {
	db := openTestDB( t )

	path := filepath.Join( t.TempDir(), "stego.png" )
	err := os.WriteFile( path, []byte("pretend image content"), 0660 )
	assert.NoError( t, err )

	err = db.RecordFileHash( path )
	assert.NoError( t, err )

	ok, err := db.VerifyFileHash( path )
	assert.NoError( t, err )
	assert.True( t, ok, "Unchanged file should verify" )

	err = os.WriteFile( path, []byte("tampered content"), 0660 )
	assert.NoError( t, err )

	ok, err = db.VerifyFileHash( path )
	assert.NoError( t, err )
	assert.False( t, ok, "Modified file should fail verification" )
}

func TestShredFile( t *testing.T ) {
	path := filepath.Join( t.TempDir(), "sensitive.db" )
	err := os.WriteFile( path, []byte("sensitive data"), 0660 )
	assert.NoError( t, err )

	err = ShredFile( path )
	assert.NoError( t, err, "File shredding should succeed" )

	_, err = os.Stat( path )
	assert.Error( t, err, "File should no longer exist" )
}
