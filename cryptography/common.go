package cryptography
import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

/*
 * the payload wrap the embedding engine itself knows nothing about.
 * the engine treats encrypted bytes as opaque, this package is the
 * collaborator that produces and consumes them.
 */

// chacha20poly1305 encryption+authentication, nonce prepended
func Encrypt( data, key []byte ) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("nothing to encrypt")
	}
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("invalid key")
	}
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	nonce := make( []byte, chacha20poly1305.NonceSize )
	if _, err := rand.Read( nonce ); err != nil {
		return nil, err
	}
	ct := aead.Seal( nil, nonce, data, nil )
	return append( nonce, ct... ), nil
}

func Decrypt( data, key []byte ) ([]byte, error) {
	if len(key) != SymKeySize {
		return nil, fmt.Errorf("invalid key")
	}
	if len(data) < chacha20poly1305.NonceSize + TagSize {
		return nil, fmt.Errorf("invalid length of data")
	}
	nonce := data[:chacha20poly1305.NonceSize]
	ct := data[chacha20poly1305.NonceSize:]
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	return aead.Open( nil, nonce, ct, nil )
}

// format: <base64-encoded-salt>:<password>
func SplitWithSalt( password string ) ([]byte, []byte, error) {
	parts := strings.Split( password, ":" )
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("no salt supplied")
	} else if len(parts) > 2 {
		// consider the first ':' is a delimeter
		parts[1] = strings.Join( parts[1:], ":" )
	}
	saltBytes, err := base64.StdEncoding.DecodeString( parts[0] )
	if err != nil {
		return nil, nil, err
	}

	return []byte( parts[1] ), saltBytes, nil
}

// derive an encryption key from a password and per-install salt
func DeriveKey( password, saltBytes []byte ) []byte {
	/*
	 * the draft RFC recommends time=3 and memory=32*1024 (32 MB)
	 * as a sensible starting point.
	 */
	threads := uint8( runtime.NumCPU() )
	if threads == 0 {
		threads = 1
	}
	return argon2.Key( password, saltBytes, 3, 32 * 1024, threads, SymKeySize )
}

// generate a random amount of bytes
func GenRandom( size uint ) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("invalid size of random data")
	}
	data := make( []byte, size )
	if _, err := rand.Read( data ); err != nil {
		return nil, err
	}
	return data, nil
}

// calculate the hash of in-memory data
func Hash( data []byte ) string {
	if data == nil {
		return ""
	}
	hash := sha512.Sum512( data )
	return hex.EncodeToString( hash[:] )
}

// FileHash streams the file through sha256, the digest recorded in the
// audit database for integrity checks.
func FileHash( path string ) (string, error) {
	f, err := os.Open( path )
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy( h, f ); err != nil {
		return "", err
	}
	return hex.EncodeToString( h.Sum(nil) ), nil
}

// QuickHash is a cheap non-cryptographic fingerprint, used to skip the
// full digest when a file obviously has not changed.
func QuickHash( data []byte ) uint64 {
	return xxhash.Sum64( data )
}

func QuickFileHash( path string ) (uint64, error) {
	f, err := os.Open( path )
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy( h, f ); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
