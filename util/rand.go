package util
import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"strconv"

	"github.com/neema-sll/Steganography-Tool/cryptography"
)

const IDLength = 32

func RandInt( max int ) int {
	limit := big.NewInt( int64(max) )
	integer, err := rand.Int( rand.Reader, limit )
	if err != nil {
		return 0
	}
	return int(integer.Int64())
}

func GenFilename( prefix, ext string ) string {
	return prefix + strconv.Itoa( RandInt(100000) ) + "." + ext
}

// GenID makes a random identifier, used for the database password of
// a fresh install.
func GenID() string {
	buffer, err := cryptography.GenRandom( uint(IDLength) )
	if err != nil {
		return "gen-id-failed-" + strconv.Itoa( RandInt(100000) )
	}
	return base64.StdEncoding.EncodeToString( buffer )
}
