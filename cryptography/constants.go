package cryptography
import (
	"crypto/sha512"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	SymKeySize = 32
	SaltSize = 16
	TagSize = 16
	NonceSize = chacha20poly1305.NonceSize
	HashSize = sha512.Size
)
