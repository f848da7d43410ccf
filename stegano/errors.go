package stegano
import (
	"errors"
)

/*
 * every failure of the engine is reported as one of these sentinel
 * errors, wrapped with context. callers branch with errors.Is()
 * instead of matching message strings.
 */
var (
	ErrInvalidParameter = errors.New("bits per pixel must be 1, 2 or 3")
	ErrImageDecode = errors.New("failed to decode image")
	ErrCapacityExceeded = errors.New("data too large for cover image")
	ErrCorruptHeader = errors.New("corrupted header")
	ErrInvalidDataLength = errors.New("invalid data length in header")
	ErrInsufficientData = errors.New("image too small for embedded data")
	ErrDecompression = errors.New("decompression failed")
)
