package stegano
import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

const (
	// payloads below this size are not worth the zlib overhead
	compressionThreshold = 100
	compressionLevel = 6
)

// compressPayload deflates the payload when requested and keeps the
// result only if it actually got smaller. a compressor failure is
// treated the same as "did not help": the payload is stored as is and
// the compression flag stays unset.
func compressPayload( data []byte, useCompression bool ) ([]byte, bool) {
	if !useCompression || len(data) <= compressionThreshold {
		return data, false
	}
	compressed, err := deflate( data )
	if err != nil {
		return data, false
	}
	if len(compressed) >= len(data) {
		return data, false
	}
	return compressed, true
}

func deflate( data []byte ) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel( &buf, compressionLevel )
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write( data ); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress inflates a body whose compression flag was set. unlike
// the embedding side there is no graceful fallback here: a stream the
// inflater rejects means the payload cannot be recovered.
func Decompress( data []byte ) ([]byte, error) {
	zr, err := zlib.NewReader( bytes.NewReader( data ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer zr.Close()

	var out bytes.Buffer
	if _, err := io.Copy( &out, zr ); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return out.Bytes(), nil
}
