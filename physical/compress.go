package physical

import (
	"bytes"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// deflate zlib-compresses a record body for record-level compression
// (§4.D step 2).
func deflate(body []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zlib.NewWriter(buf)
	if _, err := zw.Write(body); err != nil {
		return nil, errors.Wrap(err, "physical: deflate record body")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "physical: close zlib stream")
	}
	return buf.Bytes(), nil
}

// compressBody applies the writer's configured compression to a serialized
// record body, returning the bytes that should be written to disk.
func compressBody(algo CompressionAlgorithm, style CompressionStyle, body []byte) ([]byte, error) {
	if style == CompressionStyleNone || algo == CompressionNone {
		return body, nil
	}
	if style != CompressionStyleRecordLevel {
		return nil, errors.Wrapf(ErrUnsupportedCompression, "algorithm=%d style=%d", algo, style)
	}
	if algo == CompressionZlib {
		return deflate(body)
	}
	return nil, errors.Wrapf(ErrUnsupportedCompression, "algorithm=%d style=%d", algo, style)
}
