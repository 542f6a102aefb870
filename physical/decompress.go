package physical

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// CompressionAlgorithm mirrors the Container record's CompressionAlgorithm
// child (§4.C, §6). TotalFile and PKZIP compression defined by the
// standard are explicitly out of scope (§1 Non-goals) and are recognized
// here only so a reader configured with one fails fast rather than
// silently misparsing.
type CompressionAlgorithm uint8

const (
	CompressionNone     CompressionAlgorithm = 0
	CompressionZlib     CompressionAlgorithm = 1
	CompressionPKZIP    CompressionAlgorithm = 2
	CompressionTotalFile CompressionAlgorithm = 3
)

// CompressionStyle mirrors the Container record's CompressionStyle child.
type CompressionStyle uint8

const (
	CompressionStyleNone        CompressionStyle = 0
	CompressionStyleRecordLevel CompressionStyle = 1
	CompressionStyleTotalFile   CompressionStyle = 2
)

// inflate decompresses a zlib-compressed record body. klauspost/compress's
// zlib package is a drop-in, faster replacement for compress/zlib with the
// identical io.ReadCloser surface.
func inflate(body []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "physical: open zlib stream")
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "physical: inflate record body")
	}
	return out, nil
}

// resolveBody applies the active compression configuration to a record's
// raw on-disk body bytes (§4.C step 4).
func resolveBody(algo CompressionAlgorithm, style CompressionStyle, body []byte) ([]byte, error) {
	if style == CompressionStyleNone || algo == CompressionNone {
		return body, nil
	}
	if style != CompressionStyleRecordLevel {
		return nil, errors.Wrapf(ErrUnsupportedCompression, "algorithm=%d style=%d", algo, style)
	}
	if algo == CompressionZlib {
		return inflate(body)
	}
	return nil, errors.Wrapf(ErrUnsupportedCompression, "algorithm=%d style=%d", algo, style)
}
