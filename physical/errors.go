package physical

import "github.com/pkg/errors"

// Error taxonomy (§7). Stream and resource errors are fatal to the current
// operation; structural errors are recoverable on read (captured into an
// Error element) but fatal on write.
var (
	ErrUnsupportedCompression = errors.New("physical: unsupported compression algorithm or style")
	ErrBadHeaderSize          = errors.New("physical: header_size field is not 64")
	ErrStreamNotSeekable      = errors.New("physical: stream does not support seeking")
	ErrWriterClosed           = errors.New("physical: write on a closed writer")
	ErrReaderClosed           = errors.New("physical: read on a closed reader")
)
