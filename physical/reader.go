package physical

import (
	"bytes"
	"encoding/binary"
	"hash/adler32"
	"io"

	"github.com/pkg/errors"
	"github.com/pqdif/pqdif/identifier"
)

// Record is one physical record: its on-disk header plus the parsed
// element tree of its body.
type Record struct {
	Header           RecordHeader
	ComputedChecksum uint32
	Body             *Collection
}

// ChecksumOK reports whether the header's stored checksum matches the
// checksum computed over the on-disk (pre-decompression) body bytes.
func (r *Record) ChecksumOK() bool {
	return r.Header.Checksum == r.ComputedChecksum
}

// Reader iterates the records of a PQDIF byte stream (§4.C). It is
// strictly single-threaded: no concurrent call should be made against one
// instance (§5).
type Reader struct {
	stream              io.ReadSeeker
	length              int64
	algorithm           CompressionAlgorithm
	style               CompressionStyle
	visited             map[int64]bool
	errs                []error
	errorBudget         int
	offset              int64
	done                bool
	rejectBadHeaderSize bool
}

// Option configures a Reader at construction.
type Option func(*Reader)

// WithErrorBudget overrides the default error budget of 100. A negative
// value disables the budget.
func WithErrorBudget(n int) Option {
	return func(r *Reader) { r.errorBudget = n }
}

// WithStrictHeaderSize makes the reader reject records whose header_size
// field is not 64 (§9 open question, resolved for this implementation).
func WithStrictHeaderSize() Option {
	return func(r *Reader) { r.rejectBadHeaderSize = true }
}

// NewReader builds a Reader over a seekable byte stream.
func NewReader(stream io.ReadSeeker, opts ...Option) (*Reader, error) {
	length, err := streamLength(stream)
	if err != nil {
		return nil, err
	}
	r := &Reader{
		stream:      stream,
		length:      length,
		visited:     make(map[int64]bool),
		errorBudget: 100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func streamLength(stream io.Seeker) (int64, error) {
	cur, err := stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.Wrap(ErrStreamNotSeekable, err.Error())
	}
	end, err := stream.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.Wrap(ErrStreamNotSeekable, err.Error())
	}
	if _, err := stream.Seek(cur, io.SeekStart); err != nil {
		return 0, errors.Wrap(ErrStreamNotSeekable, err.Error())
	}
	return end, nil
}

// SetCompression sets the active compression algorithm/style. The logical
// sequencer calls this after reading the Container record's children,
// before any subsequent record is parsed (§4.C: "sticky per parser
// instance").
func (r *Reader) SetCompression(algo CompressionAlgorithm, style CompressionStyle) {
	r.algorithm = algo
	r.style = style
}

// Errors returns the non-fatal structural errors accumulated so far.
func (r *Reader) Errors() []error {
	return r.errs
}

// Reset repositions the reader at the start of the stream, recovering from
// a cancelled or aborted read (§5).
func (r *Reader) Reset() error {
	if _, err := r.stream.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "physical: reset reader")
	}
	r.offset = 0
	r.done = false
	r.visited = make(map[int64]bool)
	r.errs = nil
	return nil
}

// Next reads and returns the next physical record, or io.EOF once the
// stream is exhausted, a cycle is detected, or the error budget is spent.
func (r *Reader) Next() (*Record, error) {
	if r.done {
		return nil, io.EOF
	}

	r.visited[r.offset] = true
	if _, err := r.stream.Seek(r.offset, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "physical: seek to record")
	}

	header, err := readRecordHeader(r.stream)
	if err != nil {
		return nil, err
	}
	if r.rejectBadHeaderSize && header.HeaderSize != HeaderSize {
		return nil, errors.Wrapf(ErrBadHeaderSize, "at offset %d: got %d", r.offset, header.HeaderSize)
	}

	rawBody := make([]byte, header.BodySize)
	if _, err := io.ReadFull(r.stream, rawBody); err != nil {
		return nil, errors.Wrap(err, "physical: read record body")
	}
	checksum := adler32.Checksum(rawBody)

	body, err := resolveBody(r.algorithm, r.style, rawBody)
	if err != nil {
		return nil, err
	}

	root := r.parseCollection(bytes.NewReader(body), identifier.Zero, int64(len(body)))
	if root.Tag().IsZero() {
		root.SetTag(header.RecordTypeTag)
	}

	rec := &Record{Header: *header, ComputedChecksum: checksum, Body: root}

	if r.budgetExceeded() {
		r.done = true
		return rec, nil
	}

	next := int64(header.NextRecordPosition)
	if next <= 0 || next >= r.length || r.visited[next] {
		r.done = true
	} else {
		r.offset = next
	}
	return rec, nil
}

func (r *Reader) recordError(err error) {
	r.errs = append(r.errs, err)
}

func (r *Reader) budgetExceeded() bool {
	if r.errorBudget < 0 {
		return false
	}
	return len(r.errs) > r.errorBudget
}

// parseCollection parses a "count + N element headers + N payloads"
// collection payload starting at the current position of body (§4.C, §6).
func (r *Reader) parseCollection(body *bytes.Reader, tag identifier.Identifier, bodyLen int64) *Collection {
	coll := NewCollection(tag)

	var count int32
	if err := binary.Read(body, binary.LittleEndian, &count); err != nil {
		r.recordError(errors.Wrap(err, "physical: read collection count"))
		return coll
	}
	if count < 0 {
		r.recordError(errors.Errorf("physical: collection %s has negative count %d", tag, count))
		return coll
	}
	coll.readSize = int(count)

	for i := int32(0); i < count; i++ {
		if r.budgetExceeded() {
			return coll
		}
		elem := r.parseChild(body, bodyLen)
		if elem == nil {
			// The header itself was unreadable; the remaining children
			// cannot be located. ReadSize stays larger than len(children),
			// which is the documented truncation signal.
			return coll
		}
		coll.Add(elem)
	}
	return coll
}

// parseChild parses one element header, plus its embedded or linked
// payload, starting at the current position of body. Whenever the header
// itself was read, it leaves body positioned at the start of the next
// sibling's header on return (§4.C: "resume at current+28"); when the
// header is unreadable it returns nil and body is not repositioned.
func (r *Reader) parseChild(body *bytes.Reader, bodyLen int64) Element {
	childStart, _ := body.Seek(0, io.SeekCurrent)
	resumeAt := childStart + ElementHeaderSize

	h, err := readElementHeader(body)
	if err != nil {
		r.recordError(err)
		return nil
	}
	defer body.Seek(resumeAt, io.SeekStart)

	if h.kind == kindUnknownMarker {
		r.recordError(errors.Errorf("physical: element %s has unrecognized kind byte 0x%02x", h.tag, h.rawKind))
		return &Unknown{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, RawKind: h.rawKind}
	}

	if h.embedded && h.kind != KindScalar {
		cause := errors.Errorf("embedded flag set on non-scalar element %s", h.tag)
		r.recordError(cause)
		return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: cause}
	}

	if h.embedded {
		sz, szErr := h.valueType.Size()
		if szErr != nil || sz > 8 {
			cause := errors.Errorf("value type %s cannot be embedded in element %s", h.valueType, h.tag)
			r.recordError(cause)
			return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: cause}
		}
		scalar := NewScalar(h.tag, h.valueType)
		scalar.SetBytes(h.trailer[:sz], 0)
		return scalar
	}

	link := int32(binary.LittleEndian.Uint32(h.trailer[0:4]))
	size := int32(binary.LittleEndian.Uint32(h.trailer[4:8]))
	if link < 0 || int64(link) >= bodyLen || int64(link)+int64(size) > bodyLen {
		cause := errors.Errorf("link offset %d (size %d) out of range for element %s", link, size, h.tag)
		r.recordError(cause)
		return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: cause}
	}
	if _, err := body.Seek(int64(link), io.SeekStart); err != nil {
		cause := errors.Wrapf(err, "seek to linked payload for element %s", h.tag)
		r.recordError(cause)
		return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: cause}
	}

	switch h.kind {
	case KindScalar:
		sz, szErr := h.valueType.Size()
		if szErr != nil {
			r.recordError(szErr)
			return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: szErr}
		}
		buf := make([]byte, sz)
		if _, err := io.ReadFull(body, buf); err != nil {
			cause := errors.Wrapf(err, "read linked scalar payload for element %s", h.tag)
			r.recordError(cause)
			return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: cause}
		}
		scalar := NewScalar(h.tag, h.valueType)
		scalar.SetBytes(buf, 0)
		return scalar

	case KindVector:
		var vcount int32
		if err := binary.Read(body, binary.LittleEndian, &vcount); err != nil {
			cause := errors.Wrapf(err, "read vector size for element %s", h.tag)
			r.recordError(cause)
			return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: cause}
		}
		sz, szErr := h.valueType.Size()
		if szErr != nil {
			r.recordError(szErr)
			return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: szErr}
		}
		buf := make([]byte, int64(vcount)*int64(sz))
		if _, err := io.ReadFull(body, buf); err != nil {
			cause := errors.Wrapf(err, "read vector payload for element %s", h.tag)
			r.recordError(cause)
			return &Error{elementBase: elementBase{tag: h.tag, valueType: h.valueType}, OriginalKind: h.rawKind, Cause: cause}
		}
		vec := NewVector(h.tag, h.valueType, int(vcount))
		copy(vec.buf, buf)
		return vec

	case KindCollection:
		return r.parseCollection(body, h.tag, bodyLen)
	}
	return nil
}
