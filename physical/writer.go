package physical

import (
	"bytes"
	"encoding/binary"
	"hash/adler32"
	"io"

	"github.com/pkg/errors"
	"github.com/pqdif/pqdif/identifier"
)

// Writer serializes records to a seekable stream (§4.D). Each call to
// WriteRecord lays out one complete record: header, then body (optionally
// compressed), chained to the previous record via NextRecordPosition.
type Writer struct {
	stream    io.WriteSeeker
	algorithm CompressionAlgorithm
	style     CompressionStyle
	closed    bool
	prevOffset int64
	havePrev  bool
}

// NewWriter builds a Writer over a seekable stream positioned at its
// intended start (typically offset 0 of a fresh file).
func NewWriter(stream io.WriteSeeker, algo CompressionAlgorithm, style CompressionStyle) *Writer {
	return &Writer{stream: stream, algorithm: algo, style: style}
}

// WriteRecord serializes one record: recordTypeTag identifies the record
// (Container/DataSource/MonitorSettings/Observation, §4.E), root is the
// element tree to serialize as the record body.
func (w *Writer) WriteRecord(recordTypeTag identifier.Identifier, root *Collection) error {
	if w.closed {
		return ErrWriterClosed
	}

	bodyBuf := new(bytes.Buffer)
	if err := writeCollectionBody(bodyBuf, root); err != nil {
		return errors.Wrap(err, "physical: serialize record body")
	}
	rawBody := bodyBuf.Bytes()

	onDiskBody, err := compressBody(w.algorithm, w.style, rawBody)
	if err != nil {
		return err
	}
	checksum := adler32.Checksum(onDiskBody)

	recordStart, err := w.stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "physical: locate record start")
	}

	header := &RecordHeader{
		Signature:          identifier.RecordSignature,
		RecordTypeTag:      recordTypeTag,
		HeaderSize:         HeaderSize,
		BodySize:           int32(len(onDiskBody)),
		NextRecordPosition: 0,
		Checksum:           checksum,
	}
	if err := header.writeTo(w.stream); err != nil {
		return err
	}
	if _, err := w.stream.Write(onDiskBody); err != nil {
		return errors.Wrap(err, "physical: write record body")
	}

	if w.havePrev {
		if err := w.patchNextRecordPosition(w.prevOffset, int32(recordStart)); err != nil {
			return err
		}
	}
	w.prevOffset = recordStart
	w.havePrev = true
	return nil
}

// Close finalizes the stream. The last record's NextRecordPosition is left
// at 0, the documented end-of-chain sentinel (§4.C).
func (w *Writer) Close() error {
	w.closed = true
	return nil
}

func (w *Writer) patchNextRecordPosition(recordOffset int64, next int32) error {
	cur, err := w.stream.Seek(0, io.SeekCurrent)
	if err != nil {
		return errors.Wrap(err, "physical: save write position")
	}
	// next_record_position sits at byte offset 40 within the 64-byte header.
	if _, err := w.stream.Seek(recordOffset+40, io.SeekStart); err != nil {
		return errors.Wrap(err, "physical: seek to patch next_record_position")
	}
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(next))
	if _, err := w.stream.Write(buf); err != nil {
		return errors.Wrap(err, "physical: patch next_record_position")
	}
	_, err = w.stream.Seek(cur, io.SeekStart)
	return errors.Wrap(err, "physical: restore write position")
}

// childPlan captures the layout decision for one child element, computed in
// the first pass before any header or payload bytes are written.
type childPlan struct {
	elem     Element
	embedded bool
	link     int64 // absolute offset within the record body buffer
	size     int64
}

// rawSize returns the unpadded byte length of an element's linked payload
// (§4.D: scalar size, or 4+n*elemSize for a vector, or the fully recursive
// size of a nested collection's serialized body).
func rawSize(e Element) (int64, error) {
	switch v := e.(type) {
	case *Scalar:
		sz, err := v.ValueType().Size()
		return int64(sz), err
	case *Vector:
		sz, err := v.ValueType().Size()
		if err != nil {
			return 0, err
		}
		return 4 + int64(v.Size())*int64(sz), nil
	case *Collection:
		return collectionBodySize(v)
	default:
		return 0, errors.Errorf("physical: cannot size element kind %s for tag %s", e.Kind(), e.Tag())
	}
}

// paddedSize rounds a raw size up to the nearest multiple of 4, the
// element payload alignment invariant described in §4.D ("padding law"):
// padded = ((size + 3) / 4) * 4.
func paddedSize(n int64) int64 {
	return (n + 3) / 4 * 4
}

func isEmbeddable(e Element) bool {
	s, ok := e.(*Scalar)
	if !ok {
		return false
	}
	return s.ValueType().Embeddable()
}

// collectionBodySize computes the total serialized size of a collection's
// body: 4-byte count, N*28-byte headers, then each child's padded linked
// payload (embedded children contribute no payload bytes).
func collectionBodySize(c *Collection) (int64, error) {
	size := int64(4) + int64(len(c.children))*ElementHeaderSize
	for _, child := range c.children {
		if isEmbeddable(child) {
			continue
		}
		raw, err := rawSize(child)
		if err != nil {
			return 0, err
		}
		size += paddedSize(raw)
	}
	return size, nil
}

// writeCollectionBody serializes root's element tree into w as one record
// body, following the two-pass layout: plan every child's embedding/link
// decision before emitting any bytes, so link offsets are self-consistent
// absolute positions within the record body buffer (§4.D).
func writeCollectionBody(w io.Writer, root *Collection) error {
	buf := new(bytes.Buffer)
	if err := writeCollectionAt(buf, root, 0); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// writeCollectionAt serializes one collection's body at baseOffset within
// the overall record body buffer, recursing into nested collections.
func writeCollectionAt(w *bytes.Buffer, c *Collection, baseOffset int64) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(c.children))); err != nil {
		return errors.Wrap(err, "physical: write collection count")
	}

	headerAreaStart := baseOffset + 4
	payloadCursor := headerAreaStart + int64(len(c.children))*ElementHeaderSize

	plans := make([]childPlan, len(c.children))
	for i, child := range c.children {
		if isEmbeddable(child) {
			plans[i] = childPlan{elem: child, embedded: true}
			continue
		}
		raw, err := rawSize(child)
		if err != nil {
			return err
		}
		plans[i] = childPlan{elem: child, embedded: false, link: payloadCursor, size: raw}
		payloadCursor += paddedSize(raw)
	}

	for _, p := range plans {
		// link is an absolute offset within the whole record body buffer,
		// matching how the reader resolves it (bytes.Reader over the full
		// decompressed body, not per-collection).
		plan := elementHeaderPlan{elem: p.elem, embedded: p.embedded, link: p.link, size: p.size}
		if err := writeElementHeader(w, plan); err != nil {
			return err
		}
	}

	for _, p := range plans {
		if p.embedded {
			continue
		}
		start := w.Len()
		if err := writeChildPayload(w, p.elem); err != nil {
			return err
		}
		written := int64(w.Len() - start)
		if pad := paddedSize(written) - written; pad > 0 {
			w.Write(make([]byte, pad))
		}
	}
	return nil
}

func writeChildPayload(w *bytes.Buffer, e Element) error {
	switch v := e.(type) {
	case *Scalar:
		w.Write(v.GetBytes())
		return nil
	case *Vector:
		if err := binary.Write(w, binary.LittleEndian, int32(v.Size())); err != nil {
			return errors.Wrap(err, "physical: write vector size")
		}
		w.Write(v.GetBytes())
		return nil
	case *Collection:
		nestedStart := int64(w.Len())
		return writeCollectionAt(w, v, nestedStart)
	default:
		return errors.Errorf("physical: cannot write payload for element kind %s (tag %s)", e.Kind(), e.Tag())
	}
}
