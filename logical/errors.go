package logical

import "github.com/pkg/errors"

// Protocol error taxonomy (§7). All are fatal: the sequencer stops and
// returns the error rather than attempting to recover, unlike the
// physical layer's per-element recovery.
var (
	ErrMissingContainer       = errors.New("logical: stream does not begin with a Container record")
	ErrDuplicateContainer     = errors.New("logical: second Container record encountered mid-stream")
	ErrObservationWithoutData = errors.New("logical: Observation record with no preceding DataSource")
	ErrUnrecognizedRecordType = errors.New("logical: record_type_tag does not match any known record type")
)
