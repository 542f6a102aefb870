// Package logical implements the thin state machine that turns a
// physical record stream into a sequence of Observations, each
// associated with the most recent DataSource and MonitorSettings record
// seen so far (§4.E).
package logical

import (
	"io"

	"github.com/pkg/errors"
	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
	"github.com/pqdif/pqdif/record"
)

type state int

const (
	stateStart state = iota
	stateScanning
	stateDone
)

// Observation bundles a yielded ObservationRecord with the DataSource and
// MonitorSettings that were in force when it was read (§4.E: "current
// state variables, most-recent-wins").
type Observation struct {
	Record     *record.ObservationRecord
	DataSource *record.DataSourceRecord
	Settings   *record.MonitorSettingsRecord
}

// Sequencer wraps a physical.Reader and classifies its record stream
// into the logical Container/DataSource/MonitorSettings/Observation
// protocol (§4.E).
type Sequencer struct {
	reader     *physical.Reader
	state      state
	container  *record.ContainerRecord
	dataSource *record.DataSourceRecord
	settings   *record.MonitorSettingsRecord
	allSources []*record.DataSourceRecord
}

// Open consumes the stream's first record, requires it to be a
// Container, reads its compression declaration, and propagates that
// declaration to the physical reader before any further record is
// parsed (§4.E).
func Open(stream io.ReadSeeker, opts ...physical.Option) (*Sequencer, error) {
	reader, err := physical.NewReader(stream, opts...)
	if err != nil {
		return nil, err
	}
	s := &Sequencer{reader: reader, state: stateStart}

	rec, err := reader.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Wrap(ErrMissingContainer, "empty stream")
		}
		return nil, err
	}
	if !rec.Header.RecordTypeTag.Equal(identifier.TagContainerRecordType) {
		return nil, ErrMissingContainer
	}

	s.container = record.NewContainerRecord(rec.Body)
	algo, style := s.container.Compression()
	reader.SetCompression(algo, style)
	s.state = stateScanning
	return s, nil
}

// Container returns the stream's Container record.
func (s *Sequencer) Container() *record.ContainerRecord { return s.container }

// DataSources returns every DataSource record seen so far, in file
// order, for random-access lookup (§4.E).
func (s *Sequencer) DataSources() []*record.DataSourceRecord { return s.allSources }

// Errors returns the physical reader's accumulated non-fatal structural
// errors.
func (s *Sequencer) Errors() []error { return s.reader.Errors() }

// Next pulls the next Observation from the stream, skipping and
// classifying any intermediate DataSource/MonitorSettings records and
// updating current-state as it goes. Returns io.EOF once the stream is
// exhausted.
func (s *Sequencer) Next() (*Observation, error) {
	if s.state == stateDone {
		return nil, io.EOF
	}

	for {
		rec, err := s.reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.state = stateDone
				return nil, io.EOF
			}
			return nil, err
		}

		switch {
		case rec.Header.RecordTypeTag.Equal(identifier.TagContainerRecordType):
			s.state = stateDone
			return nil, ErrDuplicateContainer

		case rec.Header.RecordTypeTag.Equal(identifier.TagDataSourceRecordType):
			s.dataSource = record.NewDataSourceRecord(rec.Body)
			s.allSources = append(s.allSources, s.dataSource)
			continue

		case rec.Header.RecordTypeTag.Equal(identifier.TagMonitorSettingsRecordType):
			s.settings = record.NewMonitorSettingsRecord(rec.Body)
			continue

		case rec.Header.RecordTypeTag.Equal(identifier.TagObservationRecordType):
			if s.dataSource == nil {
				s.state = stateDone
				return nil, ErrObservationWithoutData
			}
			return &Observation{
				Record:     record.NewObservationRecord(rec.Body),
				DataSource: s.dataSource,
				Settings:   s.settings,
			}, nil

		default:
			s.state = stateDone
			return nil, errors.Wrapf(ErrUnrecognizedRecordType, "tag %s", rec.Header.RecordTypeTag)
		}
	}
}
