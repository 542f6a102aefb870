package record

import (
	"github.com/pqdif/pqdif/identifier"
	"github.com/pqdif/pqdif/physical"
)

// DataSourceRecord is the view over a DataSource record: the name of the
// instrument or data source responsible for subsequent Observations
// (§4.G, §4.E).
type DataSourceRecord struct {
	root *physical.Collection
}

// NewDataSourceRecord wraps an existing root Collection.
func NewDataSourceRecord(root *physical.Collection) *DataSourceRecord {
	return &DataSourceRecord{root: root}
}

// NewDataSource builds a fresh DataSource record with the given name.
func NewDataSource(name string) *DataSourceRecord {
	root := physical.NewCollection(identifier.TagDataSourceRecordType)
	d := &DataSourceRecord{root: root}
	d.SetName(name)
	return d
}

// Root returns the underlying Collection.
func (d *DataSourceRecord) Root() *physical.Collection { return d.root }

// Name returns the data source's human-readable name.
func (d *DataSourceRecord) Name() (string, error) {
	v := d.root.GetVectorByTag(identifier.TagDataSourceName)
	if v == nil {
		return "", ErrMissingField
	}
	return decodeChar1String(v)
}

// SetName replaces the data source's name.
func (d *DataSourceRecord) SetName(name string) {
	setChar1String(d.root, identifier.TagDataSourceName, name)
}
