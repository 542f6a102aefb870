package primitive

import (
	"encoding/binary"
	"math"
	"time"
)

// dayCorrection is the fix for the standard's documented-but-wrong
// 25569-day epoch offset (spec §3): the true difference between
// 1900-01-01 and the Unix epoch is 25567 days, two short of what the
// standard states. The codec applies the correction on both read (days-2)
// and write (days+2) so the two mistakes cancel across a round trip but
// every on-disk value still carries the standard's original (incorrect)
// day count.
const dayCorrection = 2

// epoch1900 is the PQDIF timestamp epoch.
var epoch1900 = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// DecodeTimestamp reads a 12-byte Timestamp payload: 4 bytes of u32 days
// since the epoch, 8 bytes of f64 seconds since midnight of that day.
func DecodeTimestamp(b []byte) time.Time {
	days := binary.LittleEndian.Uint32(b[0:4])
	seconds := math.Float64frombits(binary.LittleEndian.Uint64(b[4:12]))
	adjustedDays := int64(days) - dayCorrection
	return epoch1900.Add(time.Duration(adjustedDays) * 24 * time.Hour).
		Add(time.Duration(seconds * float64(time.Second)))
}

// EncodeTimestamp is the inverse of DecodeTimestamp.
func EncodeTimestamp(t time.Time) []byte {
	t = t.UTC()
	diff := t.Sub(epoch1900)
	totalDays := int64(diff / (24 * time.Hour))
	remainder := diff - time.Duration(totalDays)*24*time.Hour
	days := uint32(totalDays + dayCorrection)
	seconds := remainder.Seconds()

	out := make([]byte, 12)
	binary.LittleEndian.PutUint32(out[0:4], days)
	binary.LittleEndian.PutUint64(out[4:12], math.Float64bits(seconds))
	return out
}
