package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(data []byte) []string {
	var out []string
	for u := range ScanUnits(data) {
		out = append(out, string(u))
	}
	return out
}

func TestScanUnitsConcatenated(t *testing.T) {
	// units written over time with append semantics, not one per line
	data := []byte(`{"external_id":"a"}` + "\n" + `{"external_id":"b"}{"external_id":"c"}`)

	units := collect(data)
	require.Equal(t, []string{`{"external_id":"a"}`, `{"external_id":"b"}`, `{"external_id":"c"}`}, units)
}

func TestScanUnitsMultiLineAndNested(t *testing.T) {
	data := []byte("{\n  \"external_id\": \"a\",\n  \"customer\": {\"name\": \"Ana\"}\n}\n")

	units := collect(data)
	require.Len(t, units, 1)
	require.Contains(t, units[0], `"customer": {"name": "Ana"}`)
}

func TestScanUnitsBracesInsideStrings(t *testing.T) {
	data := []byte(`{"pix_payload":"weird {qr} \"stuff\" }{"}{"external_id":"b"}`)

	units := collect(data)
	require.Len(t, units, 2)
	require.Equal(t, `{"external_id":"b"}`, units[1])
}

func TestScanUnitsSkipsTruncatedTail(t *testing.T) {
	// crash mid-write: one good unit, one half-written fragment
	data := []byte(`{"external_id":"a","status":"PENDING"}` + "\n" + `{"external_id":"b","sta`)

	units := collect(data)
	require.Len(t, units, 1)

	rec, err := DecodeRecord([]byte(units[0]))
	require.NoError(t, err)
	require.Equal(t, "a", rec.ExternalID)
}

func TestScanUnitsGarbageBetweenUnits(t *testing.T) {
	data := []byte("}} noise\n" + `{"external_id":"a"}` + "garbage" + `{"external_id":"b"}`)

	units := collect(data)
	require.Len(t, units, 2)
}

func TestScanUnitsRestartable(t *testing.T) {
	data := []byte(`{"external_id":"a"}{"external_id":"b"}`)
	seq := ScanUnits(data)

	first := 0
	for range seq {
		first++
		break // stop early
	}
	require.Equal(t, 1, first)

	second := 0
	for range seq {
		second++
	}
	require.Equal(t, 2, second)
}

func TestScanUnitsEmpty(t *testing.T) {
	require.Empty(t, collect(nil))
	require.Empty(t, collect([]byte("  \n")))
}
