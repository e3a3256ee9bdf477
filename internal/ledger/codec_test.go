package ledger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/lumipay/pixbridge/pkg/types"
)

func sampleRecord() *Record {
	created := time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC)
	return &Record{
		TransactionID: "tx_1",
		ExternalID:    "pix_abc",
		Amount:        decimal.RequireFromString("10.50"),
		Status:        types.StatusPending,
		Method:        "PIX",
		CreatedAt:     created,
		PixPayload:    "00020126580014br.gov.bcb.pix",
		Customer: &types.Customer{
			Name:     "João da Conceição",
			Document: "11144477735",
			Email:    "joao@exemplo.com",
			Phone:    "11999999999",
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec := sampleRecord()

	unit, err := EncodeRecord(rec)
	require.NoError(t, err)

	got, err := DecodeRecord(unit)
	require.NoError(t, err)

	require.Equal(t, rec.TransactionID, got.TransactionID)
	require.Equal(t, rec.ExternalID, got.ExternalID)
	require.True(t, rec.Amount.Equal(got.Amount))
	require.Equal(t, "10.5", got.Amount.String())
	require.Equal(t, rec.Status, got.Status)
	require.Equal(t, rec.Method, got.Method)
	require.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	require.Equal(t, rec.PixPayload, got.PixPayload)
	// non-ASCII text survives character-for-character
	require.Equal(t, "João da Conceição", got.Customer.Name)
}

func TestEncodeRecordNoEscaping(t *testing.T) {
	rec := sampleRecord()
	rec.PixPayload = "a&b<c>d"

	unit, err := EncodeRecord(rec)
	require.NoError(t, err)
	require.Contains(t, string(unit), "a&b<c>d")
}

func TestDecodeRecordPreservesUnknownFields(t *testing.T) {
	unit := []byte(`{"transaction_id":"tx_2","status":"PENDING","amount":5,"created_at":"2025-03-14T12:30:00Z","commission_rate":0.05,"ip":"10.0.0.7"}`)

	rec, err := DecodeRecord(unit)
	require.NoError(t, err)
	require.Len(t, rec.Extra, 2)
	require.Contains(t, rec.Extra, "commission_rate")
	require.Contains(t, rec.Extra, "ip")

	out, err := EncodeRecord(rec)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	require.Equal(t, "0.05", string(m["commission_rate"]))
	require.Equal(t, `"10.0.0.7"`, string(m["ip"]))
}

func TestDecodeRecordMalformed(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"transaction_id":"tx_3","status":`))
	require.ErrorIs(t, err, ErrMalformedRecord)

	_, err = DecodeRecord([]byte(`not json at all`))
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestEncodeRecordRequiresIdentifier(t *testing.T) {
	_, err := EncodeRecord(&Record{Status: types.StatusPending})
	require.ErrorIs(t, err, ErrMalformedRecord)

	_, err = EncodeRecord(nil)
	require.ErrorIs(t, err, ErrMalformedRecord)
}
