package tool

import "github.com/google/uuid"

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateExternalID returns a fresh ledger-side transaction identifier.
// External ids are assigned once per creation attempt and never reused.
func GenerateExternalID() string {
	return "pix_" + GenerateUUIDV7()
}
