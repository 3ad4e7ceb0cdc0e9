package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// RecordDescription is written into every cache record as a warning for
// anyone who stumbles over the file in the repository.
const RecordDescription = "DON'T edit this file manually! It caches the content hash " +
	"of the last successful export and is used to skip unnecessary re-runs."

// ExportRecord is the persisted fact "as of this content hash, the derived
// export is up to date". It is overwritten whole, never merged, and only as
// the final step of a successful export run.
type ExportRecord struct {
	// Hash is the lowercase hex SHA-256 digest of the input artifact bytes
	// at the moment the last export completed.
	Hash string `json:"hash"`

	// Description warns against manual edits.
	Description string `json:"description"`
}

// NewExportRecord builds the record for the given input artifact bytes.
func NewExportRecord(input []byte) ExportRecord {
	return ExportRecord{
		Hash:        Digest(input),
		Description: RecordDescription,
	}
}

// Digest returns the lowercase hex SHA-256 digest of b. Content hashes make
// the cache immune to touch-without-change and to clock skew, which
// timestamps are not.
func Digest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
