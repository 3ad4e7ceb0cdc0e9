package ports

import "go.trai.ch/pywf/internal/core/domain"

// RecordStore defines the interface for persisting export cache records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the stored record. It returns (nil, nil) when no record
	// exists, which callers treat as a cold start. A record that exists but
	// cannot be parsed yields an error wrapping domain.ErrRecordCorrupt.
	Get() (*domain.ExportRecord, error)

	// Put atomically replaces any prior record with rec.
	Put(rec domain.ExportRecord) error
}
