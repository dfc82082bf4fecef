package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/herbarium"
)

// Ensure LoggingRecordStore implements herbarium.RecordStore.
var _ herbarium.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore with write-path logging. Reads are
// not logged: the verifier and the matching index read every record and the
// noise would drown the writes.
type LoggingRecordStore struct {
	next   herbarium.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next herbarium.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// WriteRecord delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) WriteRecord(ctx context.Context, rec *herbarium.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write record",
			"slug", rec.Slug,
			"language", rec.Metadata.Language,
			"fields", len(rec.PresentFields()),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteRecord(ctx, rec)
}

// ReadRecord delegates to the wrapped store.
func (s *LoggingRecordStore) ReadRecord(ctx context.Context, slug string, lang herbarium.Language) (*herbarium.Record, error) {
	return s.next.ReadRecord(ctx, slug, lang)
}

// Slugs delegates to the wrapped store.
func (s *LoggingRecordStore) Slugs(ctx context.Context) ([]string, error) {
	return s.next.Slugs(ctx)
}

// Languages delegates to the wrapped store.
func (s *LoggingRecordStore) Languages(ctx context.Context, slug string) ([]herbarium.Language, error) {
	return s.next.Languages(ctx, slug)
}

// WriteIndex delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) WriteIndex(ctx context.Context) (index *herbarium.Index, err error) {
	defer func(begin time.Time) {
		total := 0
		if index != nil {
			total = index.Total
		}
		s.logger.Info("write index",
			"total", total,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteIndex(ctx)
}
