package mock

import (
	"context"

	"github.com/fwojciec/herbarium"
)

var _ herbarium.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of herbarium.RecordStore.
type RecordStore struct {
	WriteRecordFn func(ctx context.Context, rec *herbarium.Record) error
	ReadRecordFn  func(ctx context.Context, slug string, lang herbarium.Language) (*herbarium.Record, error)
	SlugsFn       func(ctx context.Context) ([]string, error)
	LanguagesFn   func(ctx context.Context, slug string) ([]herbarium.Language, error)
	WriteIndexFn  func(ctx context.Context) (*herbarium.Index, error)
}

func (s *RecordStore) WriteRecord(ctx context.Context, rec *herbarium.Record) error {
	return s.WriteRecordFn(ctx, rec)
}

func (s *RecordStore) ReadRecord(ctx context.Context, slug string, lang herbarium.Language) (*herbarium.Record, error) {
	return s.ReadRecordFn(ctx, slug, lang)
}

func (s *RecordStore) Slugs(ctx context.Context) ([]string, error) {
	return s.SlugsFn(ctx)
}

func (s *RecordStore) Languages(ctx context.Context, slug string) ([]herbarium.Language, error) {
	return s.LanguagesFn(ctx, slug)
}

func (s *RecordStore) WriteIndex(ctx context.Context) (*herbarium.Index, error) {
	return s.WriteIndexFn(ctx)
}

var _ herbarium.ImageStore = (*ImageStore)(nil)

// ImageStore is a mock implementation of herbarium.ImageStore.
type ImageStore struct {
	SaveImageFn func(ctx context.Context, slug string, url string) (string, error)
}

func (s *ImageStore) SaveImage(ctx context.Context, slug string, url string) (string, error) {
	return s.SaveImageFn(ctx, slug, url)
}
