// Package content reads the about-me document from wherever it is kept and
// turns it into a portfolio.Profile.
package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ishant9805/portfolio/internal/portfolio"
	"github.com/ishant9805/portfolio/internal/store"
)

// ErrUnavailable means a source has no document to offer.
var ErrUnavailable = errors.New("content unavailable")

// Source yields the raw document text.
type Source interface {
	Name() string
	Read(ctx context.Context) (string, error)
}

// FileSource reads the document from disk.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return "file" }

func (f FileSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", f.Path, ErrUnavailable)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return string(data), nil
}

// DocumentStore is the part of store.Store a StoreSource needs.
type DocumentStore interface {
	LatestDocument(ctx context.Context) (store.Document, error)
}

// StoreSource serves the newest uploaded revision.
type StoreSource struct {
	Store DocumentStore
}

func (s StoreSource) Name() string { return "store" }

func (s StoreSource) Read(ctx context.Context) (string, error) {
	doc, err := s.Store.LatestDocument(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("no uploaded document: %w", ErrUnavailable)
	}
	if err != nil {
		return "", err
	}
	return doc.Body, nil
}

// OriginDefaults is reported when no source produced a document.
const OriginDefaults = "defaults"

// Loader tries its sources in order. Concurrent loads share one read.
type Loader struct {
	sources   []Source
	extractor *portfolio.Extractor
	logger    *zap.Logger
	group     singleflight.Group
}

type document struct {
	text   string
	origin string
}

func NewLoader(extractor *portfolio.Extractor, logger *zap.Logger, sources ...Source) *Loader {
	if extractor == nil {
		extractor = portfolio.NewExtractor()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		sources:   sources,
		extractor: extractor,
		logger:    logger,
	}
}

// Raw returns the first document any source can provide and the name of that
// source. It returns ErrUnavailable when no source has a document; any other
// error means a source failed.
//
// Concurrent callers share one read. The shared read is detached from the
// caller that started it, so one cancelled request cannot fail the others;
// each caller still stops waiting when its own ctx is done.
func (l *Loader) Raw(ctx context.Context) (string, string, error) {
	ch := l.group.DoChan("raw", func() (any, error) {
		return l.read(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", "", res.Err
		}
		doc := res.Val.(document)
		return doc.text, doc.origin, nil
	}
}

func (l *Loader) read(ctx context.Context) (document, error) {
	var failures []error
	for _, src := range l.sources {
		text, err := src.Read(ctx)
		if err == nil && strings.TrimSpace(text) != "" {
			return document{text: text, origin: src.Name()}, nil
		}
		if err == nil || errors.Is(err, ErrUnavailable) {
			continue
		}
		l.logger.Warn("content source failed", zap.String("source", src.Name()), zap.Error(err))
		failures = append(failures, fmt.Errorf("%s: %w", src.Name(), err))
	}
	if len(failures) > 0 {
		return document{}, errors.Join(failures...)
	}
	return document{}, ErrUnavailable
}

// Load returns the profile for the current document together with the name
// of the source it came from. When no source has a document it returns the
// canonical defaults with origin OriginDefaults; it never fails.
func (l *Loader) Load(ctx context.Context) (portfolio.Profile, string) {
	text, origin, err := l.Raw(ctx)
	if err != nil {
		l.logger.Info("no portfolio document, serving defaults", zap.Error(err))
		return portfolio.ExtractDefaults(), OriginDefaults
	}
	return l.extractor.Extract(text), origin
}
