package document

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nuttapol-k/doctran/internal/translate"
	"github.com/nuttapol-k/doctran/pkg/file"
)

// ErrUnsupportedFormat marks a file whose extension has no registered
// adapter. The error is scoped to that single file; a batch keeps going.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Adapter translates one document: extract text spans, resolve them
// through the service, write a new document with the spans replaced.
type Adapter interface {
	Translate(ctx context.Context, inputPath, outputPath string, svc *translate.Service) error
}

// Registry maps lowercased file extensions to format adapters.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry returns a registry with all built-in formats registered.
func NewRegistry() *Registry {
	r := &Registry{adapters: make(map[string]Adapter)}
	r.Register(".xlsx", ExcelAdapter{})
	r.Register(".xls", ExcelAdapter{})
	r.Register(".docx", WordAdapter{})
	r.Register(".pdf", PDFAdapter{})
	r.Register(".csv", CSVAdapter{})
	r.Register(".txt", TextAdapter{})
	return r
}

// Register binds an extension (with leading dot) to an adapter.
func (r *Registry) Register(ext string, adapter Adapter) {
	r.adapters[ext] = adapter
}

// Lookup returns the adapter for ext, or an ErrUnsupportedFormat-wrapped
// error.
func (r *Registry) Lookup(ext string) (Adapter, error) {
	adapter, ok := r.adapters[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	return adapter, nil
}

// Extensions lists the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.adapters))
	for ext := range r.adapters {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Translate dispatches a single file to the adapter selected by its
// extension, creating the output's parent directory first.
func (r *Registry) Translate(ctx context.Context, inputPath, outputPath string, svc *translate.Service) error {
	adapter, err := r.Lookup(file.Ext(inputPath))
	if err != nil {
		return err
	}
	if err := file.EnsureParentDir(outputPath); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return adapter.Translate(ctx, inputPath, outputPath, svc)
}
