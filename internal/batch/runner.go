package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/nuttapol-k/doctran/internal/cache"
	"github.com/nuttapol-k/doctran/internal/document"
	"github.com/nuttapol-k/doctran/internal/translate"
	"github.com/nuttapol-k/doctran/pkg/file"
	"github.com/nuttapol-k/doctran/pkg/log"
)

// DefaultCacheFilename is the cache file created inside the target root
// when no explicit cache path is given.
const DefaultCacheFilename = "translation_cache.json"

// Options configures a batch run.
type Options struct {
	SourceDir  string
	TargetDir  string
	SourceLang string
	TargetLang string

	// CachePath overrides the default cache location inside TargetDir.
	CachePath string
	// Recursive walks the whole source tree instead of only its top level.
	Recursive bool
	// Extensions is the case-insensitive allow-list of file extensions to
	// process. Empty means every registered format.
	Extensions []string
	// Delay is the pause after each provider call; negative selects the
	// default.
	Delay time.Duration
	// Script forces the source script gate by Unicode script name.
	Script string
	// Progress draws a progress bar over the candidate files.
	Progress bool

	// Provider overrides the translation provider, used by tests. The
	// default is the Google provider for the configured language pair.
	Provider translate.Provider
}

// Runner walks a source tree and produces the translated mirror under the
// target root. It owns the single cache store and translation service
// shared by every file of the run.
type Runner struct {
	opts       Options
	store      *cache.Store
	svc        *translate.Service
	registry   *document.Registry
	extensions []string
}

// NewRunner validates the options and opens the shared cache. A cache
// file that exists but cannot be parsed aborts here; that is the one
// error class allowed to stop a whole run.
func NewRunner(opts Options) (*Runner, error) {
	if opts.SourceDir == "" || opts.TargetDir == "" {
		return nil, fmt.Errorf("source and target directories are required")
	}
	if _, err := os.Stat(opts.SourceDir); err != nil {
		return nil, fmt.Errorf("source directory %s: %w", opts.SourceDir, err)
	}

	cachePath := opts.CachePath
	if cachePath == "" {
		cachePath = filepath.Join(opts.TargetDir, DefaultCacheFilename)
	}
	store, err := cache.Open(cachePath)
	if err != nil {
		return nil, err
	}

	gate, err := translate.NewScriptGate(opts.SourceLang, opts.Script)
	if err != nil {
		return nil, err
	}

	provider := opts.Provider
	if provider == nil {
		provider = translate.NewGoogleProvider(opts.SourceLang, opts.TargetLang)
	}

	registry := document.NewRegistry()
	extensions := normalizeExtensions(opts.Extensions)
	if len(extensions) == 0 {
		extensions = registry.Extensions()
	}

	return &Runner{
		opts:       opts,
		store:      store,
		svc:        translate.NewService(provider, store, gate, opts.Delay),
		registry:   registry,
		extensions: extensions,
	}, nil
}

// Service exposes the shared translation service.
func (r *Runner) Service() *translate.Service {
	return r.svc
}

// Run processes every candidate file once. Per-file failures are logged
// and the batch continues; the cache is flushed unconditionally when the
// loop finishes, even after a partial failure.
func (r *Runner) Run(ctx context.Context) error {
	defer func() {
		if err := r.store.Flush(); err != nil {
			log.Error("Failed to flush translation cache: %v", err)
		}
	}()

	candidates, err := r.findCandidates()
	if err != nil {
		return fmt.Errorf("failed to enumerate source files: %w", err)
	}
	log.Info("Found %d candidate files under %s", len(candidates), r.opts.SourceDir)

	var bar *progressbar.ProgressBar
	if r.opts.Progress {
		bar = progressbar.NewOptions(len(candidates),
			progressbar.OptionSetDescription("translating"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	for _, inputPath := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.processFile(ctx, inputPath)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return nil
}

// processFile translates one candidate, skipping it when the output
// already exists. Every failure is scoped to this file.
func (r *Runner) processFile(ctx context.Context, inputPath string) {
	outputPath, err := r.targetPath(ctx, inputPath)
	if err != nil {
		log.Error("Failed to resolve target path for %s: %v", inputPath, err)
		return
	}

	if _, err := os.Stat(outputPath); err == nil {
		log.Info("Skipping %s - translated file already exists", filepath.Base(inputPath))
		return
	}

	log.Info("Translating %s", filepath.Base(inputPath))
	if err := r.registry.Translate(ctx, inputPath, outputPath, r.svc); err != nil {
		log.Error("Failed to translate %s: %v", filepath.Base(inputPath), err)
		return
	}
	log.Info("Successfully translated %s -> %s", filepath.Base(inputPath), outputPath)
}

// targetPath translates every path segment between the source root and
// the file (directory names and the filename) and joins the result under
// the target root.
func (r *Runner) targetPath(ctx context.Context, inputPath string) (string, error) {
	parts, err := file.RelParts(r.opts.SourceDir, inputPath)
	if err != nil {
		return "", err
	}
	translated := make([]string, len(parts))
	for i, part := range parts {
		translated[i] = r.svc.Translate(ctx, part)
	}
	return filepath.Join(append([]string{r.opts.TargetDir}, translated...)...), nil
}

func (r *Runner) findCandidates() ([]string, error) {
	files, err := file.ListFiles(r.opts.SourceDir, r.opts.Recursive)
	if err != nil {
		return nil, err
	}

	var candidates []string
	for _, path := range files {
		if slices.Contains(r.extensions, file.Ext(path)) {
			candidates = append(candidates, path)
		}
	}
	return candidates, nil
}

// normalizeExtensions lowercases the allow-list and ensures leading dots.
func normalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}
