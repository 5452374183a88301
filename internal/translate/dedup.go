package translate

import (
	"context"
	"strings"
)

// Batch collects text occurrences and resolves every distinct value
// exactly once, however many times it occurs. Formats pool occurrences at
// whatever scope keeps provider traffic lowest (a whole workbook, one
// table, a single header row) and rewrite through the resulting
// Resolution.
type Batch struct {
	svc   *Service
	seen  map[string]struct{}
	order []string
}

// NewBatch creates an empty batch backed by the service.
func NewBatch(svc *Service) *Batch {
	return &Batch{
		svc:  svc,
		seen: make(map[string]struct{}),
	}
}

// Add collects one occurrence. Non-text and whitespace-only values are
// ignored; they are passed through unchanged at rewrite time.
func (b *Batch) Add(v Value) {
	if !v.IsText() || strings.TrimSpace(v.Text()) == "" {
		return
	}
	if _, ok := b.seen[v.Text()]; ok {
		return
	}
	b.seen[v.Text()] = struct{}{}
	b.order = append(b.order, v.Text())
}

// AddText collects a raw string occurrence.
func (b *Batch) AddText(s string) {
	b.Add(TextValue(s))
}

// Size returns the number of distinct collected values.
func (b *Batch) Size() int {
	return len(b.order)
}

// Resolve translates each distinct value once, in first-seen order, and
// returns the text-to-text mapping for rewriting occurrences.
func (b *Batch) Resolve(ctx context.Context) Resolution {
	res := make(Resolution, len(b.order))
	for _, text := range b.order {
		res[text] = b.svc.Translate(ctx, text)
	}
	return res
}

// Resolution maps each distinct source string of a batch to its resolved
// translation.
type Resolution map[string]string

// Lookup returns the resolved translation for text.
func (r Resolution) Lookup(text string) (string, bool) {
	translation, ok := r[text]
	return translation, ok
}

// Apply rewrites one occurrence. Values that were never collected (non
// text, empty, or from another batch) come back unchanged.
func (r Resolution) Apply(v Value) Value {
	if !v.IsText() {
		return v
	}
	if translation, ok := r[v.Text()]; ok {
		return TextValue(translation)
	}
	return v
}

// ApplyText rewrites a raw string occurrence.
func (r Resolution) ApplyText(s string) string {
	if translation, ok := r[s]; ok {
		return translation
	}
	return s
}
