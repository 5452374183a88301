package translate

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nuttapol-k/doctran/internal/cache"
	"github.com/nuttapol-k/doctran/pkg/log"
)

// DefaultDelay is the pause applied after each successful provider call to
// stay under the provider's rate limits.
const DefaultDelay = 500 * time.Millisecond

// Service resolves source text to target text through cache, script gate
// and provider, in that order. Provider failures never propagate: the
// original text is returned and the failure is logged, so one bad string
// cannot abort a batch.
type Service struct {
	provider Provider
	store    *cache.Store
	gate     ScriptGate
	delay    time.Duration

	group singleflight.Group
}

// NewService wires a translation service. A delay below zero falls back to
// DefaultDelay; zero disables the inter-call pause.
func NewService(provider Provider, store *cache.Store, gate ScriptGate, delay time.Duration) *Service {
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Service{
		provider: provider,
		store:    store,
		gate:     gate,
		delay:    delay,
	}
}

// Translate resolves a single string. Whitespace-only input and text that
// fails the script gate are returned unchanged without a provider call;
// cached text is served from the store.
func (s *Service) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if cached, ok := s.store.Get(text); ok {
		return cached
	}

	if !s.gate.ShouldTranslate(text) {
		return text
	}

	// At most one provider call may be in flight per distinct string.
	result, err, _ := s.group.Do(text, func() (interface{}, error) {
		if cached, ok := s.store.Get(text); ok {
			return cached, nil
		}

		translated, err := s.provider.Translate(ctx, text)
		if err != nil {
			return nil, err
		}

		if err := s.store.Put(text, translated); err != nil {
			log.Warn("Failed to persist translation of %q: %v", truncate(text, 50), err)
		}
		s.pause(ctx)
		return translated, nil
	})
	if err != nil {
		log.Error("Failed to translate text %q: %v", truncate(text, 50), err)
		return text
	}

	return result.(string)
}

// Resolve translates a Value, passing non-text values through untouched.
func (s *Service) Resolve(ctx context.Context, v Value) Value {
	if !v.IsText() {
		return v
	}
	return TextValue(s.Translate(ctx, v.Text()))
}

// Cache exposes the underlying store, mainly so the orchestrator can
// flush it at end of run.
func (s *Service) Cache() *cache.Store {
	return s.store
}

func (s *Service) pause(ctx context.Context) {
	if s.delay <= 0 {
		return
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
