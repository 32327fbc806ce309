package ai

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/saktilink/edge-backend/internal/logger"
)

type Capability string

const (
	CapabilityTranscription Capability = "transcription"
	CapabilityGeneration    Capability = "generation"
	CapabilityEmbedding     Capability = "embedding"
	CapabilitySynthesis     Capability = "synthesis"
)

// Transcription is the result shape shared by the local and remote
// speech-to-text paths.
type Transcription struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Provider   string  `json:"provider"`
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (*Transcription, error)
	Close() error
}

type Generator interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
	Close() error
}

type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float64, error)
	Close() error
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
	Close() error
}

// Loaders supplies one constructor per capability. A nil loader means
// the capability is not configured for this deployment.
type Loaders struct {
	Transcription func(ctx context.Context) (Transcriber, error)
	Generation    func(ctx context.Context) (Generator, error)
	Embedding     func(ctx context.Context) (Embedder, error)
	Synthesis     func(ctx context.Context) (Synthesizer, error)
}

// TranscriptionChain returns a loader that tries each candidate in
// order and installs the first transcriber that loads. A local model
// that fails to load falls through to the remote candidate instead of
// leaving the slot empty.
func TranscriptionChain(baseLog *logger.Logger, candidates ...func(ctx context.Context) (Transcriber, error)) func(ctx context.Context) (Transcriber, error) {
	chainLog := baseLog.With("service", "CapabilityRegistry")
	return func(ctx context.Context) (Transcriber, error) {
		var last error
		for _, load := range candidates {
			if load == nil {
				continue
			}
			t, err := load(ctx)
			if err != nil {
				chainLog.Warn("Transcription candidate failed to load, trying next", "error", err)
				last = err
				continue
			}
			return t, nil
		}
		if last == nil {
			last = fmt.Errorf("no transcription candidates configured")
		}
		return nil, last
	}
}

// Registry holds whichever AI capabilities loaded successfully at
// startup. Load attempts are isolated: one failure never blocks the
// others, and a failed slot simply stays empty so callers route to
// their fallback path.
type Registry struct {
	log     *logger.Logger
	loaders Loaders

	mu          sync.RWMutex
	transcriber Transcriber
	generator   Generator
	embedder    Embedder
	synthesizer Synthesizer
}

func NewRegistry(baseLog *logger.Logger, loaders Loaders) *Registry {
	return &Registry{
		log:     baseLog.With("service", "CapabilityRegistry"),
		loaders: loaders,
	}
}

// Initialize attempts all four loads concurrently. Each loader writes
// only its own slot; either the handle is fully installed or the slot
// remains empty. Initialize itself never fails.
func (r *Registry) Initialize(ctx context.Context) {
	r.log.Info("Initializing AI capabilities...")

	g := new(errgroup.Group)
	g.Go(func() error {
		if r.loaders.Transcription == nil {
			r.log.Warn("Capability not configured", "capability", CapabilityTranscription)
			return nil
		}
		t, err := r.loaders.Transcription(ctx)
		if err != nil {
			r.log.Warn("Failed to load capability, fallback path will be used", "capability", CapabilityTranscription, "error", err)
			return nil
		}
		r.mu.Lock()
		r.transcriber = t
		r.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		if r.loaders.Generation == nil {
			r.log.Warn("Capability not configured", "capability", CapabilityGeneration)
			return nil
		}
		gen, err := r.loaders.Generation(ctx)
		if err != nil {
			r.log.Warn("Failed to load capability, fallback path will be used", "capability", CapabilityGeneration, "error", err)
			return nil
		}
		r.mu.Lock()
		r.generator = gen
		r.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		if r.loaders.Embedding == nil {
			r.log.Warn("Capability not configured", "capability", CapabilityEmbedding)
			return nil
		}
		e, err := r.loaders.Embedding(ctx)
		if err != nil {
			r.log.Warn("Failed to load capability, fallback path will be used", "capability", CapabilityEmbedding, "error", err)
			return nil
		}
		r.mu.Lock()
		r.embedder = e
		r.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		if r.loaders.Synthesis == nil {
			r.log.Warn("Capability not configured", "capability", CapabilitySynthesis)
			return nil
		}
		s, err := r.loaders.Synthesis(ctx)
		if err != nil {
			r.log.Warn("Failed to load capability, fallback path will be used", "capability", CapabilitySynthesis, "error", err)
			return nil
		}
		r.mu.Lock()
		r.synthesizer = s
		r.mu.Unlock()
		return nil
	})
	_ = g.Wait()

	r.log.Info("AI capability initialization complete",
		"transcription", r.IsLoaded(CapabilityTranscription),
		"generation", r.IsLoaded(CapabilityGeneration),
		"embedding", r.IsLoaded(CapabilityEmbedding),
		"synthesis", r.IsLoaded(CapabilitySynthesis),
	)
}

func (r *Registry) IsLoaded(c Capability) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	switch c {
	case CapabilityTranscription:
		return r.transcriber != nil
	case CapabilityGeneration:
		return r.generator != nil
	case CapabilityEmbedding:
		return r.embedder != nil
	case CapabilitySynthesis:
		return r.synthesizer != nil
	default:
		return false
	}
}

func (r *Registry) Transcriber() Transcriber {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.transcriber
}

func (r *Registry) Generator() Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generator
}

func (r *Registry) Embedder() Embedder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.embedder
}

func (r *Registry) Synthesizer() Synthesizer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.synthesizer
}

// Cleanup releases every loaded handle and resets all slots.
func (r *Registry) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Info("Releasing AI capabilities...")
	if r.transcriber != nil {
		if err := r.transcriber.Close(); err != nil {
			r.log.Warn("Failed to close transcriber", "error", err)
		}
		r.transcriber = nil
	}
	if r.generator != nil {
		if err := r.generator.Close(); err != nil {
			r.log.Warn("Failed to close generator", "error", err)
		}
		r.generator = nil
	}
	if r.embedder != nil {
		if err := r.embedder.Close(); err != nil {
			r.log.Warn("Failed to close embedder", "error", err)
		}
		r.embedder = nil
	}
	if r.synthesizer != nil {
		if err := r.synthesizer.Close(); err != nil {
			r.log.Warn("Failed to close synthesizer", "error", err)
		}
		r.synthesizer = nil
	}
}
