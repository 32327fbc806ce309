package ai

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/saktilink/edge-backend/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type nopTranscriber struct {
	provider string
}

func (n *nopTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (*Transcription, error) {
	return &Transcription{Transcript: "ok", Provider: n.provider}, nil
}

func (n *nopTranscriber) Close() error { return nil }

func TestTranscriptionChain(t *testing.T) {
	loadErr := errors.New("model load failed")
	local := func(ctx context.Context) (Transcriber, error) {
		return &nopTranscriber{provider: "whisper_local"}, nil
	}
	remote := func(ctx context.Context) (Transcriber, error) {
		return &nopTranscriber{provider: "gcp_speech"}, nil
	}
	broken := func(ctx context.Context) (Transcriber, error) {
		return nil, loadErr
	}

	tests := []struct {
		name         string
		candidates   []func(ctx context.Context) (Transcriber, error)
		wantProvider string
		wantErr      bool
	}{
		{"local_preferred", []func(ctx context.Context) (Transcriber, error){local, remote}, "whisper_local", false},
		{"broken_local_falls_back", []func(ctx context.Context) (Transcriber, error){broken, remote}, "gcp_speech", false},
		{"nil_candidate_skipped", []func(ctx context.Context) (Transcriber, error){nil, remote}, "gcp_speech", false},
		{"all_broken", []func(ctx context.Context) (Transcriber, error){broken, broken}, "", true},
		{"none_configured", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := TranscriptionChain(testLogger(), tt.candidates...)
			got, err := loader(context.Background())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected load error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			nop, ok := got.(*nopTranscriber)
			if !ok {
				t.Fatalf("unexpected transcriber type %T", got)
			}
			if nop.provider != tt.wantProvider {
				t.Errorf("provider = %q, want %q", nop.provider, tt.wantProvider)
			}
		})
	}
}

func TestRegistryInstallsChainedTranscriber(t *testing.T) {
	broken := func(ctx context.Context) (Transcriber, error) {
		return nil, errors.New("corrupt ggml file")
	}
	remote := func(ctx context.Context) (Transcriber, error) {
		return &nopTranscriber{provider: "gcp_speech"}, nil
	}

	r := NewRegistry(testLogger(), Loaders{
		Transcription: TranscriptionChain(testLogger(), broken, remote),
	})
	r.Initialize(context.Background())
	defer r.Cleanup()

	if !r.IsLoaded(CapabilityTranscription) {
		t.Fatal("transcription slot should be filled by the remote candidate")
	}
	tr := r.Transcriber()
	if tr == nil {
		t.Fatal("Transcriber() returned nil")
	}
	result, err := tr.Transcribe(context.Background(), []byte("audio"), "hi")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if result.Provider != "gcp_speech" {
		t.Errorf("provider = %q, want %q", result.Provider, "gcp_speech")
	}
}
