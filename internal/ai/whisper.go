package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/saktilink/edge-backend/internal/logger"
)

// Confidence reported for on-device transcriptions; whisper.cpp does
// not expose a per-utterance score.
const whisperConfidence = 0.95

// whisperTranscriber is the on-device speech-to-text capability,
// backed by a GGML whisper model.
type whisperTranscriber struct {
	log   *logger.Logger
	model whisper.Model
}

func NewWhisperTranscriber(baseLog *logger.Logger, modelPath string) (Transcriber, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, errors.New("empty whisper model path")
	}
	m, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model: %w", err)
	}
	return &whisperTranscriber{
		log:   baseLog.With("service", "WhisperTranscriber"),
		model: m,
	}, nil
}

func (w *whisperTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (*Transcription, error) {
	samples, err := DecodeWAVToPCM16k(audio)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errors.New("no audio samples provided")
	}

	wctx, err := w.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("new whisper context: %w", err)
	}

	lang := language
	if lang == "" {
		lang = "auto"
	}
	if err := wctx.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set language: %w", err)
	}
	wctx.SetThreads(uint(runtime.NumCPU()))

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("whisper process: %w", err)
	}

	var parts []string
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		s, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("next segment: %w", err)
		}
		parts = append(parts, strings.TrimSpace(s.Text))
	}

	return &Transcription{
		Transcript: strings.Join(parts, " "),
		Confidence: whisperConfidence,
		Provider:   "whisper_local",
	}, nil
}

func (w *whisperTranscriber) Close() error {
	if w.model == nil {
		return nil
	}
	return w.model.Close()
}
