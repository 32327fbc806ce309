package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/saktilink/edge-backend/internal/logger"
)

// speechTranscriber is the remote speech-to-text fallback used when no
// local whisper model is available. Voice notes are short (≤60s), so
// the synchronous Recognize call is enough.
type speechTranscriber struct {
	log        *logger.Logger
	client     *speech.Client
	maxRetries int
}

func NewSpeechTranscriber(ctx context.Context, baseLog *logger.Logger) (Transcriber, error) {
	slog := baseLog.With("service", "SpeechTranscriber")

	creds := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var (
		c   *speech.Client
		err error
	)
	if creds != "" {
		c, err = speech.NewClient(ctx, option.WithCredentialsFile(creds))
	} else {
		c, err = speech.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	return &speechTranscriber{
		log:        slog,
		client:     c,
		maxRetries: 4,
	}, nil
}

func (s *speechTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (*Transcription, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio data")
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            targetSampleRate,
			LanguageCode:               recognitionLanguageCode(language),
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.retry(ctx, func() (*speechpb.RecognizeResponse, error) {
		return s.client.Recognize(ctx, req)
	})
	if err != nil {
		return nil, fmt.Errorf("speech recognize: %w", err)
	}

	var (
		full       strings.Builder
		confidence float64
		scored     int
	)
	for _, r := range resp.GetResults() {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		alt := r.Alternatives[0]
		if strings.TrimSpace(alt.Transcript) == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(strings.TrimSpace(alt.Transcript))
		if alt.Confidence > 0 {
			confidence += float64(alt.Confidence)
			scored++
		}
	}
	if scored > 0 {
		confidence /= float64(scored)
	}

	return &Transcription{
		Transcript: full.String(),
		Confidence: confidence,
		Provider:   "gcp_speech",
	}, nil
}

func (s *speechTranscriber) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *speechTranscriber) retry(ctx context.Context, fn func() (*speechpb.RecognizeResponse, error)) (*speechpb.RecognizeResponse, error) {
	backoff := 750 * time.Millisecond
	var last error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		resp, err := fn()
		if err == nil {
			return resp, nil
		}
		last = err

		code := status.Code(err)
		if code != codes.Unavailable && code != codes.ResourceExhausted && code != codes.DeadlineExceeded {
			return nil, err
		}
		if attempt == s.maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
		if backoff > 10*time.Second {
			backoff = 10 * time.Second
		}
	}
	return nil, last
}

// recognitionLanguageCode maps a bare language tag to the BCP-47 code
// the recognition API expects. All supported languages are Indian
// locales.
func recognitionLanguageCode(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	switch lang {
	case "":
		return "hi-IN"
	case "hi", "bn", "ta", "te", "mr", "gu", "kn", "ml", "pa", "or":
		return lang + "-IN"
	default:
		if strings.Contains(lang, "-") {
			return language
		}
		return lang + "-IN"
	}
}
