package ai

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/saktilink/edge-backend/internal/logger"
	"github.com/saktilink/edge-backend/internal/utils"
)

// ttsSynthesizer calls a remote text-to-speech HTTP API and caches the
// returned audio in redis keyed by text and language, so repeated
// prompts (greetings, menu responses) never hit the network twice.
type ttsSynthesizer struct {
	log      *logger.Logger
	http     *http.Client
	rdb      *goredis.Client
	apiURL   string
	apiKey   string
	cacheTTL time.Duration
}

type ttsRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Format   string `json:"format"`
}

type ttsResponse struct {
	AudioBase64 string `json:"audio_base64"`
	Error       string `json:"error,omitempty"`
}

func NewTTSSynthesizer(baseLog *logger.Logger) (Synthesizer, error) {
	slog := baseLog.With("service", "TTSSynthesizer")

	apiURL := strings.TrimSpace(os.Getenv("TTS_API_URL"))
	if apiURL == "" {
		return nil, errors.New("missing TTS_API_URL")
	}

	s := &ttsSynthesizer{
		log:      slog,
		http:     &http.Client{Timeout: 30 * time.Second},
		apiURL:   apiURL,
		apiKey:   strings.TrimSpace(os.Getenv("TTS_API_KEY")),
		cacheTTL: time.Duration(utils.GetEnvAsInt("REDIS_CACHE_TTL", 86400, slog)) * time.Second,
	}

	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unreachable, synthesis cache disabled", "error", err)
			_ = rdb.Close()
		} else {
			s.rdb = rdb
		}
	}

	return s, nil
}

func (s *ttsSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("empty text")
	}

	key := cacheKey(text, language)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	audio, err := s.callAPI(ctx, text, language)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, key, audio, s.cacheTTL).Err(); err != nil {
			s.log.Warn("Failed to cache synthesized audio", "error", err)
		}
	}
	return audio, nil
}

func (s *ttsSynthesizer) callAPI(ctx context.Context, text, language string) ([]byte, error) {
	body, err := json.Marshal(ttsRequest{Text: text, Language: language, Format: "wav"})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	// JSON envelope with base64 audio; some deployments return raw wav.
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "application/json") {
		var out ttsResponse
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode tts response: %w", err)
		}
		if out.Error != "" {
			return nil, fmt.Errorf("tts api: %s", out.Error)
		}
		audio, err := base64.StdEncoding.DecodeString(out.AudioBase64)
		if err != nil {
			return nil, fmt.Errorf("decode tts audio: %w", err)
		}
		if len(audio) == 0 {
			return nil, errors.New("tts returned no audio")
		}
		return audio, nil
	}
	if len(raw) == 0 {
		return nil, errors.New("tts returned no audio")
	}
	return raw, nil
}

func (s *ttsSynthesizer) Close() error {
	if s.rdb != nil {
		return s.rdb.Close()
	}
	return nil
}

func cacheKey(text, language string) string {
	sum := sha256.Sum256([]byte(language + "|" + text))
	return "tts:" + hex.EncodeToString(sum[:])
}
