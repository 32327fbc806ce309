package ai

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-audio/wav"
)

const targetSampleRate = 16000

// DecodeWAVToPCM16k decodes WAV bytes into mono float32 samples at
// 16 kHz, the input format whisper expects. Stereo is downmixed and
// other sample rates are linearly resampled.
func DecodeWAVToPCM16k(data []byte) ([]float32, error) {
	if len(data) == 0 {
		return nil, errors.New("empty audio data")
	}
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, errors.New("invalid wav data")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, errors.New("wav contains no samples")
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float32(int(1) << (bitDepth - 1))

	mono := make([]float32, 0, len(buf.Data)/channels)
	for i := 0; i+channels <= len(buf.Data); i += channels {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += float32(buf.Data[i+c]) / scale
		}
		mono = append(mono, sum/float32(channels))
	}

	rate := buf.Format.SampleRate
	if rate == targetSampleRate || rate <= 0 {
		return mono, nil
	}
	return resampleLinear(mono, rate, targetSampleRate), nil
}

func resampleLinear(in []float32, from, to int) []float32 {
	if len(in) == 0 || from == to {
		return in
	}
	ratio := float64(from) / float64(to)
	outLen := int(float64(len(in)) / ratio)
	if outLen < 1 {
		outLen = 1
	}
	out := make([]float32, outLen)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = in[idx]*(1-frac) + in[idx+1]*frac
	}
	return out
}
