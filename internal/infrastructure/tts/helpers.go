package tts

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
)

func resolveAuth(envVar, fallback string) string {
	if envVar != "" {
		if key := os.Getenv(envVar); key != "" {
			return key
		}
	}
	if fallback != "" {
		return os.Getenv(fallback)
	}
	return ""
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func floatParam(params map[string]string, key string) (float64, bool) {
	raw, ok := params[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func intParam(params map[string]string, key string) (int64, bool) {
	raw, ok := params[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// readAudioResponse drains a successful response body or converts an error
// status into a single backend error.
func readAudioResponse(name string, resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(detail))
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("%s: %s", name, msg)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read audio: %w", name, err)
	}
	return audio, nil
}

func contentTypeFor(format string) string {
	switch format {
	case "wav":
		return "audio/wav"
	case "opus":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	default:
		return "audio/mpeg"
	}
}
