package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

func decodeDataURL(location string) ([]byte, error) {
	comma := strings.IndexByte(location, ',')
	if comma < 0 || !strings.Contains(location[:comma], ";base64") {
		return nil, errors.New("unsupported data url")
	}
	return base64.StdEncoding.DecodeString(location[comma+1:])
}

// truncateMessage caps s at max bytes without splitting a UTF-8 sequence.
func truncateMessage(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
