package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedExtraction means the model output survived none of the
// recovery tiers below.
var ErrMalformedExtraction = errors.New("could not extract valid JSON from model output")

var fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// decodeRecord parses raw model output into a Record. Models wrap
// JSON in prose or markdown fences often enough that this is a
// contract, not a workaround: try the raw text, then a ```json fence,
// then the widest {...} span.
func decodeRecord(raw string) (Record, error) {
	var record Record

	trimmed := strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(trimmed), &record); err == nil {
		return record, nil
	}

	if match := fencedJSONRe.FindStringSubmatch(trimmed); match != nil {
		if err := json.Unmarshal([]byte(match[1]), &record); err == nil {
			return record, nil
		}
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &record); err == nil {
			return record, nil
		}
	}

	return Record{}, fmt.Errorf("%w: %q", ErrMalformedExtraction, truncate(raw, 200))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return s[:limit] + "..."
}
