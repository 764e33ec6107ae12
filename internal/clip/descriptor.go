package clip

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Descriptor describes one source clip submitted for processing. Incoming
// payloads are loosely structured; Decode captures the known fields and keeps
// the raw document so URL resolution can fall back to scanning top-level
// string fields in document order.
type Descriptor struct {
	URL         string  `json:"url"`
	Output      *Output `json:"output"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TaskID      string  `json:"task_id"`
	Model       string  `json:"model"`

	raw json.RawMessage
}

// Output is the nested result block some providers wrap their media URL in.
type Output struct {
	URL   string `json:"url"`
	Works []Work `json:"works"`
}

// Work is one generated artifact inside an output block.
type Work struct {
	Video *WorkVideo `json:"video"`
}

// WorkVideo holds the downloadable resources of a generated work, with an
// optional watermark-free variant.
type WorkVideo struct {
	Resource                 string `json:"resource"`
	ResourceWithoutWatermark string `json:"resource_without_watermark"`
}

// Decode parses a single descriptor document. A bare JSON string is accepted
// and treated as free-text metadata with no resolvable URL.
func Decode(data []byte) (Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return Descriptor{}, fmt.Errorf("decode descriptor: %w", err)
		}
		return Descriptor{Description: text}, nil
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("decode descriptor: %w", err)
	}
	d.raw = append(json.RawMessage(nil), data...)
	return d, nil
}

// DecodeList parses a JSON array of descriptor documents.
func DecodeList(data []byte) ([]Descriptor, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode descriptor list: %w", err)
	}
	out := make([]Descriptor, 0, len(items))
	for i, item := range items {
		d, err := Decode(item)
		if err != nil {
			return nil, fmt.Errorf("descriptor %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// ResolveURL applies the descriptor URL precedence and reports whether any
// variant matched:
//  1. top-level url field
//  2. output.url
//  3. output.works[0].video resource, preferring the watermark-free variant
//  4. first top-level string field (document order) holding an http(s) .mp4 URL
func (d Descriptor) ResolveURL() (string, bool) {
	if url := strings.TrimSpace(d.URL); url != "" {
		return url, true
	}
	if d.Output != nil {
		if url := strings.TrimSpace(d.Output.URL); url != "" {
			return url, true
		}
		if len(d.Output.Works) > 0 {
			if video := d.Output.Works[0].Video; video != nil {
				if url := strings.TrimSpace(video.ResourceWithoutWatermark); url != "" {
					return url, true
				}
				if url := strings.TrimSpace(video.Resource); url != "" {
					return url, true
				}
			}
		}
	}
	for _, value := range d.topLevelStrings() {
		if looksLikeMediaURL(value) {
			return value, true
		}
	}
	return "", false
}

// ProvenanceHeaders returns the per-descriptor request headers forwarded
// during acquisition.
func (d Descriptor) ProvenanceHeaders() map[string]string {
	headers := map[string]string{}
	if id := strings.TrimSpace(d.TaskID); id != "" {
		headers["X-Video-Task-ID"] = id
	}
	if model := strings.TrimSpace(d.Model); model != "" {
		headers["X-Video-Model"] = model
	}
	return headers
}

// CaptionText builds the metadata text corpus used by the text-fallback
// caption tier: title first, then description, separated by a period.
func (d Descriptor) CaptionText() string {
	title := strings.TrimSpace(d.Title)
	description := strings.TrimSpace(d.Description)
	switch {
	case title != "" && description != "":
		return title + ". " + description
	case description != "":
		return description
	default:
		return title
	}
}

// topLevelStrings walks the raw document with a token decoder so the fallback
// URL scan sees fields in document order, which map decoding would not
// preserve.
func (d Descriptor) topLevelStrings() []string {
	if len(d.raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(d.raw))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	var values []string
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return values
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return values
		}
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			values = append(values, s)
		}
	}
	return values
}

func looksLikeMediaURL(value string) bool {
	value = strings.TrimSpace(value)
	return (strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")) &&
		strings.Contains(value, ".mp4")
}
