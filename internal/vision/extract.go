package vision

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Extraction failures. Neither is retried here; the caller owns retry policy.
var (
	ErrNoJSONFound   = errors.New("no JSON object found in model output")
	ErrMalformedJSON = errors.New("malformed JSON in model output")
)

// ExtractObject recovers the JSON object embedded in raw model output.
// Generative models routinely wrap structured output in prose or markdown
// fences, so extraction is staged: strip fence lines when the text opens with
// one, then parse the substring bounded by the first '{' and the last '}'.
// When no object can be located it fails loudly rather than guessing.
func ExtractObject(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		var kept []string
		for _, line := range strings.Split(text, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				continue
			}
			kept = append(kept, line)
		}
		text = strings.Join(kept, "\n")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end < start {
		return nil, ErrNoJSONFound
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return obj, nil
}
