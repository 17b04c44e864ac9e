package orchestrator

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"
)

const maxDetailLength = 200

var detailKeys = []string{"message", "error", "errorMessage", "details"}

// decodeObject parses body as a JSON object. Numbers stay json.Number so
// identifiers keep their exact text.
func decodeObject(body []byte) (map[string]any, bool) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var data map[string]any
	if err := decoder.Decode(&data); err != nil || data == nil {
		return nil, false
	}
	return data, true
}

// ExtractWorkflowID finds the workflow identifier in a CLM response, trying
// Id, id and workflowId before falling back to the last path segment of Href.
func ExtractWorkflowID(data map[string]any) string {
	for _, key := range []string{"Id", "id", "workflowId"} {
		if id := scalar(data[key]); id != "" {
			return id
		}
	}
	href, _ := data["Href"].(string)
	href = strings.TrimRight(strings.TrimSpace(href), "/")
	if href == "" {
		return ""
	}
	return href[strings.LastIndex(href, "/")+1:]
}

func scalar(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// upstreamDetail picks the most useful text out of an error body.
func upstreamDetail(status int, body []byte) string {
	if data, ok := decodeObject(body); ok {
		for _, key := range detailKeys {
			if text, ok := data[key].(string); ok && strings.TrimSpace(text) != "" {
				return text
			}
		}
	}
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return http.StatusText(status)
	}
	if utf8.RuneCountInString(raw) > maxDetailLength {
		return string([]rune(raw)[:maxDetailLength]) + "..."
	}
	return raw
}
