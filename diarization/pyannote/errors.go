package pyannote

import "encoding/json"

// serverMessage extracts the "error" or "detail" field of a JSON error body,
// falling back to the raw snippet.
func serverMessage(body []byte, fallback string) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return fallback
}
