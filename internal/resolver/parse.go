package resolver

import "encoding/json"

type messageBody struct {
	Message *string `json:"message"`
}

// parseMessage extracts the "message" field of a JSON object body.
// A missing message yields the empty string.
func parseMessage(body string) (string, error) {
	var parsed *messageBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return "", err
	}
	if parsed == nil {
		return "", ErrBodyNotObject
	}
	if parsed.Message == nil {
		return "", nil
	}
	return *parsed.Message, nil
}
