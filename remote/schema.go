package remote

import (
	"encoding/json"
	"strings"
)

// OperationResponse is the body the backend returns for write operations.
// Error responses raised by the backend framework carry only Detail.
type OperationResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Msg     string          `json:"msg,omitempty"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

// Text returns the first human readable message in the body:
// message, then msg, then detail. Empty if none is present.
func (r *OperationResponse) Text() string {
	if r == nil {
		return ""
	}
	if r.Message != "" {
		return r.Message
	}
	if r.Msg != "" {
		return r.Msg
	}
	return detailText(r.Detail)
}

// detailText flattens detail, which is either a string or a list of
// validation errors ({"msg": "..."}).
func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		var msgs []string
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
