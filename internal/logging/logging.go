package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Fields struct {
	Service    string `json:"service"`
	RequestID  string `json:"request_id,omitempty"`
	UserID     int64  `json:"user_id,omitempty"`
	OrderID    int64  `json:"order_id,omitempty"`
	Method     string `json:"method,omitempty"`
	Path       string `json:"path,omitempty"`
	Status     int    `json:"status,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Log emits one JSON line on stdout via the standard logger.
func Log(fields Fields) {
	payload := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"service":   fields.Service,
	}
	if fields.RequestID != "" {
		payload["request_id"] = fields.RequestID
	}
	if fields.UserID != 0 {
		payload["user_id"] = fields.UserID
	}
	if fields.OrderID != 0 {
		payload["order_id"] = fields.OrderID
	}
	if fields.Method != "" {
		payload["method"] = fields.Method
		payload["path"] = fields.Path
		payload["status"] = fields.Status
		payload["duration_ms"] = fields.DurationMS
	}
	if fields.Message != "" {
		payload["message"] = fields.Message
	}
	if fields.Error != "" {
		payload["error"] = fields.Error
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}
