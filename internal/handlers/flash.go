package handlers

import (
	"net/http"
	"strings"
)

type Flash struct {
	Kind string // "ok" or "error"
	Text string
}

var okText = map[string]string{
	"updated": "Reservation updated successfully!",
	"deleted": "Reservation deleted.",
	"booked":  "Reservation confirmed.",
}

var errText = map[string]string{
	"past_slot":  "Cannot edit to a past time slot.",
	"slot_taken": "That time slot is already reserved.",
	"not_found":  "Reservation not found.",
	"invalid":    "Invalid reservation details.",
	"failed":     "Something went wrong. Please try again.",
}

// MakeFlash reads ?ok= / ?error= keys and falls back to handler-provided
// messages. Unknown keys are dropped rather than echoed.
func MakeFlash(r *http.Request, errStr, msgStr string) *Flash {
	q := r.URL.Query()

	if key := strings.ToLower(strings.TrimSpace(q.Get("error"))); key != "" {
		if t, ok := errText[key]; ok {
			return &Flash{Kind: "error", Text: t}
		}
	}
	if key := strings.ToLower(strings.TrimSpace(q.Get("ok"))); key != "" {
		if t, ok := okText[key]; ok {
			return &Flash{Kind: "ok", Text: t}
		}
	}

	if errStr != "" {
		return &Flash{Kind: "error", Text: errStr}
	}
	if msgStr != "" {
		return &Flash{Kind: "ok", Text: msgStr}
	}
	return nil
}
