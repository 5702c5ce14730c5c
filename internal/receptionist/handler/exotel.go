package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/session"
)

// Exotel dialect. Exotel posts form-encoded lifecycle events to a single
// webhook and plays whatever audio URL the response hands back, so the
// response is a JSON envelope rather than markup.

// ExotelResponse is the JSON envelope Exotel's applet flow consumes.
type ExotelResponse struct {
	ReplyText     string       `json:"reply_text"`
	ReplyAudioURL string       `json:"reply_audio_url,omitempty"`
	SessionStep   session.Step `json:"session_step"`
	RecordNext    bool         `json:"record_next"`
}

// HandleExotelWebhook receives all Exotel call lifecycle events.
func (h *Handler) HandleExotelWebhook(c *gin.Context) {
	callSid := c.PostForm("CallSid")
	caller := c.PostForm("From")
	status := c.PostForm("Status")
	recordingURL := c.PostForm("RecordingUrl")

	ev := Event{CallID: callSid, Caller: caller}
	switch {
	case status == "ringing":
		ev.Type = EventCallStart
	case recordingURL != "":
		ev.Type = EventRecordingReady
		ev.RecordingURL = recordingURL
		ev.RecordingID = recordingURL
	case status == "completed":
		ev.Type = EventCallEnd
	default:
		ev.Type = EventUnknown
	}

	outcome := h.HandleEvent(c.Request.Context(), ev)
	c.JSON(http.StatusOK, ExotelResponse{
		ReplyText:     outcome.ReplyText,
		ReplyAudioURL: outcome.ReplyAudioURL,
		SessionStep:   outcome.Step,
		RecordNext:    outcome.RecordNext,
	})
}
