package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twilio/twilio-go/twiml"
)

// Twilio dialect. Call flow: the voice webhook answers the call, every
// <Record> posts its recording to the recording webhook, and the status
// callback reports the hangup.

// HandleTwilioVoice answers an inbound call with the greeting and the first
// recording request.
func (h *Handler) HandleTwilioVoice(c *gin.Context) {
	ev := Event{
		Type:   EventCallStart,
		CallID: c.PostForm("CallSid"),
		Caller: c.PostForm("From"),
	}
	outcome := h.HandleEvent(c.Request.Context(), ev)
	h.renderTwiML(c, outcome)
}

// HandleTwilioRecording receives the finished recording for one turn.
func (h *Handler) HandleTwilioRecording(c *gin.Context) {
	ev := Event{
		Type:         EventRecordingReady,
		CallID:       c.PostForm("CallSid"),
		Caller:       c.PostForm("From"),
		RecordingURL: c.PostForm("RecordingUrl"),
		RecordingID:  c.PostForm("RecordingSid"),
	}
	if ev.RecordingURL == "" {
		// Caller hung up mid-recording or Twilio sent an event we do not
		// handle; never leave dead air either way.
		if c.PostForm("CallStatus") == "completed" {
			ev.Type = EventCallEnd
		} else {
			ev.Type = EventUnknown
		}
	}
	outcome := h.HandleEvent(c.Request.Context(), ev)
	h.renderTwiML(c, outcome)
}

// HandleTwilioStatus receives call status callbacks and tears the session
// down when the call completes.
func (h *Handler) HandleTwilioStatus(c *gin.Context) {
	status := c.PostForm("CallStatus")
	if status != "completed" && status != "failed" && status != "no-answer" && status != "canceled" {
		c.String(http.StatusOK, "")
		return
	}
	ev := Event{
		Type:   EventCallEnd,
		CallID: c.PostForm("CallSid"),
		Caller: c.PostForm("From"),
	}
	h.HandleEvent(c.Request.Context(), ev)
	c.String(http.StatusOK, "")
}

func (h *Handler) renderTwiML(c *gin.Context, outcome Outcome) {
	var verbs []twiml.Element

	if outcome.ReplyAudioURL != "" {
		verbs = append(verbs, twiml.VoicePlay{Url: outcome.ReplyAudioURL})
	} else {
		verbs = append(verbs, twiml.VoiceSay{Message: outcome.ReplyText})
	}

	if outcome.RecordNext {
		verbs = append(verbs, twiml.VoiceRecord{
			Action:    "/webhook/twilio/recording",
			Method:    "POST",
			MaxLength: "30",
			Timeout:   "5",
			PlayBeep:  "true",
		})
	}
	if outcome.Hangup {
		verbs = append(verbs, twiml.VoiceHangup{})
	}

	result, err := twiml.Voice(verbs)
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to render TwiML", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, result)
}
