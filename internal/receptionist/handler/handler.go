package handler

import (
	"context"
	"fmt"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/receptionist/processor"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/session"
)

// EventType is the vendor-neutral call lifecycle event.
type EventType string

const (
	EventCallStart      EventType = "call-start"
	EventRecordingReady EventType = "recording-ready"
	EventCallEnd        EventType = "call-end"
	EventUnknown        EventType = "unknown"
)

// Event is one webhook delivery, already translated out of the vendor dialect.
type Event struct {
	Type         EventType
	CallID       string
	Caller       string
	RecordingURL string
	// RecordingID identifies the recording for idempotent redelivery.
	RecordingID string
}

// Outcome is what the vendor dialect renders back to the telephony provider.
// ReplyText is always set so a response can fall back to provider-side
// speech when no audio URL is available.
type Outcome struct {
	ReplyText     string
	ReplyAudioURL string
	Step          session.Step
	RecordNext    bool
	Hangup        bool
}

// CallTurnProcessor is the orchestrator surface the adapter needs.
type CallTurnProcessor interface {
	ProcessCall(ctx context.Context, recordingRef, callerID string) (processor.TurnResult, error)
	Greeting(ctx context.Context, callID, greetingText string) (string, error)
}

// Handler maps call lifecycle events onto orchestrator invocations and owns
// the per-call session state machine.
type Handler struct {
	processor    CallTurnProcessor
	sessions     session.Store
	locks        *session.KeyedLock
	hotelName    string
	greetingText string
	logger       *observability.Logger
}

func New(proc CallTurnProcessor, sessions session.Store, hotelName, greetingText string, logger *observability.Logger) *Handler {
	return &Handler{
		processor:    proc,
		sessions:     sessions,
		locks:        session.NewKeyedLock(),
		hotelName:    hotelName,
		greetingText: greetingText,
		logger:       logger,
	}
}

const apologyText = "I am sorry, we are having trouble processing your request. Please try again."

func (h *Handler) goodbyeText() string {
	return fmt.Sprintf("Thank you for calling %s. Goodbye!", h.hotelName)
}

// HandleEvent runs the session state machine for one delivered event. The
// per-call lock is held for the whole turn, so two events for the same call
// id are processed one at a time; distinct calls proceed concurrently.
func (h *Handler) HandleEvent(ctx context.Context, ev Event) Outcome {
	unlock := h.locks.Lock(ev.CallID)
	defer unlock()

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_id", Value: ev.CallID},
		observability.Field{Key: "event", Value: string(ev.Type)},
	)

	sess, found, err := h.sessions.Get(ctx, ev.CallID)
	if err != nil {
		h.logger.Error(ctx, "failed to load call session", err)
	}
	if !found {
		sess = session.Session{Step: session.StepGreeting}
	}

	switch ev.Type {
	case EventCallStart:
		return h.handleCallStart(ctx, ev)
	case EventRecordingReady:
		return h.handleRecordingReady(ctx, ev, sess)
	case EventCallEnd:
		return h.handleCallEnd(ctx, ev)
	default:
		h.logger.Warn(ctx, "unrecognized call event")
		return Outcome{
			ReplyText: "Sorry, I could not handle that. Please stay on the line.",
			Step:      sess.Step,
		}
	}
}

func (h *Handler) handleCallStart(ctx context.Context, ev Event) Outcome {
	greetingURL, err := h.processor.Greeting(ctx, ev.CallID, h.greetingText)
	if err != nil {
		// Greeting audio is nice to have; provider-side speech covers it.
		h.logger.Error(ctx, "failed to prepare greeting audio", err)
	}

	sess := session.Session{Step: session.StepAwaitingSpeech}
	if err := h.sessions.Put(ctx, ev.CallID, sess); err != nil {
		h.logger.Error(ctx, "failed to store call session", err)
	}

	return Outcome{
		ReplyText:     h.greetingText,
		ReplyAudioURL: greetingURL,
		Step:          session.StepAwaitingSpeech,
		RecordNext:    true,
	}
}

func (h *Handler) handleRecordingReady(ctx context.Context, ev Event, sess session.Session) Outcome {
	// Redelivered event: reproduce the prior output without reprocessing the
	// recording, so no booking or order is committed twice.
	if ev.RecordingID != "" && sess.LastEventID == ev.RecordingID && sess.LastReplyText != "" {
		h.logger.Info(ctx, "recording event redelivered, replaying cached reply")
		return Outcome{
			ReplyText:     sess.LastReplyText,
			ReplyAudioURL: sess.LastReplyAudioURL,
			Step:          session.StepAwaitingSpeech,
			RecordNext:    true,
		}
	}

	// Claim the recording id before any domain write happens.
	sess.Step = session.StepProcessing
	sess.LastEventID = ev.RecordingID
	if err := h.sessions.Put(ctx, ev.CallID, sess); err != nil {
		h.logger.Error(ctx, "failed to store call session", err)
	}

	outcome := Outcome{Step: session.StepAwaitingSpeech, RecordNext: true}
	result, err := h.processor.ProcessCall(ctx, ev.RecordingURL, ev.Caller)
	if err != nil {
		h.logger.Error(ctx, "call turn failed, rendering apology", err)
		outcome.ReplyText = apologyText
	} else {
		outcome.ReplyText = result.ReplyText
		outcome.ReplyAudioURL = result.ReplyAudioURL
	}

	sess.Step = session.StepAwaitingSpeech
	sess.LastReplyText = outcome.ReplyText
	sess.LastReplyAudioURL = outcome.ReplyAudioURL
	if err := h.sessions.Put(ctx, ev.CallID, sess); err != nil {
		h.logger.Error(ctx, "failed to store call session", err)
	}
	return outcome
}

func (h *Handler) handleCallEnd(ctx context.Context, ev Event) Outcome {
	// Delete is idempotent; a redelivered call-end is harmless.
	if err := h.sessions.Delete(ctx, ev.CallID); err != nil {
		h.logger.Error(ctx, "failed to delete call session", err)
	}
	return Outcome{
		ReplyText: h.goodbyeText(),
		Step:      session.StepEnded,
		Hangup:    true,
	}
}
