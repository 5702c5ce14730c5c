package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/receptionist/processor"
	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/session"
)

type fakeTurnProcessor struct {
	result       processor.TurnResult
	processErr   error
	processCalls int
	greetingURL  string
	greetingErr  error
}

func (f *fakeTurnProcessor) ProcessCall(ctx context.Context, recordingRef, callerID string) (processor.TurnResult, error) {
	f.processCalls++
	if f.processErr != nil {
		return processor.TurnResult{}, f.processErr
	}
	return f.result, nil
}

func (f *fakeTurnProcessor) Greeting(ctx context.Context, callID, greetingText string) (string, error) {
	return f.greetingURL, f.greetingErr
}

func newTestHandler(t *testing.T, proc *fakeTurnProcessor) (*Handler, session.Store) {
	t.Helper()
	sessions := session.NewMemoryStore(30 * time.Minute)
	t.Cleanup(sessions.Close)
	h := New(proc, sessions, "Grand Hotel", "Welcome to Grand Hotel. How can I assist you today?", observability.NewLogger())
	return h, sessions
}

func TestHandleEventCallStart(t *testing.T) {
	t.Parallel()

	proc := &fakeTurnProcessor{greetingURL: "https://example.com/audio/greeting_CA1.wav"}
	h, sessions := newTestHandler(t, proc)

	out := h.HandleEvent(context.Background(), Event{Type: EventCallStart, CallID: "CA1", Caller: "+911234567890"})

	assert.Equal(t, "Welcome to Grand Hotel. How can I assist you today?", out.ReplyText)
	assert.Equal(t, "https://example.com/audio/greeting_CA1.wav", out.ReplyAudioURL)
	assert.Equal(t, session.StepAwaitingSpeech, out.Step)
	assert.True(t, out.RecordNext)
	assert.False(t, out.Hangup)

	sess, found, err := sessions.Get(context.Background(), "CA1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, session.StepAwaitingSpeech, sess.Step)
}

func TestHandleEventCallStartGreetingAudioFailure(t *testing.T) {
	t.Parallel()

	proc := &fakeTurnProcessor{greetingErr: errors.New("tts down")}
	h, _ := newTestHandler(t, proc)

	out := h.HandleEvent(context.Background(), Event{Type: EventCallStart, CallID: "CA1"})

	// Provider-side speech covers a missing greeting file.
	assert.Equal(t, "Welcome to Grand Hotel. How can I assist you today?", out.ReplyText)
	assert.Empty(t, out.ReplyAudioURL)
	assert.True(t, out.RecordNext)
}

func TestHandleEventRecordingReady(t *testing.T) {
	t.Parallel()

	proc := &fakeTurnProcessor{result: processor.TurnResult{
		Transcript:    "book a room",
		ReplyText:     "We have rooms available.",
		ReplyAudioURL: "https://example.com/audio/reply.wav",
	}}
	h, sessions := newTestHandler(t, proc)

	h.HandleEvent(context.Background(), Event{Type: EventCallStart, CallID: "CA1", Caller: "+911234567890"})
	out := h.HandleEvent(context.Background(), Event{
		Type:         EventRecordingReady,
		CallID:       "CA1",
		Caller:       "+911234567890",
		RecordingURL: "https://recordings.example.com/RE1.wav",
		RecordingID:  "RE1",
	})

	assert.Equal(t, "We have rooms available.", out.ReplyText)
	assert.Equal(t, "https://example.com/audio/reply.wav", out.ReplyAudioURL)
	assert.Equal(t, session.StepAwaitingSpeech, out.Step)
	assert.True(t, out.RecordNext)
	assert.Equal(t, 1, proc.processCalls)

	sess, found, err := sessions.Get(context.Background(), "CA1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "RE1", sess.LastEventID)
	assert.Equal(t, "We have rooms available.", sess.LastReplyText)
}

func TestHandleEventRecordingRedeliveryReplaysCachedReply(t *testing.T) {
	t.Parallel()

	proc := &fakeTurnProcessor{result: processor.TurnResult{
		ReplyText:     "Room 101 booked.",
		ReplyAudioURL: "https://example.com/audio/reply.wav",
	}}
	h, _ := newTestHandler(t, proc)

	ev := Event{
		Type:         EventRecordingReady,
		CallID:       "CA1",
		Caller:       "+911234567890",
		RecordingURL: "https://recordings.example.com/RE1.wav",
		RecordingID:  "RE1",
	}
	first := h.HandleEvent(context.Background(), ev)
	second := h.HandleEvent(context.Background(), ev)

	// The duplicate delivery never reaches the orchestrator, so no booking
	// can be committed twice.
	assert.Equal(t, 1, proc.processCalls)
	assert.Equal(t, first.ReplyText, second.ReplyText)
	assert.Equal(t, first.ReplyAudioURL, second.ReplyAudioURL)
	assert.True(t, second.RecordNext)
}

func TestHandleEventRecordingReadyProcessorFailure(t *testing.T) {
	t.Parallel()

	proc := &fakeTurnProcessor{processErr: errors.New("stt down")}
	h, sessions := newTestHandler(t, proc)

	out := h.HandleEvent(context.Background(), Event{
		Type:         EventRecordingReady,
		CallID:       "CA1",
		Caller:       "+911234567890",
		RecordingURL: "https://recordings.example.com/RE1.wav",
		RecordingID:  "RE1",
	})

	assert.Equal(t, apologyText, out.ReplyText)
	assert.Empty(t, out.ReplyAudioURL)
	assert.Equal(t, session.StepAwaitingSpeech, out.Step)
	assert.True(t, out.RecordNext)

	// The apology is cached too, so a redelivery replays it.
	sess, found, err := sessions.Get(context.Background(), "CA1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, apologyText, sess.LastReplyText)
}

func TestHandleEventCallEnd(t *testing.T) {
	t.Parallel()

	proc := &fakeTurnProcessor{}
	h, sessions := newTestHandler(t, proc)

	h.HandleEvent(context.Background(), Event{Type: EventCallStart, CallID: "CA1"})
	out := h.HandleEvent(context.Background(), Event{Type: EventCallEnd, CallID: "CA1"})

	assert.Equal(t, "Thank you for calling Grand Hotel. Goodbye!", out.ReplyText)
	assert.Equal(t, session.StepEnded, out.Step)
	assert.True(t, out.Hangup)
	assert.False(t, out.RecordNext)

	_, found, err := sessions.Get(context.Background(), "CA1")
	require.NoError(t, err)
	assert.False(t, found)

	// A redelivered call-end is harmless.
	again := h.HandleEvent(context.Background(), Event{Type: EventCallEnd, CallID: "CA1"})
	assert.True(t, again.Hangup)
}

func TestHandleEventUnknown(t *testing.T) {
	t.Parallel()

	proc := &fakeTurnProcessor{}
	h, _ := newTestHandler(t, proc)

	out := h.HandleEvent(context.Background(), Event{Type: EventUnknown, CallID: "CA1"})

	assert.Equal(t, "Sorry, I could not handle that. Please stay on the line.", out.ReplyText)
	assert.False(t, out.RecordNext)
	assert.False(t, out.Hangup)
	assert.Equal(t, 0, proc.processCalls)
}
