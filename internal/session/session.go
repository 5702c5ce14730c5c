package session

import (
	"context"
	"time"
)

// Step is the lifecycle position of one in-progress call.
type Step string

const (
	StepGreeting       Step = "GREETING"
	StepAwaitingSpeech Step = "AWAITING_SPEECH"
	StepProcessing     Step = "PROCESSING"
	StepEnded          Step = "ENDED"
)

// Session is the per-call state that must survive across independent webhook
// requests. It lives only in the session store; a process restart loses it,
// which the adapter treats as a fresh call.
type Session struct {
	Step Step `json:"step"`

	// LastEventID is the provider's identifier for the most recently
	// processed recording. A redelivered event with the same id replays
	// LastReplyText/LastReplyAudioURL instead of reprocessing the audio.
	LastEventID       string    `json:"last_event_id,omitempty"`
	LastReplyText     string    `json:"last_reply_text,omitempty"`
	LastReplyAudioURL string    `json:"last_reply_audio_url,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Store persists call sessions keyed by the provider call identifier.
// Implementations evict entries after a TTL; Delete is idempotent.
type Store interface {
	Get(ctx context.Context, callID string) (Session, bool, error)
	Put(ctx context.Context, callID string, sess Session) error
	Delete(ctx context.Context, callID string) error
}
