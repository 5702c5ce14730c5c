package processor

import (
	"context"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/intent"
)

// Transcriber converts a local audio file to text. Empty string means no
// speech was detected or the provider failed; neither is an error here.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) string
}

// IntentExtractor turns an utterance into a structured intent. Failures
// degrade to the unknown intent instead of an error.
type IntentExtractor interface {
	Extract(ctx context.Context, utterance string) intent.Result
}

// DialogueManager resolves one turn to reply text. Never fails.
type DialogueManager interface {
	Resolve(ctx context.Context, transcript string, res intent.Result, callerID string) string
}

// Synthesizer converts reply text to an ephemeral audio file.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// Recordings acquires remote recordings and releases ephemeral files.
type Recordings interface {
	Download(ctx context.Context, recordingURL string) (string, error)
	Cleanup(ctx context.Context, path string)
}

// DurableStorage persists reply audio under a caller-visible name and returns
// a public URL. Uploading the same name twice overwrites.
type DurableStorage interface {
	Upload(ctx context.Context, localPath, name string) (string, error)
}

// ConversationLogger appends the audit row for a completed turn.
type ConversationLogger interface {
	LogConversation(ctx context.Context, userPhone, userInput, agentResponse string) error
}
