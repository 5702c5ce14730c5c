package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

// Turn-fatal errors. Everything else that can go wrong inside a turn is
// absorbed into a degraded reply.
var (
	ErrAcquisition = errors.New("could not acquire input audio")
	ErrSynthesis   = errors.New("could not synthesize reply audio")
	ErrPersist     = errors.New("could not persist reply audio")
)

const clarificationPrompt = "Sorry, I did not catch that. Could you please repeat?"

// TurnResult is what one successfully processed call turn produces.
type TurnResult struct {
	Transcript    string
	ReplyText     string
	ReplyAudioURL string
}

// CallProcessor sequences one call turn: acquire audio, transcribe, extract
// intent, resolve a reply, synthesize it, persist it, and log the exchange.
type CallProcessor struct {
	recordings  Recordings
	transcriber Transcriber
	extractor   IntentExtractor
	dialogue    DialogueManager
	synthesizer Synthesizer
	storage     DurableStorage
	logs        ConversationLogger
	logger      *observability.Logger
}

func New(
	recordings Recordings,
	transcriber Transcriber,
	extractor IntentExtractor,
	dialogue DialogueManager,
	synthesizer Synthesizer,
	storage DurableStorage,
	logs ConversationLogger,
	logger *observability.Logger,
) *CallProcessor {
	return &CallProcessor{
		recordings:  recordings,
		transcriber: transcriber,
		extractor:   extractor,
		dialogue:    dialogue,
		synthesizer: synthesizer,
		storage:     storage,
		logs:        logs,
		logger:      logger,
	}
}

// ProcessCall runs one synchronous call turn. recordingRef is either a remote
// recording URL or a path to an already-local file. Ephemeral files are
// released on every exit path.
func (p *CallProcessor) ProcessCall(ctx context.Context, recordingRef, callerID string) (TurnResult, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "caller", Value: callerID})

	inputPath := recordingRef
	if isRemote(recordingRef) {
		downloaded, err := p.recordings.Download(ctx, recordingRef)
		if err != nil {
			p.logger.Error(ctx, "failed to acquire caller audio", err)
			return TurnResult{}, fmt.Errorf("%w: %v", ErrAcquisition, err)
		}
		inputPath = downloaded
	}
	defer p.recordings.Cleanup(ctx, inputPath)

	transcript := p.transcriber.Transcribe(ctx, inputPath)

	// An empty transcript is a valid no-speech outcome. It short-circuits to
	// a clarification prompt; the extractor and dialogue manager never run.
	var replyText string
	if strings.TrimSpace(transcript) == "" {
		p.logger.Info(ctx, "no speech detected, asking caller to repeat")
		replyText = clarificationPrompt
	} else {
		result := p.extractor.Extract(ctx, transcript)
		replyText = p.dialogue.Resolve(ctx, transcript, result, callerID)
	}

	outputPath, err := p.synthesizer.Synthesize(ctx, replyText)
	if err != nil {
		p.logger.Error(ctx, "failed to synthesize reply", err)
		return TurnResult{}, fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	// No-op once durable storage has taken the file over.
	defer p.recordings.Cleanup(ctx, outputPath)

	name := fmt.Sprintf("response_%s_%s.wav", sanitizeCaller(callerID), uuid.New().String())
	audioURL, err := p.storage.Upload(ctx, outputPath, name)
	if err != nil {
		p.logger.Error(ctx, "failed to persist reply audio", err)
		return TurnResult{}, fmt.Errorf("%w: %v", ErrPersist, err)
	}

	if err := p.logs.LogConversation(ctx, callerID, transcript, replyText); err != nil {
		// The caller already has their reply; losing one audit row does not
		// abort the turn.
		p.logger.Error(ctx, "failed to log conversation", err)
	}

	p.logger.Info(ctx, "call turn processed",
		observability.Field{Key: "reply_audio_url", Value: audioURL})
	return TurnResult{
		Transcript:    transcript,
		ReplyText:     replyText,
		ReplyAudioURL: audioURL,
	}, nil
}

// Greeting synthesizes and persists the call-start greeting. The name is
// derived from the call id alone, so a redelivered call-start event
// overwrites with identical content instead of accumulating copies.
func (p *CallProcessor) Greeting(ctx context.Context, callID, greetingText string) (string, error) {
	outputPath, err := p.synthesizer.Synthesize(ctx, greetingText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer p.recordings.Cleanup(ctx, outputPath)

	name := fmt.Sprintf("greeting_%s.wav", sanitizeCaller(callID))
	audioURL, err := p.storage.Upload(ctx, outputPath, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return audioURL, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// sanitizeCaller keeps storage names to a safe character set; caller ids
// arrive as E.164 numbers, "anonymous", or vendor-specific strings.
func sanitizeCaller(callerID string) string {
	var b strings.Builder
	for _, r := range callerID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
