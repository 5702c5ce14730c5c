package azurespeech

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

// Client talks to the Azure Cognitive Services Speech REST endpoints for
// short-audio recognition and synthesis.
type Client struct {
	key        string
	region     string
	voice      string
	language   string
	httpClient *http.Client
	logger     *observability.Logger
}

func New(key, region, voice, language string, logger *observability.Logger) (*Client, error) {
	if key == "" || region == "" {
		return nil, fmt.Errorf("Azure Speech credentials are required")
	}
	return &Client{
		key:      key,
		region:   region,
		voice:    voice,
		language: language,
		// STT of a 30s recording can take a while; TTS is usually faster.
		httpClient: &http.Client{Timeout: 45 * time.Second},
		logger:     logger,
	}, nil
}

type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Transcribe converts a local WAV file to text. Per the orchestrator
// contract it returns "" for both no-speech and provider errors; failures are
// logged and absorbed here, never surfaced.
func (c *Client) Transcribe(ctx context.Context, audioPath string) string {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		c.logger.Error(ctx, "failed to read audio file for transcription", err)
		return ""
	}

	url := fmt.Sprintf(
		"https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1?language=%s",
		c.region, c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(audio))
	if err != nil {
		c.logger.Error(ctx, "failed to create STT request", err)
		return ""
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "Azure STT request failed", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error(ctx, "Azure STT error response", fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)))
		return ""
	}

	var recognition recognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&recognition); err != nil {
		c.logger.Error(ctx, "failed to decode STT response", err)
		return ""
	}
	if recognition.RecognitionStatus != "Success" {
		c.logger.Info(ctx, "no speech recognized",
			observability.Field{Key: "recognition_status", Value: recognition.RecognitionStatus})
		return ""
	}
	return recognition.DisplayText
}

type ssmlSpeak struct {
	XMLName xml.Name  `xml:"speak"`
	Version string    `xml:"version,attr"`
	Lang    string    `xml:"xml:lang,attr"`
	Voice   ssmlVoice `xml:"voice"`
}

type ssmlVoice struct {
	Name string `xml:"name,attr"`
	Text string `xml:",chardata"`
}

// Synthesize converts reply text to a WAV file in the OS temp directory and
// returns its path. The caller owns cleanup of the file.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	body, err := xml.Marshal(ssmlSpeak{
		Version: "1.0",
		Lang:    c.language,
		Voice:   ssmlVoice{Name: c.voice, Text: text},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal SSML: %w", err)
	}

	url := fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", c.region)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create TTS request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", "riff-16khz-16bit-mono-pcm")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Azure TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Azure TTS error: status %d: %s", resp.StatusCode, string(respBody))
	}

	tempFile, err := os.CreateTemp("", "tts-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tempFile.Close()

	written, err := io.Copy(tempFile, resp.Body)
	if err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to write synthesized audio: %w", err)
	}
	if written == 0 {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("Azure TTS returned no audio")
	}

	c.logger.Info(ctx, "synthesized speech",
		observability.Field{Key: "audio_bytes", Value: written},
		observability.Field{Key: "path", Value: tempFile.Name()})
	return tempFile.Name(), nil
}
