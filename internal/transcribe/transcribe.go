// Package transcribe gates student audio before it reaches the speech-to-text
// collaborator and maps collaborator failures onto a small taxonomy.
package transcribe

import (
	"context"
	"fmt"
	"strings"
)

// Kind classifies a transcription failure.
type Kind int

const (
	KindGeneric Kind = iota
	KindTooShort
	KindInvalidFormat
)

func (k Kind) String() string {
	switch k {
	case KindTooShort:
		return "too short"
	case KindInvalidFormat:
		return "invalid format"
	}
	return "transcription failed"
}

// TranscriptionError wraps a collaborator failure. Callers recover by using
// empty text; it is never fatal.
type TranscriptionError struct {
	Kind Kind
	Err  error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcribe: %s: %v", e.Kind, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

const (
	// minAudioBytes is roughly a tenth of a second of speech. Anything
	// below is treated as an empty recording, not an error.
	minAudioBytes = 1000
	// maxAudioBytes caps a recording at about thirty seconds.
	maxAudioBytes = 500000
)

// Recognizer is the collaborator slice: raw audio in, plain text out.
type Recognizer interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

// Service applies the size gates and error mapping around a Recognizer.
type Service struct {
	rec Recognizer
}

// NewService creates a Service around the given recognizer.
func NewService(rec Recognizer) *Service {
	return &Service{rec: rec}
}

// Transcribe converts audio to text. Trivial input returns empty text with no
// error; oversized input is truncated before the collaborator call; any
// collaborator failure is returned as a *TranscriptionError.
func (s *Service) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	if len(audio) < minAudioBytes {
		return "", nil
	}
	if len(audio) > maxAudioBytes {
		audio = audio[:maxAudioBytes]
	}

	text, err := s.rec.Transcribe(ctx, audio, language)
	if err != nil {
		return "", classify(err)
	}
	return text, nil
}

// classify maps collaborator error text onto the taxonomy, mirroring the
// error codes the transcription API emits.
func classify(err error) *TranscriptionError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "audio_too_short"):
		return &TranscriptionError{Kind: KindTooShort, Err: err}
	case strings.Contains(msg, "invalid_request_error"):
		return &TranscriptionError{Kind: KindInvalidFormat, Err: err}
	}
	return &TranscriptionError{Kind: KindGeneric, Err: err}
}
