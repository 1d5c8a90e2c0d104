// Package audio holds the speech collaborators for voice interviews:
// text-to-speech behind Synthesizer and speech-to-text behind Transcriber.
// Providers are selected once at startup; handlers see only the interfaces.
package audio

import (
	"context"
	"io"
)

// Synthesizer converts text to speech. voice overrides the provider's default
// voice when non-empty; providers without selectable voices ignore it.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (data []byte, contentType string, err error)
}

// Transcriber converts spoken audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
