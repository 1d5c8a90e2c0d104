package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
)

// Mock is a keyless Synthesizer and Transcriber for development and tests:
// synthesis returns a short silent WAV clip and transcription returns a
// canned sentence.
type Mock struct{}

var (
	_ Synthesizer = Mock{}
	_ Transcriber = Mock{}
)

const mockTranscript = "This is a mock transcription of the uploaded audio."

// Synthesize implements Synthesizer.
func (Mock) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return silentWAV(), "audio/wav", nil
}

// Transcribe implements Transcriber.
func (Mock) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return mockTranscript, nil
}

// silentWAV builds half a second of 8-bit mono PCM silence with a standard
// RIFF header, so players accept the mock output as real audio.
func silentWAV() []byte {
	const (
		sampleRate = 8000
		samples    = sampleRate / 2
	)
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+samples))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(8))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(samples))
	buf.Write(bytes.Repeat([]byte{0x80}, samples))
	return buf.Bytes()
}
