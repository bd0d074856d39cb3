// Package media captures microphone audio, encodes it for the voice chat
// endpoint, plays back bot voice replies, and validates prescription images.
// Audio capture and playback shell out to whatever recorder/player binaries
// the host has; the package never links an audio stack.
package media

import "encoding/binary"

// Capture format expected by the speech endpoint.
const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
)

// EncodeWAV wraps raw little-endian PCM samples in a 44-byte RIFF header.
func EncodeWAV(pcm []byte, sampleRate, channels int) []byte {
	if sampleRate == 0 {
		sampleRate = SampleRate
	}
	if channels == 0 {
		channels = Channels
	}

	byteRate := sampleRate * channels * BitsPerSample / 8
	blockAlign := channels * BitsPerSample / 8
	dataSize := len(pcm)
	fileSize := 36 + dataSize

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(fileSize))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM subchunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], BitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	return append(header, pcm...)
}

// IsWAV reports whether data already carries a RIFF/WAVE header.
func IsWAV(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}
