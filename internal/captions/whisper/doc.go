// Package whisper adapts the WhisperX speech-recognition CLI as the
// word-timestamp source for the first caption-resolution tier.
package whisper
