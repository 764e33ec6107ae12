package whisper

// Command constants for the WhisperX invocation. The engine ships as a
// Python tool and is executed through uvx so no local install is required
// beyond the uv toolchain.
const (
	UVXCommand   = "uvx"
	DefaultModel = "base"

	outputFormat   = "json"
	cpuDevice      = "cpu"
	cpuComputeType = "int8"
)

// Config holds the speech-recognition engine settings.
type Config struct {
	// Enabled gates the whole engine; when false Available always reports false.
	Enabled bool
	// Model is the WhisperX model name, e.g. "base" or "large-v3".
	Model string
}
