package config

const (
	defaultTempDir        = "~/.local/share/reelpress/temp"
	defaultOutputDir      = "~/.local/share/reelpress/output"
	defaultLogDir         = "~/.local/share/reelpress/logs"
	defaultBind           = "127.0.0.1:9000"
	defaultRequestTimeout = 120
	defaultUserAgent      = "reelpress/1.0"
	defaultCharBudget     = 47
	defaultWhisperModel   = "base"
	defaultWorkers        = 2
	defaultQueueCapacity  = 32
	defaultTaskTTLHours   = 24
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TempDir:   defaultTempDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			Bind:      defaultBind,
		},
		Acquire: Acquire{
			RequestTimeout: defaultRequestTimeout,
			UserAgent:      defaultUserAgent,
		},
		Captions: Captions{
			CharBudget: defaultCharBudget,
		},
		Whisper: Whisper{
			Enabled: true,
			Model:   defaultWhisperModel,
		},
		Workflow: Workflow{
			Workers:       defaultWorkers,
			QueueCapacity: defaultQueueCapacity,
			TaskTTLHours:  defaultTaskTTLHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
