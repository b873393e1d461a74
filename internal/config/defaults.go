package config

const (
	defaultStateDir       = "~/.local/share/airmail/state"
	defaultLogDir         = "~/.local/share/airmail/logs"
	defaultTVMazeBaseURL  = "https://api.tvmaze.com"
	defaultTVMazeTimeout  = 10
	defaultSMTPPort       = 587
	defaultSMTPTimeout    = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "error"
	defaultHistoryEnabled = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TVMaze: TVMaze{
			BaseURL:        defaultTVMazeBaseURL,
			RequestTimeout: defaultTVMazeTimeout,
		},
		SMTP: SMTP{
			Port:           defaultSMTPPort,
			RequestTimeout: defaultSMTPTimeout,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
