package config

import "runtime"

const (
	defaultLogDir                = "~/.local/share/entrain/logs"
	defaultProcessName           = "Brain.fm"
	defaultBundleID              = "com.electron.brain.fm"
	defaultAPIBaseURL            = "https://api.brain.fm"
	defaultAPITimeoutSeconds     = 10
	defaultCommandTimeoutSeconds = 5
	defaultMediaSessionCommand   = "media-control"
	defaultRefreshCycles         = 6
	defaultPollIntervalSeconds   = 5
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

func defaultDataDir() string {
	if runtime.GOOS == "darwin" {
		return "~/Library/Application Support/Brain.fm"
	}
	return "~/.config/Brain.fm"
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir(),
			LogDir:  defaultLogDir,
		},
		App: App{
			ProcessName: defaultProcessName,
			BundleID:    defaultBundleID,
		},
		API: API{
			BaseURL:        defaultAPIBaseURL,
			TimeoutSeconds: defaultAPITimeoutSeconds,
		},
		Probes: Probes{
			CommandTimeoutSeconds: defaultCommandTimeoutSeconds,
			MediaSessionCommand:   defaultMediaSessionCommand,
		},
		Reconcile: Reconcile{
			RefreshCycles:       defaultRefreshCycles,
			PollIntervalSeconds: defaultPollIntervalSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
