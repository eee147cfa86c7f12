package config

const (
	defaultReportDir           = "~/.local/share/culler/reports"
	defaultLogDir              = "~/.local/share/culler/logs"
	defaultDataDir             = "~/.local/share/culler"
	defaultAlgorithm           = "md5"
	defaultChunkSize           = 64 * 1024
	defaultIntervalMinutes     = 60
	defaultWatchSettleSeconds  = 5
	defaultReportRetentionDays = 60
	defaultEmailPort           = 587
	defaultEmailTimeout        = 30
	defaultNtfyTimeout         = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ReportDir: defaultReportDir,
			LogDir:    defaultLogDir,
			DataDir:   defaultDataDir,
		},
		Scanner: Scanner{
			Algorithm: defaultAlgorithm,
			ChunkSize: defaultChunkSize,
		},
		Schedule: Schedule{
			IntervalMinutes:    defaultIntervalMinutes,
			WatchSettleSeconds: defaultWatchSettleSeconds,
		},
		Cull: Cull{
			ReportRetentionDays: defaultReportRetentionDays,
		},
		Email: Email{
			Port:           defaultEmailPort,
			StartTLS:       true,
			RequestTimeout: defaultEmailTimeout,
		},
		Ntfy: Ntfy{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
