package config

const (
	AppName    = "wordvault"
	AppVersion = "0.3.1"
)

// Default settings applied when the config file leaves them unset.
const (
	DefaultServerPort  = ":8080"
	DefaultDatabaseURL = "wordvault.db"
	DefaultLogLevel    = "info"

	// Fallback text-to-speech endpoint for audio refs that are opaque
	// tokens rather than URLs.
	DefaultTTSEndpoint = "https://dict.youdao.com/dictvoice?audio="

	// Import pipeline pacing: a short randomized pause between lookups,
	// escalating roughly every 10 seconds of elapsed wall time.
	DefaultShortDelayMinMs  = 500
	DefaultShortDelayMaxMs  = 1000
	DefaultLongDelayMinMs   = 1000
	DefaultLongDelayMaxMs   = 5000
	DefaultEscalateEverySec = 10

	DefaultStudyMode         = "recognition"
	DefaultSessionTTLMinutes = 120
)
