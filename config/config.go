package config

// GasOracleConfig is the gas oracle configuration as read from the TOML file
type GasOracleConfig struct {
	GeneralConfig GeneralConfig
	Oracle        OracleConfig
	TokenFeed     FeedConfig
	NativeFeed    FeedConfig
	Storage       StorageConfig
	RPC           RPCConfig
	WebSocket     WebSocketConfig
}

// GeneralConfig holds the polling and logging settings
type GeneralConfig struct {
	PollIntervalInSeconds          uint64
	PollIntervalWhenErrorInSeconds uint64
	Logs                           LogsConfig
}

// LogsConfig will hold settings related to the logging sub-system
type LogsConfig struct {
	LogFileLifeSpanInSec int
	LogFileLifeSpanInMB  int
}

// OracleConfig holds the price cache policy
type OracleConfig struct {
	UpdateThresholdPpm            uint64
	CacheTimeToLiveInSeconds      uint64
	MaxFeedAgeInSeconds           uint64
	TokenDecimals                 uint8
	DirectMode                    bool
	TokenFeedInverted             bool
	NativeFeedInverted            bool
	InitialPrice                  string
	ForcedRefreshCron             string
	ForcedRefreshTimeoutInSeconds uint64
}

// FeedConfig describes one upstream feed. An empty Type means no feed
type FeedConfig struct {
	Type        string
	Name        string
	Address     string
	StaticPrice string
}

// StorageConfig selects the cache storer
type StorageConfig struct {
	Type string
	Path string
}

// RPCConfig holds the EVM node settings used by the chainlink feeds
type RPCConfig struct {
	URL              string
	TimeoutInSeconds uint64
}

// WebSocketConfig holds the price stream settings
type WebSocketConfig struct {
	Enabled               bool
	WriteTimeoutInSeconds uint64
	ClientBufferSize      int
	AllowAllOrigins       bool
}

// ContextFlagsConfig the configuration for flags
type ContextFlagsConfig struct {
	WorkingDir        string
	LogLevel          string
	DisableAnsiColor  bool
	ConfigurationFile string
	EnvFile           string
	SaveLogFile       bool
	EnableLogName     bool
	RestApiInterface  string
}
