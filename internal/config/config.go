package config

// Config represents the complete launchpadd configuration.
// This mirrors the structure of launchpad.toml.
type Config struct {
	Server    ServerConfig    `toml:"server" mapstructure:"server"`
	Storage   StorageConfig   `toml:"storage" mapstructure:"storage"`
	History   HistoryConfig   `toml:"history" mapstructure:"history"`
	Minter    MinterConfig    `toml:"minter" mapstructure:"minter"`
	Authority AuthorityConfig `toml:"authority" mapstructure:"authority"`

	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig configures the two RPC listeners. The admin listener carries
// the operator-only methods and should never be exposed publicly.
type ServerConfig struct {
	PublicAddr     string `toml:"public_addr" mapstructure:"public_addr"`
	AdminAddr      string `toml:"admin_addr" mapstructure:"admin_addr"`
	TimeoutSeconds int    `toml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// StorageConfig configures the durable key-value store.
type StorageConfig struct {
	// Backend selects the key-value engine: pebble, leveldb or memory.
	Backend string `toml:"backend" mapstructure:"backend"`

	Path string `toml:"path" mapstructure:"path"`

	CacheSize         int `toml:"cache_size" mapstructure:"cache_size"`
	CompressThreshold int `toml:"compress_threshold" mapstructure:"compress_threshold"`
}

// HistoryConfig configures the optional relational mint-event history.
type HistoryConfig struct {
	// Driver selects the SQL driver: sqlite, postgres, or empty to disable.
	Driver string `toml:"driver" mapstructure:"driver"`

	// DSN is the driver-specific connection string.
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

// MinterConfig identifies this controller instance.
type MinterConfig struct {
	// SelfAddress is used as the minter identity on outbound instructions.
	SelfAddress string `toml:"self_address" mapstructure:"self_address"`
}

// AuthorityConfig points at the authority params file. The file is re-read
// on every params query so authority changes apply without a restart.
type AuthorityConfig struct {
	ParamsFile string `toml:"params_file" mapstructure:"params_file"`
}

// ConfigPath returns the path the configuration was loaded from, or empty
// when running on defaults.
func (c *Config) ConfigPath() string { return c.configPath }
