package config

import "fmt"

var validBackends = map[string]bool{
	"pebble":  true,
	"leveldb": true,
	"memory":  true,
}

var validHistoryDrivers = map[string]bool{
	"":         true,
	"sqlite":   true,
	"postgres": true,
}

// ValidateConfig checks the loaded configuration for inconsistencies that
// would only surface later at runtime.
func ValidateConfig(c *Config) error {
	if c.Server.PublicAddr == "" {
		return fmt.Errorf("server.public_addr must not be empty")
	}
	if c.Server.AdminAddr == c.Server.PublicAddr {
		return fmt.Errorf("server.admin_addr must differ from server.public_addr")
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be positive")
	}

	if !validBackends[c.Storage.Backend] {
		return fmt.Errorf("storage.backend %q is not one of pebble, leveldb, memory", c.Storage.Backend)
	}
	if c.Storage.Backend != "memory" && c.Storage.Path == "" {
		return fmt.Errorf("storage.path must be set for backend %q", c.Storage.Backend)
	}

	if !validHistoryDrivers[c.History.Driver] {
		return fmt.Errorf("history.driver %q is not one of sqlite, postgres", c.History.Driver)
	}
	if c.History.Driver != "" && c.History.DSN == "" {
		return fmt.Errorf("history.dsn must be set when history.driver is %q", c.History.Driver)
	}

	if c.Authority.ParamsFile == "" {
		return fmt.Errorf("authority.params_file must be set")
	}
	return nil
}
