package config

import "github.com/spf13/viper"

// setDefaults installs the built-in defaults before any file or environment
// override is applied.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.public_addr", "127.0.0.1:6570")
	v.SetDefault("server.admin_addr", "127.0.0.1:6571")
	v.SetDefault("server.timeout_seconds", 30)

	v.SetDefault("storage.backend", "pebble")
	v.SetDefault("storage.path", "data/launchpad")
	v.SetDefault("storage.cache_size", 1024)
	v.SetDefault("storage.compress_threshold", 256)

	v.SetDefault("history.driver", "")
	v.SetDefault("history.dsn", "")

	v.SetDefault("minter.self_address", "")

	v.SetDefault("authority.params_file", "")
}
