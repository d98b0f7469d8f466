package config

func loadTestConfig(cfg *Config) {
	loadSharedConfig(cfg)

	cfg.DatabaseConnectRetryCount = 1
	cfg.DatabaseConnectRetryDelay = 0
	if cfg.DatabaseFilePath == "" {
		cfg.DatabaseFilePath = ":memory:"
	}
	cfg.DatabaseURL = ""
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
}
