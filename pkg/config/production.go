package config

func loadProductionConfig(cfg *Config) {
	loadSharedConfig(cfg)

	if cfg.DatabaseFilePath == "" {
		cfg.DatabaseFilePath = "/data/bookzoi.sqlite"
	}
}
