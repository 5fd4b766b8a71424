package config

// ValidateForRun checks the configuration a running service cannot work
// without. A missing credential is a startup failure, never a per-request one.
func ValidateForRun(cfg *Config) error {
	if cfg.ServiceAccountJSON == "" {
		return ErrServiceAccountMissing
	}
	return nil
}
