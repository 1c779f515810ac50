package config

const (
	defaultDataDir      = "~/.local/share/wordrank"
	defaultDatabaseName = "runs.db"
	defaultLogDirName   = "logs"
	defaultPunctuation  = ".,-!:"
	defaultCaseFold     = true
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	caseFold := defaultCaseFold
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Tokenizer: Tokenizer{
			Punctuation: defaultPunctuation,
			CaseFold:    &caseFold,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
