package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is one of debug, info, warn, error. Debug switches to zap's
	// development settings.
	Level string `mapstructure:"level" default:"info"`
	// Format is json or console.
	Format string `mapstructure:"format" default:"json"`
}
