package logging

// Scheme logging configuration
type Scheme struct {
	// LogLevel logrus level name: debug, info, warn, error
	LogLevel string
}
