package ports

// Logger defines the interface for logging
type Logger interface {
	Debug(msg string)
	Error(msg string)
}
