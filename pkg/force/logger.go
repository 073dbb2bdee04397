package force

// Logger is the logging interface accepted throughout the library. It
// matches the shape of most structured loggers so adapters stay trivial.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything. It is the default when no logger is
// configured.
type NopLogger struct{}

func (NopLogger) Debug(msg string, fields map[string]interface{}) {}
func (NopLogger) Info(msg string, fields map[string]interface{})  {}
func (NopLogger) Warn(msg string, fields map[string]interface{})  {}
func (NopLogger) Error(msg string, fields map[string]interface{}) {}
