package logging

// MockLogger is a Logger implementation that records messages for tests.
// Derived loggers (WithError/WithField) write into the same entry list.
type MockLogger struct {
	sink   *[]MockEntry
	fields []Field
	err    error
}

// MockEntry is one recorded log call.
type MockEntry struct {
	Level   string
	Message string
	Fields  []Field
	Err     error
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	entries := make([]MockEntry, 0)
	return &MockLogger{sink: &entries}
}

// Entries returns all recorded entries.
func (m *MockLogger) Entries() []MockEntry {
	return *m.sink
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	all := append(append([]Field{}, m.fields...), fields...)
	*m.sink = append(*m.sink, MockEntry{Level: level, Message: msg, Fields: all, Err: m.err})
}

// Debug records a debug-level message
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, fields) }

// Info records an info-level message
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("info", msg, fields) }

// Warn records a warning-level message
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("warn", msg, fields) }

// Error records an error-level message
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, fields) }

// WithError attaches an error to subsequent entries
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{sink: m.sink, fields: m.fields, err: err}
}

// WithField attaches a field to subsequent entries
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return &MockLogger{
		sink:   m.sink,
		fields: append(append([]Field{}, m.fields...), Field{Key: key, Value: value}),
		err:    m.err,
	}
}

// HasMessage reports whether any recorded entry carries the given message.
func (m *MockLogger) HasMessage(msg string) bool {
	for _, e := range *m.sink {
		if e.Message == msg {
			return true
		}
	}
	return false
}
