package logger

import "testing"

func TestInitAndLog(t *testing.T) {
	Init()

	// Must not panic with or without key/value pairs.
	Info("plain message")
	Info("message with fields", "key", "value", "count", 3)
	Infof("formatted %s %d", "message", 1)
	Debug("debug message")
	Error("error message", "reason", "test")
	Errorf("formatted error: %v", nil)
	Sync()
}
