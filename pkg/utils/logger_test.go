package utils

import "testing"

func TestNewLogger(t *testing.T) {
	for _, debug := range []bool{true, false} {
		logger, err := NewLogger(debug)
		if err != nil {
			t.Fatalf("NewLogger(%t) error: %v", debug, err)
		}
		if logger == nil {
			t.Fatalf("NewLogger(%t) returned nil logger", debug)
		}
		if debug != logger.Core().Enabled(-1) {
			t.Errorf("NewLogger(%t): debug level enabled = %t", debug, !debug)
		}
		_ = logger.Sync()
	}
}
