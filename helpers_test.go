package sqlbind_test

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

// wantPanic runs fn expecting a panic whose error matches target.
func wantPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Expected panic, got none")
		}
		if target == nil {
			return
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("Expected error panic, got %v", r)
		}
		if !errors.Is(err, target) {
			t.Errorf("Expected panic matching %v, got %v", target, err)
		}
	}()
	fn()
}
