package dbg

import "testing"

func TestLogNilIsNoOp(t *testing.T) {
	var l Logger
	l.Log("format %d", 1) // must not panic
}

func TestLogCallsThrough(t *testing.T) {
	var got string
	l := Logger(func(format string, args ...any) {
		got = format
	})
	l.Log("hello %s", "world")
	if got != "hello %s" {
		t.Errorf("got %q, want format string passed through", got)
	}
}
