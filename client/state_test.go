package client

import "testing"

func TestStateString(t *testing.T) {
	cases := []struct {
		s    State
		want string
	}{
		{StateClosed, "CLOSED"},
		{StateTCPOpen, "TCP_OPEN"},
		{StateNBSSReady, "NBSS_READY"},
		{StateNegotiated, "NEGOTIATED"},
		{StateAuthed, "AUTHED"},
		{StateReady, "READY"},
		{State(99), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.s.String(); got != c.want {
			t.Errorf("State(%d).String() = %q, want %q", c.s, got, c.want)
		}
	}
}
