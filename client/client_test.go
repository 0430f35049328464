package client

import (
	"testing"

	"github.com/anvilsmith/microsdc/smb1"
	"github.com/anvilsmith/microsdc/transport"
)

func TestRequireState(t *testing.T) {
	c := New("10.0.0.5", "TARGET")

	if err := c.requireState("connect", StateClosed); err != nil {
		t.Errorf("requireState in matching state: %v", err)
	}

	c.state = StateReady
	err := c.requireState("connect", StateClosed)
	if _, ok := err.(*StateError); !ok {
		t.Fatalf("err = %v (%T), want *StateError", err, err)
	}
}

func TestRequireReady(t *testing.T) {
	c := New("10.0.0.5", "TARGET")
	if err := c.requireReady("open"); err == nil {
		t.Error("requireReady should fail before Connect")
	}
	c.state = StateReady
	if err := c.requireReady("open"); err != nil {
		t.Errorf("requireReady in StateReady: %v", err)
	}
}

func TestFailTransitionsToClosed(t *testing.T) {
	c := New("10.0.0.5", "TARGET")
	c.state = StateReady

	got := c.fail(&transport.ProtocolError{Reason: "boom"})
	if c.state != StateClosed {
		t.Errorf("state after fail = %v, want StateClosed", c.state)
	}
	if got == nil {
		t.Error("fail should return the error unchanged")
	}
}

func TestFailIgnoresNonNetworkErrors(t *testing.T) {
	c := New("10.0.0.5", "TARGET")
	c.state = StateReady

	c.fail(&ArgumentError{Field: "path", Reason: "bad"})
	if c.state != StateReady {
		t.Errorf("state after fail on ArgumentError = %v, want unchanged StateReady", c.state)
	}
}

func TestCheckStatus(t *testing.T) {
	if err := checkStatus(smb1.ComEcho, smb1.StatusOK); err != nil {
		t.Errorf("checkStatus(StatusOK) = %v, want nil", err)
	}

	err := checkStatus(smb1.ComEcho, smb1.StatusAccessDenied)
	smbErr, ok := err.(*SmbError)
	if !ok {
		t.Fatalf("err = %v (%T), want *SmbError", err, err)
	}
	if smbErr.Status != smb1.StatusAccessDenied {
		t.Errorf("Status = 0x%x, want StatusAccessDenied", smbErr.Status)
	}
	if smbErr.Name != "STATUS_ACCESS_DENIED" {
		t.Errorf("Name = %q, want STATUS_ACCESS_DENIED", smbErr.Name)
	}
}

func TestStateAccessor(t *testing.T) {
	c := New("10.0.0.5", "TARGET")
	if c.State() != StateClosed {
		t.Errorf("initial State() = %v, want StateClosed", c.State())
	}
}
