package utils

import (
	"testing"
	"time"
)

func TestFiletimeRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	ft := UnixToFiletime(now)
	back := FiletimeToUnix(ft).UTC()
	if !back.Equal(now) {
		t.Errorf("round trip = %v, want %v", back, now)
	}
}

func TestUnixToFiletimeEpoch(t *testing.T) {
	epoch := time.Unix(0, 0)
	ft := UnixToFiletime(epoch)
	want := uint64(filetimeOffset) * 1e7
	if ft != want {
		t.Errorf("UnixToFiletime(epoch) = %d, want %d", ft, want)
	}
}
