package smb1

import "testing"

func TestStatusName(t *testing.T) {
	cases := []struct {
		status uint32
		want   string
	}{
		{StatusOK, "STATUS_OK"},
		{StatusAccessDenied, "STATUS_ACCESS_DENIED"},
		{StatusObjectNameNotFound, "STATUS_OBJECT_NAME_NOT_FOUND"},
		{0xdeadbeef, "STATUS_UNKNOWN"},
	}
	for _, c := range cases {
		if got := StatusName(c.status); got != c.want {
			t.Errorf("StatusName(0x%08x) = %q, want %q", c.status, got, c.want)
		}
	}
}
