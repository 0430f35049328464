package discovery

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{NoResponders, "NoResponders"},
		{MetadataUnreachable, "MetadataUnreachable"},
		{NameUnresolvable, "NameUnresolvable"},
		{NeedsUserInput, "NeedsUserInput"},
		{Kind(99), "Unknown"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.k, got, c.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: NoResponders}
	if e.Error() != "discovery: NoResponders" {
		t.Errorf("Error() = %q", e.Error())
	}

	e2 := &Error{Kind: NeedsUserInput, Detail: "10.0.0.1, 10.0.0.2"}
	want := "discovery: NeedsUserInput: 10.0.0.1, 10.0.0.2"
	if e2.Error() != want {
		t.Errorf("Error() = %q, want %q", e2.Error(), want)
	}
}
