package main

import "testing"

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	if err != nil || id != 12 {
		t.Fatalf("expected 12, got %d (%v)", id, err)
	}

	// Anything that is not purely a positive integer must fail, so that
	// arguments like "12abc" or file names never reach the backend as ids.
	for _, bad := range []string{"12abc", "order.json", "", "-3", "0", "1.5"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
