package main

import "testing"

func TestLabelTitle(t *testing.T) {
	if got := labelTitle(0, 3, "a.jpg", false); got != "1/3  a.jpg" {
		t.Fatalf("labelTitle = %q", got)
	}
	if got := labelTitle(2, 3, "c.png", true); got != "3/3  c.png  (unsaved)" {
		t.Fatalf("labelTitle = %q", got)
	}
}
