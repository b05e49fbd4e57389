package testutil

import "testing"

// Given, When, Then and And nest subtests so a failure reads as the
// scenario that broke, e.g. "Given_a_closed_day/When_.../Then_...".
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", desc, fn)
}

func And(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "And", desc, fn)
}

func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(keyword+" "+desc, fn)
}
