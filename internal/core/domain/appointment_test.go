package domain

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled} {
		if !ValidStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if ValidStatus("archived") {
		t.Fatalf("expected unknown status to be invalid")
	}
	if ValidStatus("") {
		t.Fatalf("expected empty status to be invalid")
	}
}

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !StatusCompleted.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Fatalf("completed and cancelled must be terminal")
	}
	if StatusPending.IsTerminal() || StatusConfirmed.IsTerminal() || StatusInProgress.IsTerminal() {
		t.Fatalf("open statuses must not be terminal")
	}
}
