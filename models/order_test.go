package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{StatusPending, StatusPreparing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusReady, false},
		{StatusPending, StatusCompleted, false},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusCancelled, true},
		{StatusPreparing, StatusPending, false},
		{StatusPreparing, StatusCompleted, false},
		{StatusReady, StatusCompleted, true},
		{StatusReady, StatusCancelled, false},
		{StatusReady, StatusPreparing, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusPreparing, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusPreparing, false},
		{"", StatusPending, false},
		{StatusPending, "", false},
	}
	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusPreparing, false},
		{StatusReady, false},
		{StatusCompleted, true},
		{StatusCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("%q.IsTerminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled} {
		if !status.IsValid() {
			t.Errorf("%q should be valid", status)
		}
	}
	for _, status := range []OrderStatus{"", "pending", "DELIVERED"} {
		if status.IsValid() {
			t.Errorf("%q should not be valid", status)
		}
	}
}
