package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusActive, StatusTriggered, true},
		{StatusActive, StatusPaused, true},
		{StatusActive, StatusDeleted, true},
		{StatusPaused, StatusActive, true},
		{StatusPaused, StatusDeleted, true},
		{StatusTriggered, StatusDeleted, true},
		{StatusTriggered, StatusActive, false},
		{StatusPaused, StatusTriggered, false},
		{StatusDeleted, StatusActive, false},
		{StatusDeleted, StatusTriggered, false},
		// repeating the current status is idempotent
		{StatusActive, StatusActive, true},
		{StatusTriggered, StatusTriggered, true},
		{StatusDeleted, StatusDeleted, true},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransitionSources(t *testing.T) {
	sources := TransitionSources(StatusTriggered)
	want := map[Status]bool{StatusTriggered: true, StatusActive: true}
	if len(sources) != len(want) {
		t.Fatalf("got %v, want exactly %v", sources, want)
	}
	for _, s := range sources {
		if !want[s] {
			t.Errorf("unexpected source %s for triggered", s)
		}
	}
}

func TestAlert_Crossed(t *testing.T) {
	alert := func(dir Direction, threshold string) Alert {
		return Alert{Direction: dir, Threshold: decimal.RequireFromString(threshold)}
	}
	cases := []struct {
		name  string
		alert Alert
		price string
		want  bool
	}{
		{"above at boundary", alert(DirectionAbove, "50000"), "50000", true},
		{"above beyond", alert(DirectionAbove, "50000"), "50001", true},
		{"above not reached", alert(DirectionAbove, "50000"), "49999.99", false},
		{"below not reached", alert(DirectionBelow, "2000"), "2500", false},
		{"below at boundary", alert(DirectionBelow, "1.0"), "1.0", true},
		{"below beyond", alert(DirectionBelow, "2000"), "1999.5", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.alert.Crossed(decimal.RequireFromString(tc.price)); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"above", DirectionAbove, false},
		{"BELOW", DirectionBelow, false},
		{" >= ", DirectionAbove, false},
		{"<", DirectionBelow, false},
		{"sideways", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseDirection(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDirection(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirection(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDirection(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
