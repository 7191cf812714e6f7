package core

import "testing"

func TestEdgeTrigger(t *testing.T) {
	tests := []struct {
		name    string
		samples []bool
		want    []bool
	}{
		{
			name:    "single press",
			samples: []bool{false, true, false},
			want:    []bool{false, true, false},
		},
		{
			name:    "held key fires once",
			samples: []bool{true, true, true, true},
			want:    []bool{true, false, false, false},
		},
		{
			name:    "release then press again",
			samples: []bool{true, true, false, true},
			want:    []bool{true, false, false, true},
		},
		{
			name:    "never pressed",
			samples: []bool{false, false},
			want:    []bool{false, false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var e EdgeTrigger
			for i, seen := range tc.samples {
				if got := e.Sample(seen); got != tc.want[i] {
					t.Errorf("sample %d: Sample(%v) = %v, expected %v", i, seen, got, tc.want[i])
				}
			}
		})
	}
}

func TestEdgeTriggerReset(t *testing.T) {
	var e EdgeTrigger
	e.Sample(true)
	e.Reset()
	if !e.Sample(true) {
		t.Error("After Reset, a held key should fire again")
	}
}

func TestEdgeTriggerFilter(t *testing.T) {
	var e EdgeTrigger

	f := NewInputFrame()
	f.Set(ActionJump)
	f.Set(ActionRestart)
	e.Filter(&f, ActionJump)
	if !f.Has(ActionJump) {
		t.Error("First frame with jump should keep it")
	}

	f2 := NewInputFrame()
	f2.Set(ActionJump)
	f2.Set(ActionRestart)
	e.Filter(&f2, ActionJump)
	if f2.Has(ActionJump) {
		t.Error("Held jump should be filtered out")
	}
	if !f2.Has(ActionRestart) {
		t.Error("Filter must not touch other actions")
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("Zero frame should have no actions")
	}
	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Set should mark the action")
	}
	f.Unset(ActionJump)
	if f.Has(ActionJump) {
		t.Error("Unset should drop the action")
	}
	f.Set(ActionRestart)
	f.Clear()
	if f.Has(ActionRestart) {
		t.Error("Clear should drop actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" {
		t.Errorf("ActionJump.String() = %q", ActionJump.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
