package focus

import "testing"

func TestManager_NextPrevWrap(t *testing.T) {
	var changes [][2]string
	f := &Manager{
		Order:    []string{"a", "b", "c"},
		OnChange: func(from, to string) { changes = append(changes, [2]string{from, to}) },
	}

	steps := []struct {
		op   func() string
		want string
	}{
		{f.Next, "a"}, // from nothing focused
		{f.Next, "b"},
		{f.Next, "c"},
		{f.Next, "a"},
		{f.Prev, "c"},
		{f.Prev, "b"},
	}
	for i, s := range steps {
		if got := s.op(); got != s.want {
			t.Fatalf("step %d: got %q want %q", i, got, s.want)
		}
	}
	if len(changes) != len(steps) {
		t.Errorf("expected %d OnChange calls, got %d", len(steps), len(changes))
	}
	if changes[0] != [2]string{"", "a"} {
		t.Errorf("first change: got %v", changes[0])
	}
}

func TestManager_PrevFromNothingFocusesLast(t *testing.T) {
	f := &Manager{Order: []string{"a", "b", "c"}}
	if got := f.Prev(); got != "c" {
		t.Errorf("Prev from empty: got %q want c", got)
	}
}

func TestManager_EmptyOrder(t *testing.T) {
	f := &Manager{}
	if f.Next() != "" || f.Prev() != "" {
		t.Error("empty order should not focus anything")
	}
}

func TestManager_SetFocusRequiresMounted(t *testing.T) {
	f := &Manager{Order: []string{"a"}}
	if f.SetFocus("zzz") {
		t.Error("SetFocus on unmounted id should fail")
	}
	if !f.SetFocus("a") || f.Current != "a" {
		t.Errorf("SetFocus(a): current=%q", f.Current)
	}
	if f.SetFocus("") {
		t.Error("empty id is never focusable")
	}
}

func TestManager_AddRemove(t *testing.T) {
	f := &Manager{Order: []string{"a"}}
	f.Add("b", "a", "c")
	if got := len(f.Order); got != 3 {
		t.Fatalf("expected 3 elements, got %d (%v)", got, f.Order)
	}
	f.SetFocus("b")

	var cleared bool
	f.OnChange = func(from, to string) { cleared = from == "b" && to == "" }
	f.Remove("b", "missing")
	if f.Has("b") {
		t.Error("b should be unmounted")
	}
	if f.Current != "" || !cleared {
		t.Errorf("removing focused element should clear focus; current=%q", f.Current)
	}
	if f.Order[0] != "a" || f.Order[1] != "c" {
		t.Errorf("order after remove: %v", f.Order)
	}
}

func TestTrap_Cycles(t *testing.T) {
	trap := Trap{IDs: []string{"close", "name", "submit"}}
	tests := []struct {
		name    string
		fn      func(string) string
		current string
		want    string
	}{
		{"next middle", trap.Next, "close", "name"},
		{"next wraps", trap.Next, "submit", "close"},
		{"prev wraps", trap.Prev, "close", "submit"},
		{"next from outside", trap.Next, "page-button", "close"},
		{"prev from outside", trap.Prev, "page-button", "submit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.current); got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
	if (Trap{}).Next("x") != "" || (Trap{}).Prev("x") != "" {
		t.Error("empty trap returns empty id")
	}
	if !trap.Contains("name") || trap.Contains("page-button") {
		t.Error("Contains mismatch")
	}
}
