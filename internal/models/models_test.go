package models

import (
	"encoding/json"
	"testing"
)

func TestLevelDefaultAge(t *testing.T) {
	tests := []struct {
		level Level
		want  int
	}{
		{LevelToddler, 2},
		{LevelPreschool, 3},
		{LevelPreK, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.DefaultAge(); got != tt.want {
				t.Errorf("DefaultAge() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "toddler", input: "toddler", ok: true},
		{name: "prek", input: "prek", ok: true},
		{name: "unknown", input: "kindergarten", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "wrong case", input: "Toddler", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseLevel(tt.input)
			if ok != tt.ok {
				t.Errorf("ParseLevel(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}

func TestLevelLabel(t *testing.T) {
	if got := LevelPreschool.Label(); got != "Preschool" {
		t.Errorf("Label() = %q, want Preschool", got)
	}
	if got := Level("").Label(); got != "" {
		t.Errorf("Label() of empty level = %q", got)
	}
}

func TestUserIsGuest(t *testing.T) {
	var nilUser *User
	if !nilUser.IsGuest() {
		t.Error("nil user should count as guest")
	}
	if !(&User{Role: RoleGuest}).IsGuest() {
		t.Error("guest role should be guest")
	}
	if (&User{Role: RoleTeacher}).IsGuest() {
		t.Error("teacher should not be guest")
	}
}

func TestUserJSONFieldNames(t *testing.T) {
	u := User{Name: "Emma", Email: "e@x.com", ChildName: "Lily", ChildAge: 3, ChildLevel: LevelPreschool, Role: RoleParent}
	data, err := json.Marshal(u.Public())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"name", "email", "childName", "childAge", "childLevel", "role"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if _, ok := raw["password"]; ok {
		t.Error("Public() should drop the password")
	}
}

func TestProgressKey(t *testing.T) {
	if got := ProgressKey("alice@example.com"); got != "progress_alice@example.com" {
		t.Errorf("ProgressKey() = %q", got)
	}
}
