package featureflags

import "testing"

const uid = "57231f1a30e4351f4e9f4bd7"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", uid) || !m.Enabled("c", uid) || !m.Enabled("e", uid) {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", uid) || m.Enabled("d", uid) || m.Enabled("f", uid) {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
	if m.Enabled("unknown", uid) {
		t.Fatal("unknown flags are off")
	}
}

func TestEnabled_Defaults(t *testing.T) {
	m := NewManager("")
	for _, name := range []string{PhotoUpload, CommentPosting, Registration} {
		if !m.Enabled(name, "") {
			t.Fatalf("%s should default to on", name)
		}
	}

	m = NewManager("photo_upload=off")
	if m.Enabled(PhotoUpload, uid) {
		t.Fatal("configured value overrides the default")
	}
	if !m.Enabled(Registration, uid) {
		t.Fatal("other defaults are kept")
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,broken=x%")

	if !m.Enabled("always", uid) {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", uid) {
		t.Fatal("0% rollout should always be disabled")
	}
	if m.Enabled("broken", uid) {
		t.Fatal("malformed percentage is disabled")
	}

	first := m.Enabled("canary", uid)
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", uid); got != first {
			t.Fatal("rollout evaluation must be deterministic per user")
		}
	}

	if m.Enabled("canary", "") {
		t.Fatal("percentage rollout requires a user")
	}
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off ")

	raw := m.Raw()
	if len(raw) != 6 {
		t.Fatalf("expected 3 parsed flags plus 3 defaults, got %d", len(raw))
	}
	if raw["x"] != "on" || raw["y"] != "20%" || raw["z"] != "off" {
		t.Fatalf("unexpected raw flags: %#v", raw)
	}

	snap := m.Snapshot(uid)
	if len(snap) != 6 {
		t.Fatalf("expected 6 evaluated flags, got %d", len(snap))
	}
	if !snap["x"] || snap["z"] {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestNilManager(t *testing.T) {
	var m *Manager
	if m.Enabled(PhotoUpload, uid) {
		t.Fatal("nil manager enables nothing")
	}
}
