package ui

import "testing"

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Tidewater"); got.Name != "Tidewater" {
		t.Fatalf("GetTheme(Tidewater) = %q", got.Name)
	}
	if got := GetTheme("unknown"); got.Name != themes[0].Name {
		t.Fatalf("GetTheme(unknown) = %q, want first theme", got.Name)
	}
}

func TestNextThemeCycles(t *testing.T) {
	seen := map[string]bool{}
	name := themes[0].Name
	for range themes {
		seen[name] = true
		name = NextTheme(name).Name
	}
	if name != themes[0].Name {
		t.Fatalf("cycle did not wrap: ended on %q", name)
	}
	if len(seen) != len(themes) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(themes))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate(short, 10) = %q", got)
	}
	if got := truncate("a longer string", 8); got != "a longe…" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("ab", 1); got != "a" {
		t.Fatalf("truncate(ab, 1) = %q", got)
	}
}
