package prefs

import "testing"

// TestOpen verifies that the store initializes with the embedded schema
// against an in-memory SQLite instance.
func TestOpen(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer s.Close()
}

func TestGetSetRoundTrip(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	// Unset key reads as empty.
	if v, err := s.Get(KeyLocale); err != nil || v != "" {
		t.Fatalf("Get unset = %q, %v", v, err)
	}

	if err := s.Set(KeyLocale, "ja"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, err := s.Get(KeyLocale); err != nil || v != "ja" {
		t.Errorf("Get = %q, %v; want ja", v, err)
	}

	// Set replaces the prior value.
	if err := s.Set(KeyLocale, "zh"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := s.Get(KeyLocale); v != "zh" {
		t.Errorf("Get after overwrite = %q, want zh", v)
	}
}

func TestReadingLogOrder(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	for _, key := range []string{"emergence", "rule-30", "game-of-life"} {
		if err := s.LogReading(key, "en"); err != nil {
			t.Fatalf("LogReading(%s) failed: %v", key, err)
		}
	}

	entries, err := s.RecentReadings(2)
	if err != nil {
		t.Fatalf("RecentReadings failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ChapterKey != "game-of-life" {
		t.Errorf("newest entry = %s, want game-of-life", entries[0].ChapterKey)
	}
	if entries[1].ChapterKey != "rule-30" {
		t.Errorf("second entry = %s, want rule-30", entries[1].ChapterKey)
	}
}

func TestNopStore(t *testing.T) {
	var s Store = NopStore{}
	if err := s.Set(KeyLocale, "ja"); err != nil {
		t.Fatalf("NopStore.Set failed: %v", err)
	}
	if v, err := s.Get(KeyLocale); err != nil || v != "" {
		t.Errorf("NopStore.Get = %q, %v", v, err)
	}
}
