package utils

import "testing"

func TestParseOptionalFloat(t *testing.T) {
	got, err := ParseOptionalFloat("price", nil)
	if err != nil || got != nil {
		t.Fatalf("nil should be absent, got %v / %v", got, err)
	}

	got, err = ParseOptionalFloat("price", 42.5)
	if err != nil || got == nil || *got != 42.5 {
		t.Fatalf("expected 42.5, got %v / %v", got, err)
	}

	got, err = ParseOptionalFloat("price", "19.99")
	if err != nil || got == nil || *got != 19.99 {
		t.Fatalf("expected 19.99 from string, got %v / %v", got, err)
	}

	got, err = ParseOptionalFloat("price", "")
	if err != nil || got != nil {
		t.Fatalf("empty string should be absent, got %v / %v", got, err)
	}

	if _, err = ParseOptionalFloat("price", "abc"); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
	if _, err = ParseOptionalFloat("price", true); err == nil {
		t.Fatal("expected error for bool")
	}
	if _, err = ParseOptionalFloat("price", map[string]interface{}{}); err == nil {
		t.Fatal("expected error for object")
	}
}

func TestParseOptionalInt(t *testing.T) {
	got, err := ParseOptionalInt("passengers", nil)
	if err != nil || got != nil {
		t.Fatalf("nil should be absent, got %v / %v", got, err)
	}

	got, err = ParseOptionalInt("passengers", float64(3))
	if err != nil || got == nil || *got != 3 {
		t.Fatalf("expected 3, got %v / %v", got, err)
	}

	got, err = ParseOptionalInt("passengers", "2")
	if err != nil || got == nil || *got != 2 {
		t.Fatalf("expected 2 from string, got %v / %v", got, err)
	}

	if _, err = ParseOptionalInt("passengers", "two"); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
}

func TestGenerateRandomString(t *testing.T) {
	s := GenerateRandomString(16)
	if len(s) != 16 {
		t.Fatalf("expected length 16, got %d", len(s))
	}
	if s == GenerateRandomString(16) {
		t.Fatal("two random strings should differ")
	}
}
