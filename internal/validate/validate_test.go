package validate_test

import (
	"testing"

	"matamazon/internal/validate"
)

func TestID(t *testing.T) {
	if n, ok := validate.ID(" 42 "); !ok || n != 42 {
		t.Fatalf("got %d %v", n, ok)
	}
	for _, s := range []string{"", "-1", "+1", "1.5", "true", "False", "1e3", "abc"} {
		if _, ok := validate.ID(s); ok {
			t.Fatalf("%q should not parse as id", s)
		}
	}
}

func TestPrice(t *testing.T) {
	if v, ok := validate.Price("129.99"); !ok || v != 129.99 {
		t.Fatalf("got %v %v", v, ok)
	}
	if v, ok := validate.Price("5"); !ok || v != 5 {
		t.Fatalf("got %v %v", v, ok)
	}
	for _, s := range []string{"", "-1", "-0.5", "true", "5.", ".5", "NaN", "Inf"} {
		if _, ok := validate.Price(s); ok {
			t.Fatalf("%q should not parse as price", s)
		}
	}
}

func TestText(t *testing.T) {
	if got := validate.Text("New/York_City"); got != "New York City" {
		t.Fatalf("got %q", got)
	}
}

func TestQ(t *testing.T) {
	if _, ok := validate.Q("   "); ok {
		t.Fatal("blank query should fail")
	}
	q, ok := validate.Q("  phone  ")
	if !ok || q != "phone" {
		t.Fatalf("got %q %v", q, ok)
	}
}
