package series

import "testing"

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewDateNormalizes(t *testing.T) {
	// Day 32 of January normalizes to February 1st.
	d := NewDate(2025, 1, 32)
	if got, want := d.String(), "2025-02-01"; got != want {
		t.Errorf("NewDate(2025, 1, 32) = %q, want %q", got, want)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-7-1")
	if err != nil {
		t.Fatalf("ParseDate(2025-7-1) returned error: %v", err)
	}
	if got, want := d.String(), "2025-07-01"; got != want {
		t.Errorf("ParseDate(2025-7-1) = %q, want %q", got, want)
	}

	if _, err := ParseDate("not-a-date"); err == nil {
		t.Errorf("ParseDate(not-a-date) should have failed")
	}
}

func TestAdd(t *testing.T) {
	d := NewDate(2025, 2, 28)
	if got, want := d.Add(1), NewDate(2025, 3, 1); got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
}

func TestCompare(t *testing.T) {
	d1, d2 := NewDate(2025, 1, 1), NewDate(2025, 1, 2)
	if d1.Compare(d2) != -1 || d2.Compare(d1) != 1 || d1.Compare(d1) != 0 {
		t.Errorf("Compare is not a total order on days")
	}
}
