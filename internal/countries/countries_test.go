package countries

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Run("resolves canonical names", func(t *testing.T) {
		c, err := Resolve("China")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.CensusCode != "5700" {
			t.Errorf("expected census code 5700, got %s", c.CensusCode)
		}
		if c.ISO3 != "CHN" {
			t.Errorf("expected ISO3 CHN, got %s", c.ISO3)
		}
	})

	t.Run("is case and whitespace insensitive", func(t *testing.T) {
		c, err := Resolve("  south   KOREA ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Name != "South Korea" {
			t.Errorf("expected South Korea, got %s", c.Name)
		}
	})

	t.Run("folds census spellings onto canonical names", func(t *testing.T) {
		cases := map[string]string{
			"Korea, South":       "South Korea",
			"Russian Federation": "Russia",
			"Viet Nam":           "Vietnam",
		}
		for input, want := range cases {
			c, err := Resolve(input)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", input, err)
			}
			if c.Name != want {
				t.Errorf("Resolve(%q) = %s, want %s", input, c.Name, want)
			}
		}
	})

	t.Run("rejects unsupported countries", func(t *testing.T) {
		_, err := Resolve("Atlantis")
		if !errors.Is(err, ErrUnknownCountry) {
			t.Errorf("expected ErrUnknownCountry, got %v", err)
		}
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := Resolve("   ")
		if !errors.Is(err, ErrUnknownCountry) {
			t.Errorf("expected ErrUnknownCountry, got %v", err)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	for _, c := range All() {
		resolved, err := Resolve(c.Name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", c.Name, err)
		}

		back, ok := ByCensusCode(resolved.CensusCode)
		if !ok {
			t.Fatalf("ByCensusCode(%q) not found", resolved.CensusCode)
		}
		if back.Name != c.Name {
			t.Errorf("census round trip %q -> %q", c.Name, back.Name)
		}

		back, ok = ByISO3(resolved.ISO3)
		if !ok {
			t.Fatalf("ByISO3(%q) not found", resolved.ISO3)
		}
		if back.Name != c.Name {
			t.Errorf("iso3 round trip %q -> %q", c.Name, back.Name)
		}
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 13 {
		t.Fatalf("expected 13 supported countries, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Errorf("All() not sorted: %s before %s", all[i-1].Name, all[i].Name)
		}
	}
}
