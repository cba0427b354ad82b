package charts

import "testing"

func TestTextsFor(t *testing.T) {
	cases := []struct{ code, wantTitle string }{
		{"en", "Calls count"},
		{"en-US", "Calls count"},
		{"ro", "Număr apeluri"},
		{"ro-MD", "Număr apeluri"},
		{"ro_RO.UTF-8", "Număr apeluri"},
		{"RO-ro", "Număr apeluri"},
		{"de-DE", "Calls count"},
		{"", "Calls count"},
	}
	for _, c := range cases {
		if got := TextsFor(c.code).Title(CallsCount); got != c.wantTitle {
			t.Fatalf("TextsFor(%q) title=%q want %q", c.code, got, c.wantTitle)
		}
	}
}

func TestTitlesAndUnitsCoverEveryBucket(t *testing.T) {
	en := TextsFor("en")
	seen := map[string]bool{}
	for _, b := range Buckets {
		title := en.Title(b)
		if title == "" || seen[title] {
			t.Fatalf("%s: empty or duplicate title %q", b, title)
		}
		seen[title] = true
		s, p := en.Units(b)
		if s == "" || p == "" {
			t.Fatalf("%s: missing units", b)
		}
	}
	if s, p := en.Units(CallTimeTotalErrors); s != "millisecond" || p != "milliseconds" {
		t.Fatalf("total error units: %s/%s", s, p)
	}
}

func TestRegisterTexts(t *testing.T) {
	fr := TextsFor("en")
	fr.CallsCount = "Nombre d'appels"
	RegisterTexts("fr", fr)
	if got := TextsFor("fr-FR").Title(CallsCount); got != "Nombre d'appels" {
		t.Fatalf("registered translation not used: %q", got)
	}
}

func TestLanguagesSorted(t *testing.T) {
	got := Languages()
	want := []string{"en", "en-UK", "en-US", "ro", "ro-MD", "ro-RO"}
	for _, code := range want {
		found := false
		for _, g := range got {
			if g == code {
				found = true
			}
		}
		if !found {
			t.Fatalf("Languages() = %v, missing %s", got, code)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Fatalf("Languages() not sorted: %v", got)
		}
	}
}
