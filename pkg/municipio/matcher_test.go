package municipio

import "testing"

func TestResolveExactAllCatalogEntries(t *testing.T) {
	m := NewMatcher(Hidalgo, DefaultMaxDistance)
	for _, name := range Hidalgo {
		res := m.Resolve(name)
		if res.Kind != MatchExact || res.Name != name {
			t.Errorf("Resolve(%q) = %+v, want exact match on itself", name, res)
		}
	}
}

func TestResolveExactIgnoresAccentsAndCase(t *testing.T) {
	m := NewMatcher(Hidalgo, DefaultMaxDistance)
	tests := []struct {
		input, want string
	}{
		{"pachuca de soto", "Pachuca de Soto"},
		{"  TULANCINGO de bravo ", "Tulancingo de Bravo"},
		{"zimapan", "Zimapán"},
		{"ZACUALTIPAN DE ANGELES", "Zacualtipán de Ángeles"},
	}
	for _, tt := range tests {
		res := m.Resolve(tt.input)
		if res.Kind != MatchExact || res.Name != tt.want {
			t.Errorf("Resolve(%q) = %+v, want Exact(%q)", tt.input, res, tt.want)
		}
	}
}

func TestResolveSuggested(t *testing.T) {
	m := NewMatcher(Hidalgo, 2)

	res := m.Resolve("Pachuca de Sotoo")
	if res.Kind != MatchSuggested || res.Name != "Pachuca de Soto" || res.Distance != 1 {
		t.Errorf("Resolve(Pachuca de Sotoo) = %+v, want Suggested(Pachuca de Soto, 1)", res)
	}

	res = m.Resolve("tizayuka")
	if res.Kind != MatchSuggested || res.Name != "Tizayuca" || res.Distance != 1 {
		t.Errorf("Resolve(tizayuka) = %+v, want Suggested(Tizayuca, 1)", res)
	}
}

func TestResolveNoMatch(t *testing.T) {
	m := NewMatcher(Hidalgo, 2)
	for _, input := range []string{"xyzxyzxyz", "", "   ", "Guadalajara"} {
		res := m.Resolve(input)
		if res.Kind != MatchNone {
			t.Errorf("Resolve(%q) = %+v, want no match", input, res)
		}
	}
}

func TestResolveTieBreaksOnListOrder(t *testing.T) {
	// "bbb" is at distance 1 from both candidates; the first wins.
	m := NewMatcher([]string{"abb", "cbb"}, 2)
	res := m.Resolve("bbb")
	if res.Kind != MatchSuggested || res.Name != "abb" || res.Distance != 1 {
		t.Errorf("Resolve(bbb) = %+v, want Suggested(abb, 1)", res)
	}
}

func TestResolveRespectsBudget(t *testing.T) {
	m := NewMatcher([]string{"pachuca"}, 0)
	if res := m.Resolve("pachuka"); res.Kind != MatchNone {
		t.Errorf("budget 0: Resolve(pachuka) = %+v, want no match", res)
	}
	if res := m.Resolve("pachuca"); res.Kind != MatchExact {
		t.Errorf("budget 0: Resolve(pachuca) = %+v, want exact", res)
	}
}
