package conversation

import "testing"

func TestParseTokenPaymentPipe(t *testing.T) {
	token, ok := ParseToken("onetime|payme")
	if !ok {
		t.Fatal("expected payment token to parse")
	}
	if token.Provider != ProviderPayme {
		t.Fatalf("provider = %q, want payme", token.Provider)
	}
	if token.Namespace != "" || token.Legacy != "" {
		t.Fatalf("payment token leaked into other fields: %+v", token)
	}
}

func TestParseTokenPipeBeforeNamespace(t *testing.T) {
	// The pipe form wins even when the payload could look namespaced.
	token, ok := ParseToken("onetime|menu:main")
	if !ok {
		t.Fatal("expected token to parse")
	}
	if token.Provider != "menu:main" {
		t.Fatalf("provider = %q, want raw pipe remainder", token.Provider)
	}
	if ValidProvider(token.Provider) {
		t.Fatal("garbage provider must not validate")
	}
}

func TestParseTokenNamespaced(t *testing.T) {
	cases := []struct {
		data string
		ns   Namespace
		args []string
	}{
		{"menu:personal", NamespaceMenu, []string{"personal"}},
		{"filter:combo:symbolic_leadership:girl", NamespaceFilter, []string{"combo", "symbolic_leadership", "girl"}},
		{"quiz:answer:temper:calm", NamespaceQuiz, []string{"answer", "temper", "calm"}},
		{"fav:list:2", NamespaceFav, []string{"list", "2"}},
		{"personal:focus:done", NamespacePersonal, []string{"focus", "done"}},
		{"name:detail:zuhra", NamespaceName, []string{"detail", "zuhra"}},
		{"trend:overview:yearly:boy", NamespaceTrend, []string{"overview", "yearly", "boy"}},
		{"community:poll", NamespaceCommunity, []string{"poll"}},
	}
	for _, tc := range cases {
		token, ok := ParseToken(tc.data)
		if !ok {
			t.Errorf("ParseToken(%q) not recognized", tc.data)
			continue
		}
		if token.Namespace != tc.ns {
			t.Errorf("ParseToken(%q) namespace = %q, want %q", tc.data, token.Namespace, tc.ns)
		}
		if len(token.Args) != len(tc.args) {
			t.Errorf("ParseToken(%q) args = %v, want %v", tc.data, token.Args, tc.args)
			continue
		}
		for i := range tc.args {
			if token.Args[i] != tc.args[i] {
				t.Errorf("ParseToken(%q) arg[%d] = %q, want %q", tc.data, i, token.Args[i], tc.args[i])
			}
		}
	}
}

func TestParseTokenLegacyKeys(t *testing.T) {
	for _, key := range []string{LegacyNameMeaning, LegacyOnetimePayment, LegacyMainMenu} {
		token, ok := ParseToken(key)
		if !ok {
			t.Errorf("legacy key %q not recognized", key)
			continue
		}
		if token.Legacy != key {
			t.Errorf("ParseToken(%q).Legacy = %q", key, token.Legacy)
		}
	}
}

func TestParseTokenUnknown(t *testing.T) {
	for _, data := range []string{"", "bogus", "unknown:thing", "main_menu_extra", "onetime"} {
		if _, ok := ParseToken(data); ok {
			t.Errorf("ParseToken(%q) should not parse", data)
		}
		if Recognizes(data) {
			t.Errorf("Recognizes(%q) should be false", data)
		}
	}
}

func TestTokenArgFallback(t *testing.T) {
	token, _ := ParseToken("fav:list")
	if got := token.Arg(1, "1"); got != "1" {
		t.Fatalf("Arg(1) fallback = %q, want 1", got)
	}
	token, _ = ParseToken("fav:list::3")
	if got := token.Arg(1, "1"); got != "1" {
		t.Fatalf("empty arg should fall back, got %q", got)
	}
	if got := token.Arg(2, ""); got != "3" {
		t.Fatalf("Arg(2) = %q, want 3", got)
	}
}
