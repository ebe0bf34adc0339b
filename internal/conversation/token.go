// Package conversation implements the session-scoped engine behind the
// bot: callback dispatch, the personalization wizard, the mini quiz, and
// the free-text name lookup. Delivery is abstracted behind the View
// interface so the engine stays transport-free.
package conversation

import "strings"

// Namespace identifies a callback token family. Dispatch is an
// exhaustive switch over this type; adding a namespace means touching
// the switch, which is intentional.
type Namespace string

const (
	NamespaceMenu      Namespace = "menu"
	NamespaceFilter    Namespace = "filter"
	NamespaceQuiz      Namespace = "quiz"
	NamespaceFav       Namespace = "fav"
	NamespacePersonal  Namespace = "personal"
	NamespaceName      Namespace = "name"
	NamespaceTrend     Namespace = "trend"
	NamespaceCommunity Namespace = "community"
)

// Legacy flat keys predate the namespaced grammar and are matched
// against the whole token.
const (
	LegacyNameMeaning    = "name_meaning"
	LegacyOnetimePayment = "onetime_payment"
	LegacyMainMenu       = "main_menu"
)

const paymentPrefix = "onetime|"

// Payment providers accepted after the onetime pipe.
const (
	ProviderUzcard = "uzcard"
	ProviderPayme  = "payme"
	ProviderClick  = "click"
)

// Token is a parsed callback payload. Exactly one of Provider,
// Namespace or Legacy is set.
type Token struct {
	Provider  string
	Namespace Namespace
	Args      []string
	Legacy    string
}

// ParseToken splits a raw callback payload into the token grammar.
// The payment pipe form is checked before the namespaced form, so
// "onetime|payme" never parses as a namespace. Unknown payloads return
// ok=false and are left to the router's fallback ack.
func ParseToken(data string) (Token, bool) {
	if provider, found := strings.CutPrefix(data, paymentPrefix); found {
		return Token{Provider: provider}, true
	}

	parts := strings.Split(data, ":")
	switch Namespace(parts[0]) {
	case NamespaceMenu, NamespaceFilter, NamespaceQuiz, NamespaceFav,
		NamespacePersonal, NamespaceName, NamespaceTrend, NamespaceCommunity:
		return Token{Namespace: Namespace(parts[0]), Args: parts[1:]}, true
	}

	switch data {
	case LegacyNameMeaning, LegacyOnetimePayment, LegacyMainMenu:
		return Token{Legacy: data}, true
	}

	return Token{}, false
}

// Recognizes reports whether the payload belongs to the engine's grammar.
func Recognizes(data string) bool {
	_, ok := ParseToken(data)
	return ok
}

// Arg returns the positional argument at i, or the fallback when absent
// or empty.
func (t Token) Arg(i int, fallback string) string {
	if i < len(t.Args) && t.Args[i] != "" {
		return t.Args[i]
	}
	return fallback
}

// ValidProvider reports whether the payment provider is known.
func ValidProvider(provider string) bool {
	switch provider {
	case ProviderUzcard, ProviderPayme, ProviderClick:
		return true
	}
	return false
}
