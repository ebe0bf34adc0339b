package payments

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"
)

func testConfig() Config {
	return Config{
		BaseURL:         "https://bot.example.uz/",
		MaskBaseURL:     "https://pay.example.uz",
		LinkSecret:      "test-secret",
		ReturnURL:       "https://t.me/testbot",
		PaymeMerchantID: "merchant-1",
		ClickServiceID:  "svc-1",
		ClickMerchantID: "mrc-1",
	}
}

func TestClickLink(t *testing.T) {
	l := NewLinks(testConfig())

	link := l.ClickLink("plan-1", "user-1", 5555)
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("invalid url: %v", err)
	}
	q := u.Query()
	if q.Get("service_id") != "svc-1" || q.Get("merchant_id") != "mrc-1" {
		t.Fatalf("credentials missing: %s", link)
	}
	if q.Get("amount") != "5555" {
		t.Fatalf("whole amounts must not carry decimals, got %s", q.Get("amount"))
	}
	if q.Get("transaction_param") != "user-1" || q.Get("additional_param3") != "plan-1" {
		t.Fatalf("identifiers missing: %s", link)
	}
}

func TestPaymeLinkMasked(t *testing.T) {
	l := NewLinks(testConfig())

	link, err := l.PaymeLink("plan-1", "user-1", 5555)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "https://pay.example.uz/payme?token=") {
		t.Fatalf("expected masked redirect, got %s", link)
	}

	token := strings.TrimPrefix(link, "https://pay.example.uz/payme?token=")
	planID, userID, amount, ok := l.VerifyToken(token)
	if !ok {
		t.Fatal("token must verify against the issuing secret")
	}
	if planID != "plan-1" || userID != "user-1" || amount != "5555" {
		t.Fatalf("payload mismatch: %s %s %s", planID, userID, amount)
	}

	other := NewLinks(Config{LinkSecret: "other"})
	if _, _, _, ok := other.VerifyToken(token); ok {
		t.Fatal("token must not verify under a different secret")
	}
}

func TestPaymeLinkDirectFallback(t *testing.T) {
	cfg := testConfig()
	cfg.MaskBaseURL = ""
	l := NewLinks(cfg)

	link, err := l.PaymeLink("plan-1", "user-1", 55.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link, "https://checkout.paycom.uz/") {
		t.Fatalf("expected direct checkout URL, got %s", link)
	}

	encoded := strings.TrimPrefix(link, "https://checkout.paycom.uz/")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("params must be base64: %v", err)
	}
	params := string(decoded)
	if !strings.Contains(params, "m=merchant-1") || !strings.Contains(params, "a=5550") {
		t.Fatalf("unexpected params: %s", params)
	}

	cfg.PaymeMerchantID = ""
	if _, err := NewLinks(cfg).PaymeLink("p", "u", 1); err == nil {
		t.Fatal("missing merchant id must error")
	}
}

func TestUzcardLink(t *testing.T) {
	l := NewLinks(testConfig())

	link := l.UzcardLink("plan-1", "user-1", "onetime")
	if !strings.HasPrefix(link, "https://bot.example.uz/api/uzcard-onetime-api/onetime-payment?") {
		t.Fatalf("unexpected endpoint: %s", link)
	}
	u, _ := url.Parse(link)
	q := u.Query()
	if q.Get("userId") != "user-1" || q.Get("planId") != "plan-1" || q.Get("selectedService") != "onetime" {
		t.Fatalf("query params missing: %s", link)
	}
}
