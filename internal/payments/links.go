// Package payments builds provider checkout links for the one-time
// access plan. Providers process the payment on their side; the bot only
// hands out redirect URLs.
package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math"
	"net/url"
	"strings"
)

const paymeCheckoutURL = "https://checkout.paycom.uz"

// Config holds provider credentials and link settings.
type Config struct {
	BaseURL         string `yaml:"base_url" envconfig:"PAYMENT_BASE_URL"`
	MaskBaseURL     string `yaml:"mask_base_url" envconfig:"PAYMENT_MASK_BASE_URL"`
	LinkSecret      string `yaml:"link_secret" envconfig:"PAYMENT_LINK_SECRET"`
	ReturnURL       string `yaml:"return_url" envconfig:"PAYMENT_RETURN_URL"`
	PaymeMerchantID string `yaml:"payme_merchant_id" envconfig:"PAYME_MERCHANT_ID"`
	ClickServiceID  string `yaml:"click_service_id" envconfig:"CLICK_SERVICE_ID"`
	ClickMerchantID string `yaml:"click_merchant_id" envconfig:"CLICK_MERCHANT_ID"`
}

// Links generates provider URLs from the configured credentials.
type Links struct {
	cfg Config
}

// NewLinks builds a link generator.
func NewLinks(cfg Config) *Links {
	return &Links{cfg: cfg}
}

// ClickLink builds the Click one-time checkout URL.
func (l *Links) ClickLink(planID, userID string, amount float64) string {
	q := url.Values{}
	q.Set("service_id", l.cfg.ClickServiceID)
	q.Set("merchant_id", l.cfg.ClickMerchantID)
	q.Set("amount", formatAmount(amount))
	q.Set("transaction_param", userID)
	q.Set("additional_param3", planID)
	if l.cfg.ReturnURL != "" {
		q.Set("return_url", l.cfg.ReturnURL)
	}
	return "https://my.click.uz/services/pay?" + q.Encode()
}

// PaymeLink prefers a masked redirect carrying a signed token so the raw
// provider parameters stay off the wire. Without mask settings it falls
// back to the direct checkout URL with base64-encoded parameters.
func (l *Links) PaymeLink(planID, userID string, amount float64) (string, error) {
	if l.cfg.MaskBaseURL != "" && l.cfg.LinkSecret != "" {
		token := l.signedToken(planID, userID, amount)
		return strings.TrimSuffix(l.cfg.MaskBaseURL, "/") + "/payme?token=" + token, nil
	}
	return l.paymeProviderURL(planID, userID, amount)
}

func (l *Links) paymeProviderURL(planID, userID string, amount float64) (string, error) {
	if l.cfg.PaymeMerchantID == "" {
		return "", fmt.Errorf("payme merchant id is not configured")
	}

	amountInTiyns := int64(math.Round(amount * 100))
	params := fmt.Sprintf("m=%s;ac.plan_id=%s;ac.user_id=%s;ac.selected_service=%s;a=%d;c=%s",
		l.cfg.PaymeMerchantID, planID, userID, planID, amountInTiyns,
		url.QueryEscape(l.cfg.ReturnURL))
	encoded := base64.StdEncoding.EncodeToString([]byte(params))
	return paymeCheckoutURL + "/" + encoded, nil
}

// UzcardLink points at the self-hosted UzCard onetime API endpoint.
func (l *Links) UzcardLink(planID, userID, selectedService string) string {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("planId", planID)
	q.Set("selectedService", selectedService)
	return strings.TrimSuffix(l.cfg.BaseURL, "/") + "/api/uzcard-onetime-api/onetime-payment?" + q.Encode()
}

// signedToken binds plan, user and amount with an HMAC so the masked
// redirect endpoint can verify the parameters were not tampered with.
func (l *Links) signedToken(planID, userID string, amount float64) string {
	payload := fmt.Sprintf("%s|%s|%s", planID, userID, formatAmount(amount))
	mac := hmac.New(sha256.New, []byte(l.cfg.LinkSecret))
	mac.Write([]byte(payload))
	sig := mac.Sum(nil)
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." +
		base64.RawURLEncoding.EncodeToString(sig)
}

// VerifyToken checks a signed token and returns its payload parts.
func (l *Links) VerifyToken(token string) (planID, userID, amount string, ok bool) {
	payloadPart, sigPart, found := strings.Cut(token, ".")
	if !found {
		return "", "", "", false
	}
	payload, err := base64.RawURLEncoding.DecodeString(payloadPart)
	if err != nil {
		return "", "", "", false
	}
	sig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return "", "", "", false
	}

	mac := hmac.New(sha256.New, []byte(l.cfg.LinkSecret))
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return "", "", "", false
	}

	parts := strings.Split(string(payload), "|")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func formatAmount(amount float64) string {
	if amount == math.Trunc(amount) {
		return fmt.Sprintf("%d", int64(amount))
	}
	return fmt.Sprintf("%.2f", amount)
}
