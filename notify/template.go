// Package notify formats and delivers customer-facing messages over the
// WhatsApp gateway, falling back to SMS when the gateway is not configured.
package notify

import (
	"fmt"
	"strings"
)

type MessageType string

const (
	TypeWelcome         MessageType = "welcome"
	TypePaymentReminder MessageType = "payment"
	TypeRenewal         MessageType = "renewal"
)

// TemplateData carries the customer fields the templates interpolate.
type TemplateData struct {
	Name         string
	Gender       string
	Fee          float64
	RegisterDate string
	ExpireDate   string
}

// Honorific returns the salutation used in every template: Mudane for men,
// Marwo for women.
func Honorific(gender string) string {
	if strings.EqualFold(gender, "male") {
		return "Mudane"
	}
	return "Marwo"
}

// BuildMessage renders the fixed template for a message type.
func BuildMessage(msgType MessageType, data TemplateData) (string, error) {
	title := Honorific(data.Gender)

	switch msgType {
	case TypeWelcome:
		return fmt.Sprintf("*%s, %s,* \n\nKusoo Dhawoow LIBAAX FITNESS, GYM-ka ugu casrisan ee ku yaala magaaladda Burco.\n\n*Taariikhda Diiwaan Gelinta:* %s\n\nFarxad gaar ah ayay noo tahay in aad kamid noqoto Bahda Libaax Fitness.\n\n *Nidaamkan waxa hirgaliyay shirkada adeegyada tiknoolajiga ee TAAM SOLUTIONS.*",
			title, data.Name, data.RegisterDate), nil

	case TypePaymentReminder:
		return fmt.Sprintf("*Ogaysiiska Lacag Bixinta!* \n\n%s %s,\n\nWaxa ay gaadhay wakhtigii ay kaa dhici lahayd lacagta Subscription-ka ee Bisha, fadlan dib u cusboonaysii mar kale.\n\n *Nidaamkan waxa hirgaliyay shirkada adeegyada tiknoolajiga ee TAAM SOLUTIONS.*",
			title, data.Name), nil

	case TypeRenewal:
		expire := data.ExpireDate
		if expire == "" {
			expire = "1 bil gudahood"
		}
		return fmt.Sprintf("*Mahadsanid %s %s!* \n\nWaxaad si buuxda u cusboonaysiisay Subscription-ka GYM-ka Libaax Fitness.\n\n*Macluumaadka Cusboonaysiinta:*\n        Lacagta: $%.0f\n        Taariikhda Dhamaadka: %s\n\nWaad ku mahadsan tahay inaad kamid tahay Bahda Libaax Fitness! \n\n *Nidaamkan waxa hirgaliyay shirkada adeegyada tiknoolajiga ee TAAM SOLUTIONS.*",
			title, data.Name, data.Fee, expire), nil
	}

	return "", fmt.Errorf("notify: unknown message type %q", msgType)
}

// NormalizePhone reduces a phone number to digits and prefixes the Somali
// country code: a leading 0 becomes 252, an existing 252 is kept, anything
// else gets 252 prepended.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	cleaned := digits.String()

	switch {
	case cleaned == "":
		return ""
	case strings.HasPrefix(cleaned, "0"):
		return "252" + cleaned[1:]
	case strings.HasPrefix(cleaned, "252"):
		return cleaned
	default:
		return "252" + cleaned
	}
}
