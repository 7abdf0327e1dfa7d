package comprovante

import (
	"regexp"
	"strings"
)

// variant describes how to recognize one receipt layout and where its
// date and payee fields live. Variants are evaluated in priority order,
// first match wins.
type variant struct {
	docType DocumentType
	matches func(text string) bool
	dateRe  *regexp.Regexp
	payeeRe *regexp.Regexp
}

var variants = []variant{
	{
		docType: TypeBoleto,
		matches: func(text string) bool {
			return strings.Contains(text, "Boleto") || strings.Contains(text, "Data de débito:")
		},
		dateRe:  regexp.MustCompile(`Data de débito:\s*(\d{2}/\d{2}/\d{4})`),
		payeeRe: regexp.MustCompile(`Nome do beneficiário:\s*(.+)`),
	},
	{
		docType: TypeTED,
		matches: func(text string) bool {
			return strings.Contains(text, "TED") && strings.Contains(text, "Transferência")
		},
		dateRe:  regexp.MustCompile(`Data/Hora:\s*(\d{2}/\d{2}/\d{4})`),
		payeeRe: regexp.MustCompile(`Favorecido:\s*(.+)`),
	},
	{
		docType: TypePIX,
		matches: func(text string) bool {
			return strings.Contains(text, "PIX")
		},
		dateRe: regexp.MustCompile(`Data/Hora:\s*(\d{2}/\d{2}/\d{4})`),
		// The payee sits under a "Informações do Destinatário" section
		// whose "Nome:" label may be lines below it, so this capture
		// deliberately spans newlines up to the next line break or CPF
		// label.
		payeeRe: regexp.MustCompile(`(?s)Informações do Destinatário.*?Nome:\s*(.+?)(?:\n|CPF)`),
	},
}

// Classify determines the receipt layout of the given first-page text and
// extracts the transaction date and payee name. The date comes back as
// DD-MM-YYYY. Fields that cannot be found are left empty; text matching no
// known layout yields TypeUnknown with both fields empty.
func Classify(text string) Extraction {
	for _, v := range variants {
		if !v.matches(text) {
			continue
		}

		ext := Extraction{Type: v.docType}
		if m := v.dateRe.FindStringSubmatch(text); m != nil {
			ext.Date = strings.ReplaceAll(m[1], "/", "-")
		}
		if m := v.payeeRe.FindStringSubmatch(text); m != nil {
			ext.Payee = strings.TrimSpace(m[1])
		}
		return ext
	}

	return Extraction{Type: TypeUnknown}
}
