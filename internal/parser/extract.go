package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"signal_go/internal/domain"
)

const priceRe = `\d+(?:\.\d+)?`

var (
	symbolPairRe = regexp.MustCompile(`\b([A-Z]{3})(?:\s*/\s*|\s+)([A-Z]{3})\b`)
	symbolBareRe = regexp.MustCompile(`\b([A-Z]{6})\b`)

	entryRe = regexp.MustCompile(`PREZZO\s+(` + priceRe + `)`)
	slRe    = regexp.MustCompile(`(?s)STOP\s*LOSS.*?\b(` + priceRe + `)\b`)
	tpRe    = regexp.MustCompile(`(?s)TAKE\s*PROFIT.*?\b(` + priceRe + `)\b`)
)

// extractSymbol finds an instrument code in normalized text, in two tiers:
// first a separated three/three currency pair ("CAD/CHF", "CAD / CHF",
// "CAD CHF"), then a bare six-letter token ("CADCHF"). A pair anywhere in
// the text beats a bare token. The configured suffix is appended on match.
func extractSymbol(text, suffix string) (string, bool) {
	if m := symbolPairRe.FindStringSubmatch(text); m != nil {
		return m[1] + m[2] + suffix, true
	}
	if m := symbolBareRe.FindStringSubmatch(text); m != nil {
		return m[1] + suffix, true
	}
	return "", false
}

// extractSide resolves BUY/SELL from normalized text. When both tokens
// appear, the leftmost occurrence wins.
func extractSide(text string) (string, bool) {
	iBuy := strings.Index(text, domain.SideBuy)
	iSell := strings.Index(text, domain.SideSell)
	switch {
	case iBuy >= 0 && iSell < 0:
		return domain.SideBuy, true
	case iSell >= 0 && iBuy < 0:
		return domain.SideSell, true
	case iBuy >= 0 && iSell >= 0:
		if iBuy < iSell {
			return domain.SideBuy, true
		}
		return domain.SideSell, true
	}
	return "", false
}

// extractPendingType matches the four fixed pending-order phrases.
// No match means the message is a candidate for market execution or noise.
func extractPendingType(text string) (string, bool) {
	switch {
	case strings.Contains(text, "BUY LIMIT"):
		return domain.OrderTypeBuyLimit, true
	case strings.Contains(text, "SELL LIMIT"):
		return domain.OrderTypeSellLimit, true
	case strings.Contains(text, "BUY STOP"):
		return domain.OrderTypeBuyStop, true
	case strings.Contains(text, "SELL STOP"):
		return domain.OrderTypeSellStop, true
	}
	return "", false
}

// priceLevels holds the labeled numeric fields of an open signal.
// A zero value means the label was absent.
type priceLevels struct {
	Entry decimal.Decimal
	SL    decimal.Decimal
	TP    decimal.Decimal
}

// extractPrices pulls the labeled entry / stop-loss / take-profit values.
// Stop-loss and take-profit searches may span line breaks.
func extractPrices(text string) priceLevels {
	var levels priceLevels
	if m := entryRe.FindStringSubmatch(text); m != nil {
		levels.Entry = mustDecimal(m[1])
	}
	if m := slRe.FindStringSubmatch(text); m != nil {
		levels.SL = mustDecimal(m[1])
	}
	if m := tpRe.FindStringSubmatch(text); m != nil {
		levels.TP = mustDecimal(m[1])
	}
	return levels
}

// mustDecimal parses a regex-validated number. The patterns only capture
// digit strings, so a parse failure cannot happen; fall back to zero anyway.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
