package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"signal_go/internal/domain"
)

var (
	cancelRe     = regexp.MustCompile(`\bANNULLARE\b`)
	parenPriceRe = regexp.MustCompile(`\(\s*(` + priceRe + `)\s*\)`)
	updateRe     = regexp.MustCompile(
		`MODIFICARE\s+IL\s+PREZZO\s+DI\s+INGRESSO\s+DA\s+(` + priceRe + `)\s+A\s+(` + priceRe + `)`)
)

// Parser classifies chat messages into copy-trade commands.
// Classification is pure: no side effects, no order identity.
type Parser struct {
	symbolSuffix string
}

// NewParser creates a parser that appends the given suffix to every
// extracted symbol (e.g. "-STD" for the standard instrument class).
func NewParser(symbolSuffix string) *Parser {
	return &Parser{symbolSuffix: symbolSuffix}
}

// Parse classifies one message. Precedence is fixed: cancel, then update,
// then open; the first matching rule wins. A nil result means the message
// carries no actionable signal and must be ignored.
func (p *Parser) Parse(msg domain.Message) *domain.Command {
	raw := strings.TrimSpace(msg.Text)
	if raw == "" {
		return nil
	}
	text := Normalize(raw)

	// Cancel detection is terminal: once the keyword is present, the
	// message is a cancel or nothing, never a different action.
	if cancelRe.MatchString(text) {
		return p.parseCancel(msg.ID, text)
	}
	if cmd := p.parseUpdate(msg.ID, text); cmd != nil {
		return cmd
	}
	return p.parseOpen(msg.ID, text)
}

// parseCancel handles "ANNULLARE <pending type> <symbol> (<entry>)".
// Pending type, side and symbol must all resolve or no command is built.
func (p *Parser) parseCancel(msgID int64, text string) *domain.Command {
	ptype, okType := extractPendingType(text)
	side, okSide := extractSide(text)
	symbol, okSym := extractSymbol(text, p.symbolSuffix)
	if !okType || !okSide || !okSym {
		return nil
	}

	entry := decimal.Zero
	if m := parenPriceRe.FindStringSubmatch(text); m != nil {
		entry = mustDecimal(m[1])
	}

	return &domain.Command{
		ID:     domain.CommandID(msgID),
		Action: domain.ActionCancel,
		Symbol: symbol,
		Type:   ptype,
		Side:   side,
		Entry:  entry,
		Meta:   meta(msgID, "cancel"),
	}
}

// parseUpdate handles "MODIFICARE IL PREZZO DI INGRESSO DA <old> A <new>".
// Pending type and side fall back to best-effort defaults when the header
// line ("(SELL LIMIT GBP/USD)") is absent; only the symbol is mandatory.
func (p *Parser) parseUpdate(msgID int64, text string) *domain.Command {
	m := updateRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	symbol, ok := extractSymbol(text, p.symbolSuffix)
	if !ok {
		return nil
	}

	ptype, ok := extractPendingType(text)
	if !ok {
		ptype = domain.OrderTypeSellLimit
	}
	side, ok := extractSide(text)
	if !ok {
		side = domain.SideBuy
		if strings.Contains(text, domain.SideSell) {
			side = domain.SideSell
		}
	}

	return &domain.Command{
		ID:       domain.CommandID(msgID),
		Action:   domain.ActionUpdate,
		Symbol:   symbol,
		Type:     ptype,
		Side:     side,
		Entry:    mustDecimal(m[2]),
		OldEntry: mustDecimal(m[1]),
		Meta:     meta(msgID, "update"),
	}
}

// parseOpen distinguishes direct market execution from pending orders.
// Both need a symbol and a side; a pending order additionally needs an
// explicit positive entry price or the message is dropped.
func (p *Parser) parseOpen(msgID int64, text string) *domain.Command {
	symbol, ok := extractSymbol(text, p.symbolSuffix)
	if !ok {
		return nil
	}
	side, ok := extractSide(text)
	if !ok {
		return nil
	}

	ptype, hasPending := extractPendingType(text)
	levels := extractPrices(text)

	if isMarketDirect(text) || (!hasPending && strings.Contains(text, "A MERCATO")) {
		// Market open: entry stays zero, the sentinel for "at current price".
		return &domain.Command{
			ID:     domain.CommandID(msgID),
			Action: domain.ActionOpen,
			Symbol: symbol,
			Type:   domain.OrderTypeMarket,
			Side:   side,
			SL:     levels.SL,
			TP:     levels.TP,
			Meta:   meta(msgID, "market_direct"),
		}
	}

	if hasPending {
		if !levels.Entry.IsPositive() {
			// Never emit a pending order without an explicit entry.
			return nil
		}
		return &domain.Command{
			ID:     domain.CommandID(msgID),
			Action: domain.ActionOpen,
			Symbol: symbol,
			Type:   ptype,
			Side:   side,
			Entry:  levels.Entry,
			SL:     levels.SL,
			TP:     levels.TP,
			Meta:   meta(msgID, "pending"),
		}
	}

	return nil
}

// isMarketDirect matches the explicit direct-execution phrasings:
// "BUY DIRETTA A MERCATO" / "OPERAZIONE IN BUY DIRETTA" styles and
// "ESECUZIONE A MERCATO".
func isMarketDirect(text string) bool {
	if strings.Contains(text, "DIRETTA") && strings.Contains(text, "MERCATO") {
		return true
	}
	return strings.Contains(text, "ESECUZIONE A MERCATO")
}

func meta(msgID int64, kind string) map[string]any {
	return map[string]any{"tg_id": msgID, "kind": kind}
}
