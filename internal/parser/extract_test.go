package parser

import (
	"testing"

	"signal_go/internal/domain"
)

func TestExtractSymbol(t *testing.T) {
	t.Run("slash pair", func(t *testing.T) {
		sym, ok := extractSymbol("BUY LIMIT CAD/CHF", "-STD")
		if !ok || sym != "CADCHF-STD" {
			t.Errorf("expected CADCHF-STD, got %q (ok=%v)", sym, ok)
		}
	})

	t.Run("pair with spaces around slash", func(t *testing.T) {
		sym, ok := extractSymbol("SELL GBP / USD", "-STD")
		if !ok || sym != "GBPUSD-STD" {
			t.Errorf("expected GBPUSD-STD, got %q (ok=%v)", sym, ok)
		}
	})

	t.Run("pair beats earlier six letter word", func(t *testing.T) {
		sym, ok := extractSymbol("SIGNAL BUY LIMIT EUR/USD PREZZO 1.09000", "-STD")
		if !ok || sym != "EURUSD-STD" {
			t.Errorf("expected EURUSD-STD, got %q (ok=%v)", sym, ok)
		}
	})

	t.Run("unseparated token is not a pair", func(t *testing.T) {
		// "CADCHF" must fall through to the bare-token tier, not match
		// the pair pattern.
		if m := symbolPairRe.FindStringSubmatch("CADCHF"); m != nil {
			t.Errorf("pair pattern matched %v", m)
		}
		sym, ok := extractSymbol("CADCHF", "-STD")
		if !ok || sym != "CADCHF-STD" {
			t.Errorf("expected CADCHF-STD, got %q (ok=%v)", sym, ok)
		}
	})

	t.Run("bare six letter token", func(t *testing.T) {
		sym, ok := extractSymbol("SELL STOP AUDUSD", "-STD")
		if !ok || sym != "AUDUSD-STD" {
			t.Errorf("expected AUDUSD-STD, got %q (ok=%v)", sym, ok)
		}
	})

	t.Run("no symbol", func(t *testing.T) {
		if sym, ok := extractSymbol("SL HIT. WE WAIT", ""); ok {
			t.Errorf("expected no symbol, got %q", sym)
		}
	})

	t.Run("suffix always appended", func(t *testing.T) {
		sym, _ := extractSymbol("XAU/USD", "-ECN")
		if sym != "XAUUSD-ECN" {
			t.Errorf("expected XAUUSD-ECN, got %q", sym)
		}
	})
}

func TestExtractSide(t *testing.T) {
	t.Run("buy only", func(t *testing.T) {
		side, ok := extractSide("BUY LIMIT EUR/USD")
		if !ok || side != domain.SideBuy {
			t.Errorf("expected BUY, got %q", side)
		}
	})

	t.Run("sell only", func(t *testing.T) {
		side, ok := extractSide("SELL STOP EUR/USD")
		if !ok || side != domain.SideSell {
			t.Errorf("expected SELL, got %q", side)
		}
	})

	t.Run("both present leftmost wins", func(t *testing.T) {
		side, _ := extractSide("SELL NOW. DO NOT BUY")
		if side != domain.SideSell {
			t.Errorf("expected SELL (leftmost), got %q", side)
		}
		side, _ = extractSide("BUY NOW. DO NOT SELL")
		if side != domain.SideBuy {
			t.Errorf("expected BUY (leftmost), got %q", side)
		}
	})

	t.Run("neither present", func(t *testing.T) {
		if side, ok := extractSide("EUR/USD LOOKS INTERESTING"); ok {
			t.Errorf("expected no side, got %q", side)
		}
	})
}

func TestExtractPendingType(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"BUY LIMIT CAD/CHF", domain.OrderTypeBuyLimit},
		{"SELL LIMIT GBP/USD", domain.OrderTypeSellLimit},
		{"BUY STOP EUR/USD", domain.OrderTypeBuyStop},
		{"SELL STOP AUDUSD", domain.OrderTypeSellStop},
	}
	for _, c := range cases {
		got, ok := extractPendingType(c.text)
		if !ok || got != c.want {
			t.Errorf("%q: expected %s, got %q", c.text, c.want, got)
		}
	}

	if got, ok := extractPendingType("BUY DIRETTA A MERCATO CAD/CHF"); ok {
		t.Errorf("expected no pending type, got %q", got)
	}
}

func TestExtractPrices(t *testing.T) {
	t.Run("all labels present across lines", func(t *testing.T) {
		text := Normalize("Buy Limit CAD/CHF\nPrezzo 0,66930\nStop Loss\n0.66500\nTake Profit 0.67800")
		levels := extractPrices(text)
		if levels.Entry.String() != "0.6693" {
			t.Errorf("entry: expected 0.6693, got %s", levels.Entry)
		}
		if levels.SL.String() != "0.665" {
			t.Errorf("sl: expected 0.665, got %s", levels.SL)
		}
		if levels.TP.String() != "0.678" {
			t.Errorf("tp: expected 0.678, got %s", levels.TP)
		}
	})

	t.Run("missing labels default to zero", func(t *testing.T) {
		levels := extractPrices("BUY LIMIT EUR/USD")
		if !levels.Entry.IsZero() || !levels.SL.IsZero() || !levels.TP.IsZero() {
			t.Errorf("expected all zero, got %+v", levels)
		}
	})
}
