package slot

import (
	"fmt"
	"strconv"
)

// Symbol is the identity of the symbol occupying a cell.
type Symbol uint8

const (
	Empty Symbol = iota // hole left by an explosion, only exists until the next collapse
	AA
	BB
	CC
	DD
	EE
	FF
	GG
	HH
	II
	Scatter // SC, pays by count anywhere on the board
	Wild    // WD, transparent connector during detection, never seeds a cluster
)

var symbolCodes = [...]string{
	Empty:   "--",
	AA:      "AA",
	BB:      "BB",
	CC:      "CC",
	DD:      "DD",
	EE:      "EE",
	FF:      "FF",
	GG:      "GG",
	HH:      "HH",
	II:      "II",
	Scatter: "SC",
	Wild:    "WD",
}

// PaySymbols returns the ordinary pay symbols used for baseline fill.
func PaySymbols() []Symbol {
	return []Symbol{AA, BB, CC, DD, EE, FF, GG, HH, II}
}

func (s Symbol) String() string {
	if int(s) < len(symbolCodes) {
		return symbolCodes[s]
	}
	return "?" + strconv.Itoa(int(s))
}

// IsPay reports whether s is an ordinary pay symbol.
func (s Symbol) IsPay() bool {
	return s >= AA && s <= II
}

// ParseSymbol converts a two-letter code ("AA", "WD", "SC") into a Symbol.
func ParseSymbol(code string) (Symbol, error) {
	for i, c := range symbolCodes {
		if c == code {
			return Symbol(i), nil
		}
	}
	return Empty, fmt.Errorf("unknown symbol code %q", code)
}

func (s Symbol) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(s.String())), nil
}

func (s *Symbol) UnmarshalJSON(data []byte) error {
	code, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("symbol: %w", err)
	}
	v, err := ParseSymbol(code)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
