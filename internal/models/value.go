package models

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type Kind uint8

const (
	KindAbsent Kind = iota
	KindNumber
	KindString
)

// numberRe accepts plain decimal and exponent notation only, so values like
// "NaN", "Inf" or "0x1p-2" stay raw text the way a spreadsheet would show them.
var numberRe = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

// Value is a loosely-typed field: absent, a number, or raw text.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Parse applies dynamic typing to a cell: blank -> absent, numeric text -> number,
// anything else is kept verbatim.
func Parse(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Value{}
	}
	if numberRe.MatchString(trimmed) {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) {
			return Number(f)
		}
	}
	return String(s)
}

// Float returns the numeric value and whether the field holds a finite number.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber || math.IsNaN(v.Num) || math.IsInf(v.Num, 0) {
		return 0, false
	}
	return v.Num, true
}

func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent
}

// String renders the raw display form of the value.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	default:
		return ""
	}
}

// Fixed renders numbers with the given number of decimals and passes
// everything else through unformatted.
func (v Value) Fixed(decimals int) string {
	if f, ok := v.Float(); ok {
		return strconv.FormatFloat(f, 'f', decimals, 64)
	}
	return v.String()
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		if f, ok := v.Float(); ok {
			return json.Marshal(f)
		}
		return []byte("null"), nil
	case KindString:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}
