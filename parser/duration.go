package parser

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/asciitab/tabulator/model"
)

var multibarCoreRe = regexp.MustCompile(`^([WHQESTXawhqestx])x(\d+)$`)

// maybeParseDurationAt tries to recognize a duration token starting exactly
// at s[idx]: optional "+" tie prefix, one duration symbol, up to two dots,
// and an "x<n>" multi-measure-rest suffix on an undotted W. Returns (nil, 0)
// when no token starts there.
func maybeParseDurationAt(s string, idx int) (*model.DurationToken, int) {
	if idx >= len(s) {
		return nil, 0
	}

	c := s[idx]
	var raw string
	var k int
	switch {
	case c == '+':
		if idx+1 < len(s) && isDurationSymbol(s[idx+1]) {
			raw = s[idx : idx+2]
			k = idx + 2
		} else {
			return nil, 0
		}
	case isDurationSymbol(c):
		raw = s[idx : idx+1]
		k = idx + 1
	default:
		return nil, 0
	}

	for k < len(s) && s[k] == '.' {
		raw += "."
		k++
	}

	last := raw[len(raw)-1]
	if (last == 'W' || last == 'w') && k < len(s) && s[k] == 'x' {
		if m := multibarRe.FindString(s[k:]); m != "" {
			raw += m
			k += len(m)
		}
	}

	consumed := k - idx
	if consumed < 1 {
		consumed = 1
	}
	tok := parseDurationToken(raw)
	return &tok, consumed
}

func parseDurationToken(raw string) model.DurationToken {
	tie := strings.HasPrefix(raw, "+")
	core := raw
	if tie {
		core = raw[1:]
	}
	dotted := strings.Count(core, ".")
	coreNoDot := strings.ReplaceAll(core, ".", "")

	symbol := coreNoDot[:1]
	multibar := 0
	if m := multibarCoreRe.FindStringSubmatch(coreNoDot); m != nil && strings.ToUpper(m[1]) == "W" {
		symbol = m[1]
		multibar, _ = strconv.Atoi(m[2])
	}

	sym := symbol[0]
	return model.DurationToken{
		Raw:           raw,
		Symbol:        symbol,
		Dotted:        dotted,
		Tie:           tie,
		Staccato:      sym >= 'a' && sym <= 'z',
		Grace:         sym == 'a',
		MultibarRests: multibar,
	}
}

// durationTokenBeats resolves a token to quarter-note beats. Dots extend the
// base, a lowercase (staccato) symbol halves the result, and a multi-measure
// rest overrides both with n whole measures of the effective signature.
func durationTokenBeats(tok *model.DurationToken, ts model.TimeSignature) *big.Rat {
	var dur *big.Rat
	switch strings.ToUpper(tok.Symbol) {
	case "W":
		dur = model.Rat(4, 1)
	case "H":
		dur = model.Rat(2, 1)
	case "Q":
		dur = model.Rat(1, 1)
	case "E":
		dur = model.Rat(1, 2)
	case "S":
		dur = model.Rat(1, 4)
	case "T":
		dur = model.Rat(1, 8)
	case "X":
		dur = model.Rat(1, 16)
	case "A":
		dur = model.Rat(0, 1) // grace notes carry no rhythmic length
	default:
		dur = model.Rat(1, 1)
	}

	switch tok.Dotted {
	case 1:
		half := new(big.Rat).Mul(dur, model.Rat(1, 2))
		dur.Add(dur, half)
	case 2:
		half := new(big.Rat).Mul(dur, model.Rat(1, 2))
		quarter := new(big.Rat).Mul(dur, model.Rat(1, 4))
		dur.Add(dur, half)
		dur.Add(dur, quarter)
	}

	if tok.Staccato && dur.Sign() > 0 {
		dur.Mul(dur, model.Rat(1, 2))
	}

	if tok.MultibarRests > 0 {
		den := ts.Denominator
		if den == 0 {
			den = 4
		}
		measureBeats := new(big.Rat).Mul(model.Rat(int64(ts.Numerator), 1), model.Rat(4, int64(den)))
		dur = measureBeats.Mul(measureBeats, model.Rat(int64(tok.MultibarRests), 1))
	}

	return dur
}
