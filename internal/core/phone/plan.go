package phone

import (
	"errors"
	"strings"
)

// Canonicalization failures. The caller treats both as "not actionable"
// for the entry rather than guessing a repair
var (
	// ErrInvalidLength means the national remainder has the wrong digit count
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidNumberingPlan means the national digits violate the plan rule
	ErrInvalidNumberingPlan = errors.New("invalid numbering plan")
)

// Plan describes one national numbering plan as data.
// The rule is small on purpose: the first national digit must belong to a
// fixed set, and numbers opening with the mobile marker digit must carry a
// second digit inside the mobile sub-range
type Plan struct {
	CallingCode    string // country calling code digits, no plus sign
	NationalLen    int    // exact digit count of a national number
	FirstDigits    string // allowed first digits of the national number
	MobileFirst    byte   // marker digit that opens mobile numbers
	MobileSecondLo byte   // inclusive lower bound for the second mobile digit
	MobileSecondHi byte   // inclusive upper bound for the second mobile digit
}

// PT is the shipped default plan, Portugal.
// Fixed lines open with 2, nomadic services with 3, mobiles with 91..96
var PT = Plan{
	CallingCode:    "351",
	NationalLen:    9,
	FirstDigits:    "239",
	MobileFirst:    '9',
	MobileSecondLo: '1',
	MobileSecondHi: '6',
}

// Canonical returns the fully qualified international form of raw under p,
// "+" + calling code + national digits, with no formatting characters.
// A leading calling code in the digits is stripped before validation, so
// Canonical is idempotent on its own successful output
func (p Plan) Canonical(raw string) (string, error) {
	national := Digits(raw)
	if p.CallingCode != "" {
		national, _ = strings.CutPrefix(national, p.CallingCode)
	}
	if len(national) != p.NationalLen {
		return "", ErrInvalidLength
	}
	if err := p.checkNational(national); err != nil {
		return "", err
	}
	return "+" + p.CallingCode + national, nil
}

// checkNational validates national against the plan rule.
// national is known to have exactly NationalLen digits
func (p Plan) checkNational(national string) error {
	first := national[0]
	allowed := false
	for i := 0; i < len(p.FirstDigits); i++ {
		if first == p.FirstDigits[i] {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidNumberingPlan
	}
	if first == p.MobileFirst {
		second := national[1]
		if second < p.MobileSecondLo || second > p.MobileSecondHi {
			return ErrInvalidNumberingPlan
		}
	}
	return nil
}
