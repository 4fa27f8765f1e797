package tle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	errNotDigits    = errors.New("not a digit string")
	errNoSeparator  = errors.New("missing exponent separator")
	errNotDecimal   = errors.New("not a decimal number")
	errNotFinite    = errors.New("value is not finite")
	errUnexpected   = errors.New("unexpected literal")
	errShortLine    = errors.New("line too short")
	errMissingBreak = errors.New("missing line break")
)

// parseUglyFloat decodes the assumed-decimal encoding used by the second
// derivative of mean motion and the drag term: "[-]MMMMM-E" means
// [-]0.MMMMM x 10^-E. The hyphen before the exponent is mandatory.
//
//	"36258-4"  => 0.36258e-4
//	"-36258-4" => -0.36258e-4
//	"00000-0"  => 0
func parseUglyFloat(s string) (float64, error) {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	mantissa, exponent, ok := strings.Cut(s, "-")
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, errNoSeparator)
	}
	if !allDigits(mantissa) || !allDigits(exponent) {
		return 0, fmt.Errorf("%q: %w", s, errNotDigits)
	}

	f, err := strconv.ParseFloat(sign+"0."+mantissa+"e-"+exponent, 64)
	if err != nil {
		return 0, err
	}
	return f, nil
}

// parseEccentricity decodes the 7-digit eccentricity field, which carries an
// implied leading "0.".
func parseEccentricity(s string) (float64, error) {
	if len(s) != 7 || !allDigits(s) {
		return 0, fmt.Errorf("eccentricity %q: %w", s, errNotDigits)
	}
	return strconv.ParseFloat("0."+s, 64)
}

// parseDecimal parses a plain decimal literal such as " .00000320" or
// "-12.5", rejecting the hex, infinity and NaN forms ParseFloat would accept.
func parseDecimal(s string) (float64, error) {
	if s == "" || strings.Trim(s, "0123456789+-.eE") != "" {
		return 0, fmt.Errorf("%q: %w", s, errNotDecimal)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%q: %w", s, errNotFinite)
	}
	return f, nil
}

func parseUint(s string) (uint32, error) {
	if !allDigits(s) {
		return 0, fmt.Errorf("%q: %w", s, errNotDigits)
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}

// allDigits reports whether s is a non-empty run of ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
