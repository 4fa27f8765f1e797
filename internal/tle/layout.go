package tle

import "strings"

type kind int

const (
	kindTag          kind = iota // literal line number
	kindSpace                    // single ' ' delimiter
	kindDigits                   // unsigned integer, whitespace trimmed
	kindDigit                    // single digit, not trimmed
	kindChar                     // single byte
	kindText                     // string, whitespace trimmed
	kindDecimal                  // float with explicit point, whitespace trimmed
	kindUgly                     // assumed-decimal float with signed exponent
	kindEccentricity             // 7 digits with implied "0."
)

// value carries a decoded column. Only the member matching the column kind
// is set.
type value struct {
	num   uint32
	float float64
	text  string
	char  byte
}

// column is one fixed-width run of a data line. Offsets are 0-based byte
// positions; both line tables end at the checksum in column 69. A nil set
// discards the decoded value.
type column struct {
	field  string
	offset int
	width  int
	kind   kind
	tag    string
	set    func(t *TLE, v value)
}

func delim(offset int) column {
	return column{field: "delimiter", offset: offset, width: 1, kind: kindSpace}
}

var line1Columns = []column{
	{field: "line_number", offset: 0, width: 1, kind: kindTag, tag: "1"},
	delim(1),
	{field: "satellite_number", offset: 2, width: 5, kind: kindDigits,
		set: func(t *TLE, v value) { t.SatelliteNumber = v.num }},
	{field: "classification", offset: 7, width: 1, kind: kindChar,
		set: func(t *TLE, v value) { t.Classification = Classification(v.char) }},
	delim(8),
	{field: "international_designator", offset: 9, width: 8, kind: kindText,
		set: func(t *TLE, v value) { t.InternationalDesignator = v.text }},
	delim(17),
	{field: "epoch", offset: 18, width: 14, kind: kindText,
		set: func(t *TLE, v value) { t.Epoch = v.text }},
	delim(32),
	{field: "first_derivative_mean_motion", offset: 33, width: 10, kind: kindDecimal,
		set: func(t *TLE, v value) { t.FirstDerivativeMeanMotion = v.float }},
	delim(43),
	{field: "second_derivative_mean_motion", offset: 44, width: 8, kind: kindUgly,
		set: func(t *TLE, v value) { t.SecondDerivativeMeanMotion = v.float }},
	delim(52),
	{field: "drag_term", offset: 53, width: 8, kind: kindUgly,
		set: func(t *TLE, v value) { t.DragTerm = v.float }},
	delim(61),
	{field: "ephemeris_type", offset: 62, width: 1, kind: kindDigit,
		set: func(t *TLE, v value) { t.EphemerisType = v.num }},
	delim(63),
	{field: "element_number", offset: 64, width: 4, kind: kindDigits,
		set: func(t *TLE, v value) { t.ElementNumber = v.num }},
	{field: "checksum", offset: 68, width: 1, kind: kindDigit},
}

// Mean motion and revolution number share columns 53-68 with no delimiter.
var line2Columns = []column{
	{field: "line_number", offset: 0, width: 1, kind: kindTag, tag: "2"},
	delim(1),
	{field: "satellite_number", offset: 2, width: 5, kind: kindDigits},
	delim(7),
	{field: "inclination", offset: 8, width: 8, kind: kindDecimal,
		set: func(t *TLE, v value) { t.Inclination = v.float }},
	delim(16),
	{field: "right_ascension", offset: 17, width: 8, kind: kindDecimal,
		set: func(t *TLE, v value) { t.RightAscension = v.float }},
	delim(25),
	{field: "eccentricity", offset: 26, width: 7, kind: kindEccentricity,
		set: func(t *TLE, v value) { t.Eccentricity = v.float }},
	delim(33),
	{field: "argument_of_perigee", offset: 34, width: 8, kind: kindDecimal,
		set: func(t *TLE, v value) { t.ArgumentOfPerigee = v.float }},
	delim(42),
	{field: "mean_anomaly", offset: 43, width: 8, kind: kindDecimal,
		set: func(t *TLE, v value) { t.MeanAnomaly = v.float }},
	delim(51),
	{field: "mean_motion", offset: 52, width: 11, kind: kindDecimal,
		set: func(t *TLE, v value) { t.MeanMotion = v.float }},
	{field: "revolution_number", offset: 63, width: 5, kind: kindDigits,
		set: func(t *TLE, v value) { t.RevolutionNumber = v.num }},
	{field: "checksum", offset: 68, width: 1, kind: kindDigit},
}

// decode converts the raw column text according to the column kind.
func (c column) decode(raw string) (value, error) {
	var (
		v   value
		err error
	)
	switch c.kind {
	case kindTag:
		if raw != c.tag {
			err = errUnexpected
		}
	case kindSpace:
		if raw != " " {
			err = errUnexpected
		}
	case kindDigits:
		v.num, err = parseUint(strings.TrimSpace(raw))
	case kindDigit:
		v.num, err = parseUint(raw)
	case kindChar:
		v.char = raw[0]
	case kindText:
		v.text = strings.TrimSpace(raw)
	case kindDecimal:
		v.float, err = parseDecimal(strings.TrimSpace(raw))
	case kindUgly:
		v.float, err = parseUglyFloat(strings.TrimSpace(raw))
	case kindEccentricity:
		v.float, err = parseEccentricity(raw)
	}
	return v, err
}

// decodeLine applies a column table to one data line, writing decoded values
// into t. Columns are processed in order and the first failure is returned.
func decodeLine(line string, lineNo int, columns []column, t *TLE) error {
	for _, c := range columns {
		end := c.offset + c.width
		if len(line) < end {
			return formatError(lineNo, c.field, errShortLine)
		}
		v, err := c.decode(line[c.offset:end])
		if err != nil {
			return formatError(lineNo, c.field, err)
		}
		if c.set != nil {
			c.set(t, v)
		}
	}
	return nil
}
