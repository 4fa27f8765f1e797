package tle

import "strings"

// Parse decodes a raw TLE block: a name line, line 1 and line 2 separated by
// '\n'. A trailing newline is optional. Any deviation from the column layout
// rejects the whole block with an error matching ErrFormatInvalid; no partial
// record is ever returned.
//
// Checksum digits are extracted but not verified, the epoch is kept as its
// raw "YYDDD.DDDDDDDD" text, and the satellite number on line 2 is not
// compared with the one on line 1.
func Parse(raw string) (TLE, error) {
	name, rest, ok := strings.Cut(raw, "\n")
	if !ok {
		return TLE{}, formatError(0, "name line", errMissingBreak)
	}
	line1, rest, ok := strings.Cut(rest, "\n")
	if !ok {
		return TLE{}, formatError(0, "line 1", errMissingBreak)
	}
	line2, _, _ := strings.Cut(rest, "\n")

	return ParseLines(name, line1, line2)
}

// ParseLines applies the line 1 and line 2 grammars to already separated
// lines. Bytes after column 69 (such as a trailing '\r') are ignored.
func ParseLines(name, line1, line2 string) (TLE, error) {
	t := TLE{Name: strings.TrimSpace(name)}

	if err := decodeLine(line1, 1, line1Columns, &t); err != nil {
		return TLE{}, err
	}
	if err := decodeLine(line2, 2, line2Columns, &t); err != nil {
		return TLE{}, err
	}

	return t, nil
}
