package tle

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseCatalog reads a stream of TLE sets in 3-line (name + two data lines)
// or 2-line form and parses each set with ParseLines. Blank lines and CRLF
// line endings are tolerated. Malformed sets are skipped with a warning log
// and counted in Catalog.Rejected; only read errors are returned.
func ParseCatalog(r io.Reader, logger *slog.Logger) (*Catalog, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE data: %w", err)
	}

	cat := &Catalog{}
	name, nameIndex := "", -1
	reject := func(index int, msg string, args ...any) {
		logger.Warn(msg, append([]any{"component", "tle", "line_index", index}, args...)...)
		cat.Rejected++
	}

	for i := 0; i < len(lines); {
		line := lines[i]
		switch {
		case isDataLine(line, '1') && i+1 < len(lines) && isDataLine(lines[i+1], '2'):
			t, err := ParseLines(name, line, lines[i+1])
			if err != nil {
				reject(i, "skipping malformed TLE entry", "name", name, "error", err)
			} else {
				cat.Records = append(cat.Records, t)
			}
			name, nameIndex = "", -1
			i += 2

		case isDataLine(line, '1') || isDataLine(line, '2'):
			reject(i, "skipping unpaired TLE data line", "name", name)
			name, nameIndex = "", -1
			i++

		default:
			if nameIndex >= 0 {
				reject(nameIndex, "skipping name line without element data", "name", name)
			}
			name, nameIndex = line, i
			i++
		}
	}
	if nameIndex >= 0 {
		reject(nameIndex, "skipping name line without element data", "name", name)
	}

	return cat, nil
}

func isDataLine(line string, tag byte) bool {
	return len(line) >= 2 && line[0] == tag && line[1] == ' '
}
