package catalog

import (
	"strings"
	"testing"

	"github.com/kawamurakazushi/tle-parser/internal/tle"
)

func mustCatalog(t *testing.T, data string) *tle.Catalog {
	t.Helper()
	cat, err := tle.ParseCatalog(strings.NewReader(data), testLogger)
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	return cat
}
