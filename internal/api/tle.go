package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kawamurakazushi/tle-parser/internal/catalog"
	"github.com/kawamurakazushi/tle-parser/internal/export"
	"github.com/kawamurakazushi/tle-parser/internal/metrics"
	"github.com/kawamurakazushi/tle-parser/internal/tle"
)

const (
	maxParseBody   = 64 << 10
	maxCatalogBody = 8 << 20
)

// formatErrorResponse is the 422 body for a rejected TLE block.
type formatErrorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line"`
	Field string `json:"field"`
}

type catalogResponse struct {
	Records  []tle.TLE `json:"records"`
	Rejected int       `json:"rejected"`
}

type metadataResponse struct {
	Loaded     bool      `json:"loaded"`
	Source     string    `json:"source,omitempty"`
	FetchedAt  time.Time `json:"fetched_at,omitzero"`
	Count      int       `json:"count"`
	Rejected   int       `json:"rejected"`
	AgeSeconds float64   `json:"age_seconds"`
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// parseHandler decodes one raw TLE block from the request body.
func parseHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxParseBody))
		if err != nil {
			if isTooLarge(err) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "reading request body")
			return
		}

		rec, err := tle.Parse(string(body))
		if err != nil {
			metrics.RecordRecords(0, 1)
			logger.Debug("rejected TLE block", "component", "api", "error", err)

			resp := formatErrorResponse{Error: tle.ErrFormatInvalid.Error()}
			var fe *tle.FormatError
			if errors.As(err, &fe) {
				resp.Line, resp.Field = fe.Line, fe.Field
			}
			writeJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}

		metrics.RecordRecords(1, 0)
		writeJSON(w, http.StatusOK, rec)
	}
}

// parseCatalogHandler decodes a multi-record stream, skipping bad sets.
func parseCatalogHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := tle.ParseCatalog(http.MaxBytesReader(w, r.Body, maxCatalogBody), logger)
		if err != nil {
			if isTooLarge(err) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "reading request body")
			return
		}

		metrics.RecordRecords(len(cat.Records), cat.Rejected)
		records := cat.Records
		if records == nil {
			records = []tle.TLE{}
		}
		writeJSON(w, http.StatusOK, catalogResponse{Records: records, Rejected: cat.Rejected})
	}
}

func metadataHandler(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds := store.Get()
		if ds == nil {
			writeJSON(w, http.StatusOK, metadataResponse{AgeSeconds: -1})
			return
		}
		writeJSON(w, http.StatusOK, metadataResponse{
			Loaded:     true,
			Source:     ds.Source,
			FetchedAt:  ds.FetchedAt.UTC(),
			Count:      len(ds.Records),
			Rejected:   ds.Rejected,
			AgeSeconds: store.AgeSeconds(),
		})
	}
}

func recordHandler(store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.ParseUint(r.PathValue("satellite_number"), 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "satellite_number must be an unsigned integer")
			return
		}

		ds := store.Get()
		if ds == nil {
			writeError(w, http.StatusServiceUnavailable, "no TLE catalog loaded")
			return
		}

		rec, ok := ds.Lookup(uint32(n))
		if !ok {
			writeError(w, http.StatusNotFound, "satellite not in catalog")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func fetchHandler(logger *slog.Logger, loader *catalog.Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, err := loader.Refresh(r.Context())
		if errors.Is(err, catalog.ErrFetchDisabled) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if err != nil {
			logger.Warn("TLE fetch failed", "component", "api", "error", err)
			writeError(w, http.StatusBadGateway, "fetch failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"source":   ds.Source,
			"count":    len(ds.Records),
			"rejected": ds.Rejected,
		})
	}
}

func exportHandler(logger *slog.Logger, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds := store.Get()
		if ds == nil {
			writeError(w, http.StatusServiceUnavailable, "no TLE catalog loaded")
			return
		}

		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, ds.Records); err != nil {
			logger.Error("xlsx export failed", "component", "api", "error", err)
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="tle.xlsx"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		buf.WriteTo(w)
	}
}
