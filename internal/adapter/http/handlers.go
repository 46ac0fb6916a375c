package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/fire-hotspot-dashboard/internal/domain"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/export"
	"github.com/couchcryptid/fire-hotspot-dashboard/internal/render"
)

var (
	errDashboardLoading = errors.New("dashboard is still loading")
	errInvalidYear      = errors.New("year must be an integer")
)

type yearsResponse struct {
	Years   []int `json:"years"`
	Default int   `json:"default"`
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	d, ok := s.dashboard()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, errDashboardLoading.Error())
		return
	}
	writeJSON(w, http.StatusOK, yearsResponse{Years: d.Years(), Default: d.DefaultYear()})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboard()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, errDashboardLoading.Error())
		return
	}
	year, err := yearParam(r, d)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v, err := d.View(year)
	if err != nil {
		s.writeViewError(w, year, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	chart, ok := strings.CutSuffix(r.PathValue("file"), ".png")
	if !ok || !slices.Contains(render.Charts, chart) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown chart %q", r.PathValue("file")))
		return
	}

	d, ok := s.dashboard()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, errDashboardLoading.Error())
		return
	}
	year, err := yearParam(r, d)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := d.View(year)
	if err != nil {
		s.writeViewError(w, year, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, chart, v); err != nil {
		s.metrics.ChartRenders.WithLabelValues(chart, "error").Inc()
		if errors.Is(err, render.ErrNoData) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("chart render failed", "chart", chart, "year", year, "error", err)
		writeError(w, http.StatusInternalServerError, "chart rendering failed")
		return
	}
	s.metrics.ChartRenders.WithLabelValues(chart, "success").Inc()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client went away
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboard()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, errDashboardLoading.Error())
		return
	}
	year, err := yearParam(r, d)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v, err := d.View(year)
	if err != nil {
		s.writeViewError(w, year, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, v); err != nil {
		s.metrics.Exports.WithLabelValues("error").Inc()
		s.logger.Error("workbook export failed", "year", year, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	s.metrics.Exports.WithLabelValues("success").Inc()

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(year)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck // client went away
}

// yearParam reads the year query parameter, falling back to the default
// year when it is absent. Membership is checked by Dashboard.View.
func yearParam(r *http.Request, d Dashboard) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return d.DefaultYear(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidYear, raw)
	}
	return year, nil
}

// writeViewError maps a Dashboard.View failure to a response status.
func (s *Server) writeViewError(w http.ResponseWriter, year int, err error) {
	if errors.Is(err, domain.ErrUnknownYear) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("build view failed", "year", year, "error", err)
	writeError(w, http.StatusInternalServerError, "building dashboard failed")
}
