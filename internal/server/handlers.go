package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/trimworks/flashing/pkg/buildinfo"
	"github.com/trimworks/flashing/pkg/core/metrics"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/errors"
	orderio "github.com/trimworks/flashing/pkg/io"
	"github.com/trimworks/flashing/pkg/pipeline"
)

// ContentTypes maps output formats to response media types.
var ContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type diagramBody struct {
	Index   int         `json:"index"`
	Name    string      `json:"name,omitempty"`
	Invalid bool        `json:"invalid,omitempty"`
	SVG     string      `json:"svg"`
	Metrics metrics.Row `json:"metrics"`
}

type renderResponse struct {
	ID       string          `json:"id,omitempty"`
	BatchID  string          `json:"batch_id"`
	Warnings []string        `json:"warnings,omitempty"`
	Diagrams []diagramBody   `json:"diagrams"`
	Summary  metrics.Summary `json:"summary"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// render renders every diagram of the posted set as SVG. The optional
// "diagrams" query parameter selects indices ("0,2"), and "embed_font=true"
// inlines the label font.
func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	set, warnings, err := orderio.ReadJSON(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.opts
	opts.Formats = []string{pipeline.FormatSVG}
	if opts.Indices, err = parseIndices(r.URL.Query().Get("diagrams")); err != nil {
		s.writeError(w, r, err)
		return
	}
	if v := r.URL.Query().Get("embed_font"); v != "" {
		opts.EmbedFont, _ = strconv.ParseBool(v)
	}

	result, err := s.runner.Execute(r.Context(), set, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := renderResponse{
		ID:       set.ID,
		BatchID:  result.BatchID,
		Diagrams: make([]diagramBody, len(result.Diagrams)),
		Summary:  result.Summary,
	}
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, warn.String())
	}
	for i, d := range result.Diagrams {
		resp.Diagrams[i] = diagramBody{
			Index:   d.Index,
			Name:    d.Name,
			Invalid: d.Invalid,
			SVG:     string(d.Artifacts[pipeline.FormatSVG]),
			Metrics: d.Row,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"orders": ids})
}

func (s *Server) orderSummary(w http.ResponseWriter, r *http.Request) {
	set, ok := s.loadOrder(w, r)
	if !ok {
		return
	}
	summary, err := s.runner.Summarize(r.Context(), set, s.opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) orderDiagram(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid diagram index"))
		return
	}
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	set, ok := s.loadOrder(w, r)
	if !ok {
		return
	}
	data, hit, err := s.runner.RenderOne(r.Context(), set, index, format, s.opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", ContentTypes[format])
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no order store configured"))
		return false
	}
	return true
}

// loadOrder fetches the set named by the {id} route parameter.
func (s *Server) loadOrder(w http.ResponseWriter, r *http.Request) (profile.DiagramSet, bool) {
	if !s.requireStore(w, r) {
		return profile.DiagramSet{}, false
	}
	id := chi.URLParam(r, "id")
	set, warnings, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return profile.DiagramSet{}, false
	}
	for _, warn := range warnings {
		s.logger.Warn("order data", "order", id, "warning", warn.String())
	}
	return set, true
}

func parseIndices(v string) ([]int, error) {
	if v == "" {
		return nil, nil
	}
	var out []int
	for _, f := range strings.Split(v, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid diagram index %q", f)
		}
		out = append(out, i)
	}
	return out, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
