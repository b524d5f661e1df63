package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/codescribe-ai/codescribe/internal/analysis"
	"github.com/codescribe-ai/codescribe/internal/engine"
	"github.com/codescribe-ai/codescribe/internal/export"
	"github.com/codescribe-ai/codescribe/internal/generate"
	"github.com/codescribe-ai/codescribe/internal/llm"
	"github.com/codescribe-ai/codescribe/internal/model"
)

// maxUploadBytes caps multipart parsing memory; the per-file size limit is
// enforced separately from configuration.
const maxUploadBytes = 32 << 20

// documentCodeRequest is the body of POST /document/code. Empty fields fall
// back to the server configuration.
type documentCodeRequest struct {
	Code      string `json:"code"`
	Language  string `json:"language"`
	Verbosity string `json:"verbosity,omitempty"`
	Style     string `json:"style,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
}

// elementResponse mirrors a parsed element on the wire.
type elementResponse struct {
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Signature  string              `json:"signature"`
	StartLine  int                 `json:"start_line"`
	EndLine    int                 `json:"end_line"`
	Parameters []parameterResponse `json:"parameters,omitempty"`
	ReturnType string              `json:"return_type,omitempty"`
	Complexity int                 `json:"complexity"`
	Parent     string              `json:"parent,omitempty"`
}

type parameterResponse struct {
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Default string `json:"default,omitempty"`
}

// documentationResponse mirrors one generated record on the wire.
type documentationResponse struct {
	Element        elementResponse   `json:"element"`
	Docstring      string            `json:"docstring"`
	InlineComments []string          `json:"inline_comments,omitempty"`
	Summary        string            `json:"summary,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":    "ok",
		"version":   s.version,
		"timestamp": time.Now().UTC(),
	})
}

// handleConfig returns the discovery surface: supported languages, output
// formats, providers and documentation options.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	writeJSON(w, map[string]any{
		"languages":        s.registry.Supported(),
		"output_formats":   []string{"markdown", "html"},
		"providers":        llm.Providers(),
		"styles":           []model.Style{model.StyleGoogle, model.StyleNumpy, model.StyleSphinx, model.StyleJSDoc},
		"verbosity_levels": []model.Verbosity{model.VerbosityLow, model.VerbosityMedium, model.VerbosityHigh},
	})
}

// handleLanguages returns supported languages with their extensions.
func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	type languageInfo struct {
		Name       string   `json:"name"`
		Extensions []string `json:"extensions"`
	}
	var languages []languageInfo
	for _, lang := range s.registry.Supported() {
		languages = append(languages, languageInfo{
			Name:       string(lang),
			Extensions: analysis.Extensions(lang),
		})
	}

	writeJSON(w, map[string]any{
		"languages": languages,
		"count":     len(languages),
	})
}

// handleProviders returns AI provider metadata.
func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}

	writeJSON(w, map[string]any{
		"providers": llm.Providers(),
	})
}

// handleDocumentCode documents a source snippet posted as JSON.
func (s *Server) handleDocumentCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req documentCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}
	if req.Language == "" {
		writeError(w, http.StatusBadRequest, "language is required")
		return
	}

	lang := analysis.Language(strings.ToLower(req.Language))
	if _, err := s.registry.Get(lang); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported language: %s", req.Language))
		return
	}

	eng, gen, err := s.buildEngine(req.Provider, req.Model, req.Style, req.Verbosity)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, err := eng.ProcessSource(r.Context(), req.Code, lang)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("processing failed: %v", err))
		return
	}

	// The request-level summary covers the whole element set in one backend
	// call, not per-element summaries stitched together.
	elements := make([]model.CodeElement, 0, len(docs))
	for _, doc := range docs {
		elements = append(elements, doc.Element)
	}

	writeJSON(w, map[string]any{
		"success":       true,
		"message":       fmt.Sprintf("documented %d code elements", len(docs)),
		"documentation": toResponses(docs),
		"elements":      len(docs),
		"summary":       gen.Summary(r.Context(), elements),
	})
}

// handleDocumentFile documents an uploaded file and returns the exported
// document in the requested format.
func (s *Server) handleDocumentFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	var lang analysis.Language
	if override := r.FormValue("language"); override != "" {
		lang = analysis.Language(strings.ToLower(override))
	} else {
		detected, ok := analysis.DetectLanguage(header.Filename)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot detect language for %s", header.Filename))
			return
		}
		lang = detected
	}
	if _, err := s.registry.Get(lang); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported language: %s", lang))
		return
	}

	formatName := r.FormValue("output_format")
	if formatName == "" {
		formatName = s.cfg.Processing.OutputFormat
	}
	format, err := export.NormalizeFormat(formatName)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported output format: %s", formatName))
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxFileSizeBytes()+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}
	if int64(len(content)) > s.cfg.MaxFileSizeBytes() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file exceeds the %d MB size limit", s.cfg.Processing.MaxFileSizeMB))
		return
	}

	eng, _, err := s.buildEngine(r.FormValue("provider"), r.FormValue("model"), r.FormValue("style"), r.FormValue("verbosity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs, err := eng.ProcessSource(r.Context(), string(content), lang)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("processing failed: %v", err))
		return
	}

	document, err := export.Export(map[string][]model.GeneratedDocumentation{
		filepath.Base(header.Filename): docs,
	}, format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("documented %d code elements in %s", len(docs), header.Filename),
		"format":   format,
		"content":  document,
		"elements": len(docs),
	})
}

// buildEngine assembles a per-request engine: request overrides are layered
// over the server configuration, validated, and bound to a fresh client. The
// generator is returned alongside so handlers can issue request-level calls.
func (s *Server) buildEngine(provider, modelName, style, verbosity string) (*engine.Engine, *generate.Generator, error) {
	cfg := *s.cfg
	if provider != "" {
		cfg.AI.Provider = provider
	}
	if modelName != "" {
		cfg.AI.Model = modelName
	}
	if style != "" {
		cfg.Documentation.Style = style
	}
	if verbosity != "" {
		cfg.Documentation.Verbosity = verbosity
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := llm.NewClient(cfg.LLMConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("backend unavailable: %w", err)
	}

	gen := generate.New(client, cfg.DocumentationConfig())
	return engine.New(&cfg, s.registry, gen), gen, nil
}

func decodeJSON(r *http.Request, dest any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(dest)
}

func toResponses(docs []model.GeneratedDocumentation) []documentationResponse {
	out := make([]documentationResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, documentationResponse{
			Element:        toElementResponse(doc.Element),
			Docstring:      doc.Docstring,
			InlineComments: doc.InlineComments,
			Summary:        doc.Summary,
			Metadata:       doc.Metadata,
		})
	}
	return out
}

func toElementResponse(e model.CodeElement) elementResponse {
	params := make([]parameterResponse, 0, len(e.Parameters))
	for _, p := range e.Parameters {
		params = append(params, parameterResponse{Name: p.Name, Type: p.Type, Default: p.Default})
	}
	return elementResponse{
		Name:       e.Name,
		Type:       string(e.Kind),
		Signature:  e.Signature,
		StartLine:  e.StartLine,
		EndLine:    e.EndLine,
		Parameters: params,
		ReturnType: e.ReturnType,
		Complexity: e.Complexity,
		Parent:     e.Parent,
	}
}
