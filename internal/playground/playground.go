// Package playground exposes MoonLang's lexer and parser as a small HTTP
// API: a browser-based playground (or any HTTP client) posts source text
// and gets back tokens, an AST, or a diagnostic describing the first
// failure. It never builds or runs anything beyond the lex/parse pipeline.
package playground

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/parhelia512/moonlang-sub000/compiler/alias"
	"github.com/parhelia512/moonlang-sub000/compiler/ast"
	"github.com/parhelia512/moonlang-sub000/compiler/lexer"
	"github.com/parhelia512/moonlang-sub000/compiler/parser"
	"github.com/parhelia512/moonlang-sub000/internal/diagnostics"
)

// Server hosts the playground's HTTP API over a chi router.
type Server struct {
	router *chi.Mux
}

// NewServer builds a Server with its routes already mounted.
func NewServer() *Server {
	s := &Server{router: chi.NewRouter()}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/tokenize", s.handleTokenize)
		r.Post("/parse", s.handleParse)
	})

	return s
}

// ServeHTTP implements http.Handler so a Server can be passed straight to
// http.ListenAndServe or mounted under another router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// sourceRequest is the body expected by both /tokenize and /parse.
type sourceRequest struct {
	Source    string `json:"source"`
	AliasPack string `json:"alias_pack,omitempty"`
}

type tokenizeResponse struct {
	Success    bool                  `json:"success"`
	Tokens     []lexer.Token         `json:"tokens,omitempty"`
	Diagnostic *diagnostics.Diagnostic `json:"diagnostic,omitempty"`
}

type parseResponse struct {
	Success    bool                    `json:"success"`
	AST        interface{}             `json:"ast,omitempty"`
	Diagnostic *diagnostics.Diagnostic `json:"diagnostic,omitempty"`
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	req, aliases, ok := decodeSourceRequest(w, r)
	if !ok {
		return
	}

	l := lexer.New(req.Source)
	l.SetAliases(aliases)

	tokens, err := l.Tokenize()
	if err != nil {
		writeDiagnostic(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenizeResponse{Success: true, Tokens: tokens})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, aliases, ok := decodeSourceRequest(w, r)
	if !ok {
		return
	}

	l := lexer.New(req.Source)
	l.SetAliases(aliases)

	tokens, err := l.Tokenize()
	if err != nil {
		writeDiagnostic(w, err)
		return
	}

	p := parser.New(tokens)
	program, err := p.Parse()
	if err != nil {
		writeDiagnostic(w, err)
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{Success: true, AST: ast.Describe(program)})
}

// decodeSourceRequest decodes the JSON body and resolves its alias pack. On
// any failure it writes the error response itself and returns ok=false.
func decodeSourceRequest(w http.ResponseWriter, r *http.Request) (sourceRequest, *alias.Map, bool) {
	var req sourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return sourceRequest{}, nil, false
	}

	if req.AliasPack == "" {
		return req, alias.Empty(), true
	}

	aliases, err := alias.Load(req.AliasPack)
	if err != nil {
		http.Error(w, "invalid alias pack: "+err.Error(), http.StatusBadRequest)
		return sourceRequest{}, nil, false
	}
	return req, aliases, true
}

// writeDiagnostic reports a lexer/parser failure as a 200 response whose
// body carries success=false — the request itself succeeded, the source
// just didn't compile, which is the expected outcome a client renders.
func writeDiagnostic(w http.ResponseWriter, err error) {
	d, ok := diagnostics.FromError(err)
	if !ok {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{Success: false, Diagnostic: &d})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
