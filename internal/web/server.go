package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/phravins/gptflow/assets"
	"github.com/phravins/gptflow/internal/examples"
	"github.com/phravins/gptflow/internal/render"
	"github.com/phravins/gptflow/internal/session"
)

type docLink struct {
	Title string
	URL   string
}

type pageData struct {
	View         session.View
	Code         template.HTML
	CodeFilename string
	DocLinks     []docLink
	ShareURL     string
	EmptyHistory string
}

// Server serves the workflows page for one session.
type Server struct {
	sess *session.Session
	opts render.Options
	log  logrus.FieldLogger
	page *template.Template

	mu      sync.Mutex
	httpSrv *http.Server
}

func NewServer(sess *session.Session, opts render.Options, log logrus.FieldLogger) (*Server, error) {
	page, err := assets.PageTemplate()
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Server{sess: sess, opts: opts, log: log, page: page}, nil
}

// Handler returns the routes without starting a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handlePage)
	mux.HandleFunc("/generate", s.handleGenerate)
	mux.HandleFunc("/select", s.handleSelect)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(assets.StaticFS()))))
	return mux
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	v := s.sess.Snapshot()
	data := pageData{
		View:         v,
		CodeFilename: render.CodeFilename,
		ShareURL:     examples.ShareURL,
		EmptyHistory: render.EmptyHistoryMessage,
	}
	if v.Selected != nil {
		data.Code = render.HTMLCode(v.Selected.Reply.Code, s.opts.Theme)
	}
	base := s.opts.DocsBaseURL
	if base == "" {
		base = "https://www.inngest.com"
	}
	for _, l := range examples.DocLinks {
		data.DocLinks = append(data.DocLinks, docLink{Title: l.Title, URL: l.URL(base)})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, data); err != nil {
		s.log.WithError(err).Error("render page")
	}
}

// handleGenerate runs one submission. A request that arrives while another
// is in flight is dropped and the page is shown as is.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := s.sess.SubmitPrompt(r.Context(), r.PostFormValue("message")); errors.Is(err, session.ErrBusy) {
		s.log.Debug("submission ignored, one already in flight")
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	id := r.PostFormValue("id")
	if !s.sess.SelectByID(id) {
		http.Error(w, "Unknown entry", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.sess.Snapshot().History)
}

// ListenAndServe blocks until the server stops. Only loopback is bound.
func (s *Server) ListenAndServe(port string) error {
	s.mu.Lock()
	if s.httpSrv != nil {
		s.mu.Unlock()
		return fmt.Errorf("server already running on %s", s.httpSrv.Addr)
	}
	// Use IP address instead of "localhost" to avoid DNS issues on Windows
	addr := "127.0.0.1:" + port
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpSrv
	s.mu.Unlock()

	s.log.WithField("addr", "http://"+addr).Info("serving workflows page")
	err := srv.ListenAndServe()

	s.mu.Lock()
	s.httpSrv = nil
	s.mu.Unlock()

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Close()
}
