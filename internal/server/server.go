// Package server implements a static resource server with HTTP
// byte-range support, built for serving large tiled archives that
// browser clients random-access with single-range requests.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sovietmap/tileserve.git/internal/config"
	"github.com/sovietmap/tileserve.git/internal/httprange"
	"github.com/sovietmap/tileserve.git/internal/models"

	log "github.com/sirupsen/logrus"
)

// Observer receives one RequestRecord per completed request. Observers
// run on the request goroutine and must not block.
type Observer func(models.RequestRecord)

type Server struct {
	cfg       config.Config
	locator   Locator
	observers []Observer
	httpSrv   *http.Server
}

func New(cfg config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		locator: Locator{Root: cfg.Root},
	}
	s.httpSrv = &http.Server{
		Addr:    cfg.Addr(),
		Handler: s,
		// A stalled client gets a deadline instead of a goroutine held
		// hostage.
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}
	return s
}

// AddObserver registers a request-record sink (access log, dashboard).
func (s *Server) AddObserver(obs Observer) {
	s.observers = append(s.observers, obs)
}

func (s *Server) ListenAndServe() error {
	log.Infof("Serving %s at http://%s", s.cfg.Root, s.cfg.Addr())
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// ServeHTTP handles one request: locate the resource, parse the Range
// header, resolve it against the resource size, respond. Every path
// lands on a terminal response.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// Range support is advertised on every response, including misses,
	// so clients can discover it cheaply.
	w.Header().Set("Accept-Ranges", "bytes")
	if s.cfg.CORSOrigin != "" {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
	}

	rangeHeader := r.Header.Get("Range")
	rec := models.RequestRecord{
		Time:        start,
		RemoteAddr:  r.RemoteAddr,
		Method:      r.Method,
		Path:        r.URL.Path,
		RangeHeader: rangeHeader,
		RangeKind:   models.RangeKindNone,
	}

	status, written := s.handle(w, r, rangeHeader, &rec)

	rec.Status = status
	rec.BytesWritten = written
	rec.Duration = time.Since(start)
	s.notify(rec)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request, rangeHeader string, rec *models.RequestRecord) (int, int64) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return respondMethodNotAllowed(w)
	}
	sendBody := r.Method == http.MethodGet

	res, err := s.locator.Locate(r.URL.Path)
	if err != nil {
		return respondNotFound(w)
	}
	rec.ContentType = res.ContentType

	state, specs := httprange.Parse(rangeHeader)
	switch state {
	case httprange.Absent:
		return respondFull(w, res, sendBody)
	case httprange.Malformed:
		// A broken Range header degrades to the full resource, never
		// to an error.
		rec.RangeKind = models.RangeKindMalformed
		return respondFull(w, res, sendBody)
	}

	// Only the first range of a multi-range request is honored; tiled
	// archive clients issue single-range requests and there is no
	// multipart/byteranges encoding here.
	rng, ok := specs[0].Resolve(res.Size)
	if !ok {
		rec.RangeKind = models.RangeKindUnsatisfiable
		return respondUnsatisfiable(w, res)
	}
	rec.RangeKind = models.RangeKindPartial
	return respondPartial(w, res, rng, sendBody)
}

func (s *Server) notify(rec models.RequestRecord) {
	log.WithFields(log.Fields{
		"status":   rec.Status,
		"bytes":    rec.BytesWritten,
		"range":    string(rec.RangeKind),
		"duration": rec.Duration,
	}).Infof("%s %s %s", rec.RemoteAddr, rec.Method, rec.Path)

	for _, obs := range s.observers {
		obs(rec)
	}
}
