// Package metrics serves the prometheus registry next to the gallery.
//
// Fetch metrics are defined in package fetch:
//   - defile_fetch_total{outcome} (Counter): page fetches by success, end or error
//   - defile_fetch_duration_seconds (Histogram): page fetch duration
package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	nt "defile/entity"
)

// NewHandler routes /metrics and /healthz.
func NewHandler(gatherer prometheus.Gatherer) http.Handler {

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// Server serves metrics until its context is done.
type Server struct {
	srv    *http.Server
	ln     net.Listener
	logger nt.Logger
}

// Listen binds addr.
func Listen(addr string, lgr nt.Logger) (svr *Server, err error) {

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		err = errors.Wrapf(err, "failed to listen on %s", addr)
		return
	}

	svr = &Server{
		srv: &http.Server{
			Handler:           NewHandler(prometheus.DefaultGatherer),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:     ln,
		logger: lgr,
	}
	return
}

// Addr is the bound address.
func (svr *Server) Addr() string {
	return svr.ln.Addr().String()
}

// Serve blocks until ctx is done, then shuts down.
func (svr *Server) Serve(ctx context.Context) (err error) {

	done := make(chan error, 1)
	go func() {
		done <- svr.srv.Serve(svr.ln)
	}()
	svr.logger.Info(ctx, "serving metrics", "addr", svr.Addr())

	select {
	case err = <-done:
		err = errors.Wrapf(err, "metrics server stopped")
		return
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = svr.srv.Shutdown(shutCtx)
	err = errors.Wrapf(err, "failed to shutdown metrics server")
	return
}
