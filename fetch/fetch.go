// Package fetch issues the single page request made each time the gallery
// enters the loading status, and turns its outcome into a scroll event.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	nt "defile/entity"
	"defile/scroll"
)

const (
	// PageSize is the number of records requested per page.
	PageSize = 5
	// DefaultBaseURL is the picsum list endpoint.
	DefaultBaseURL = "https://picsum.photos/v2/list"
)

var (
	ErrTransport = errors.New("request failed")
	ErrStatus    = errors.New("unexpected status")
	ErrParse     = errors.New("failed to parse body")
)

var (
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "defile_fetch_total",
		Help: "Page fetches by outcome",
	}, []string{"outcome"})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "defile_fetch_duration_seconds",
		Help:    "Page fetch duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
)

// Response is what a Requester hands back.
type Response interface {
	StatusCode() int
	Decode() ([]nt.Photo, error)
}

// Requester performs the network call for a fully formed url.
type Requester interface {
	Request(ctx context.Context, url string) (Response, error)
}

// RequesterFunc adapts a function to Requester.
type RequesterFunc func(ctx context.Context, url string) (Response, error)

func (fn RequesterFunc) Request(ctx context.Context, url string) (Response, error) {
	return fn(ctx, url)
}

// Recorder keeps the full records of each loaded page.
type Recorder interface {
	Record(ctx context.Context, page int, photos []nt.Photo) error
}

// PageURL formats the list url for page.
func PageURL(base string, page int) string {
	return fmt.Sprintf("%s?page=%d&limit=%d", base, page, PageSize)
}

// Coordinator fetches pages on behalf of the gallery.
type Coordinator struct {
	requester Requester
	baseURL   string
	recorder  Recorder
	logger    nt.Logger
}

// New creates a Coordinator; recorder may be nil.
func New(requester Requester, baseURL string, recorder Recorder, lgr nt.Logger) *Coordinator {

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Coordinator{
		requester: requester,
		baseURL:   baseURL,
		recorder:  recorder,
		logger:    lgr,
	}
}

// Fetch requests page and reports the outcome as an event.
// It never retries.
func (co *Coordinator) Fetch(ctx context.Context, page int) (ev scroll.Event) {

	url := PageURL(co.baseURL, page)
	start := time.Now()
	defer func() {
		fetchDuration.Observe(time.Since(start).Seconds())
		fetchTotal.WithLabelValues(outcome(ev)).Inc()
	}()

	photos, err := co.get(ctx, url)
	if err != nil {
		co.logger.Error(ctx, "fetch failed", err, "url", url)
		return scroll.FetchError{Err: err}
	}

	if len(photos) == 0 {
		co.logger.Info(ctx, "reached end", "url", url)
		return scroll.ReachedEnd{}
	}

	if co.recorder != nil {
		err = co.recorder.Record(ctx, page, photos)
		if err != nil {
			co.logger.Error(ctx, "failed to record page", err, "page", page)
		}
	}

	co.logger.Info(ctx, "fetched page", "url", url, "count", len(photos))
	return scroll.FetchSuccess{Refs: nt.Refs(photos)}
}

// unexported

func (co *Coordinator) get(ctx context.Context, url string) (photos []nt.Photo, err error) {

	resp, err := co.request(ctx, url)
	if err != nil {
		return
	}

	if resp.StatusCode() != http.StatusOK {
		err = errors.Wrapf(ErrStatus, "got %d from %s", resp.StatusCode(), url)
		return
	}

	photos, err = co.decode(resp)
	return
}

// request shields the event loop from a requester that panics.
func (co *Coordinator) request(ctx context.Context, url string) (resp Response, err error) {

	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrTransport, "panic: %v", r)
		}
	}()

	resp, err = co.requester.Request(ctx, url)
	if err != nil {
		err = errors.Wrapf(ErrTransport, "%s: %v", url, err)
		return
	}
	if resp == nil {
		err = errors.Wrapf(ErrTransport, "no response from %s", url)
	}
	return
}

func (co *Coordinator) decode(resp Response) (photos []nt.Photo, err error) {

	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrParse, "panic: %v", r)
		}
	}()

	photos, err = resp.Decode()
	if err != nil {
		err = errors.Wrapf(ErrParse, "%v", err)
	}
	return
}

func outcome(ev scroll.Event) string {

	switch ev.(type) {
	case scroll.FetchSuccess:
		return "success"
	case scroll.ReachedEnd:
		return "end"
	default:
		return "error"
	}
}
