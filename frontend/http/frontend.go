// Package http implements a JSON API for discovering registered generator
// algorithms, drawing values from them, and running validation passes.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pseudorand/pseudorand/generator"
	"github.com/pseudorand/pseudorand/pkg/log"
	"github.com/pseudorand/pseudorand/pkg/stop"
)

func init() {
	prometheus.MustRegister(promResponseDurationMilliseconds)

	// Ensure the metric exists with a zero value before the first request.
	recordResponseDuration("action", nil, time.Second)
}

var promResponseDurationMilliseconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "pseudorand_http_response_duration_milliseconds",
		Help:    "The duration of time it takes to receive and write a response to an API request",
		Buckets: prometheus.ExponentialBuckets(9.375, 2, 10),
	},
	[]string{"action", "error"},
)

// recordResponseDuration records the duration of time to respond to a
// request in milliseconds.
func recordResponseDuration(action string, err error, duration time.Duration) {
	var errString string
	if err != nil {
		errString = err.Error()
	}

	promResponseDurationMilliseconds.
		WithLabelValues(action, errString).
		Observe(float64(duration.Nanoseconds()) / float64(time.Millisecond))
}

// Config represents all of the configurable options for the HTTP frontend.
type Config struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// MaxCount caps the number of values one request may draw. Zero
	// selects DefaultMaxCount.
	MaxCount int `yaml:"max_count"`
}

// DefaultMaxCount is the per-request draw cap used when the config does
// not provide one.
const DefaultMaxCount = 1 << 20

// LogFields renders the current config as a set of log fields.
func (cfg Config) LogFields() log.Fields {
	return log.Fields{
		"addr":         cfg.Addr,
		"readTimeout":  cfg.ReadTimeout,
		"writeTimeout": cfg.WriteTimeout,
		"maxCount":     cfg.MaxCount,
	}
}

// Frontend holds the state of the HTTP frontend.
type Frontend struct {
	srv *http.Server

	Config
}

// NewFrontend builds a Frontend from the provided config and begins
// serving requests on cfg.Addr asynchronously.
func NewFrontend(cfg Config) *Frontend {
	if cfg.MaxCount == 0 {
		cfg.MaxCount = DefaultMaxCount
	}

	f := &Frontend{Config: cfg}
	f.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      f.handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		if err := f.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed while serving http", log.Err(err))
		}
	}()

	return f
}

// Stop provides a thread-safe way to shutdown a currently running
// Frontend.
func (f *Frontend) Stop() stop.Result {
	c := make(stop.Channel)
	go func() {
		c.Done(f.srv.Shutdown(context.Background()))
	}()

	return c.Result()
}

func (f *Frontend) handler() http.Handler {
	router := httprouter.New()
	router.GET("/generators", f.listRoute)
	router.GET("/generators/:name/draw", f.drawRoute)
	router.GET("/generators/:name/validate", f.validateRoute)
	return router
}

// listRoute responds with the names of all registered generator drivers.
func (f *Frontend) listRoute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start := time.Now()
	err := writeJSON(w, http.StatusOK, listResponse{Generators: generator.Drivers()})
	recordResponseDuration("list", err, time.Since(start))
}

// drawRoute seeds a fresh generator and responds with its first values.
func (f *Frontend) drawRoute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	start := time.Now()
	err := f.serveDraw(w, r, ps.ByName("name"))
	recordResponseDuration("draw", err, time.Since(start))
}

// validateRoute seeds a fresh generator and responds with a validation
// report over its first values.
func (f *Frontend) validateRoute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	start := time.Now()
	err := f.serveValidate(w, r, ps.ByName("name"))
	recordResponseDuration("validate", err, time.Since(start))
}
