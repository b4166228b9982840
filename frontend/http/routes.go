package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pseudorand/pseudorand/generator"
	"github.com/pseudorand/pseudorand/validator"
)

const jsonContentType = "application/json; charset=UTF-8"

type listResponse struct {
	Generators []string `json:"generators"`
}

type drawResponse struct {
	Generator string    `json:"generator"`
	Seed      uint32    `json:"seed"`
	Count     int       `json:"count"`
	Values    []uint32  `json:"values,omitempty"`
	Floats    []float64 `json:"floats,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) error {
	return writeJSON(w, status, errorResponse{Error: err.Error()})
}

// drawParams are the query parameters shared by the draw and validate
// routes.
type drawParams struct {
	seed   uint32
	count  int
	floats bool
}

func (f *Frontend) parseDrawParams(r *http.Request, defaultCount int) (drawParams, error) {
	p := drawParams{count: defaultCount}
	q := r.URL.Query()

	if s := q.Get("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return drawParams{}, errInvalidParameter("seed")
		}
		p.seed = uint32(seed)
	}

	if c := q.Get("count"); c != "" {
		count, err := strconv.Atoi(c)
		if err != nil || count < 1 || count > f.MaxCount {
			return drawParams{}, errInvalidParameter("count")
		}
		p.count = count
	}

	switch q.Get("format") {
	case "", "uint":
	case "float":
		p.floats = true
	default:
		return drawParams{}, errInvalidParameter("format")
	}

	return p, nil
}

type errInvalidParameter string

func (e errInvalidParameter) Error() string {
	return "invalid parameter: " + string(e)
}

// newSeeded builds and seeds a fresh instance of the named generator.
func newSeeded(name string, seed uint32) (generator.Generator, int, error) {
	g, err := generator.New(name, nil)
	if err != nil {
		if err == generator.ErrDriverDoesNotExist {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusBadRequest, err
	}

	if err := g.Seed(seed); err != nil {
		return nil, http.StatusBadRequest, err
	}

	return g, http.StatusOK, nil
}

func (f *Frontend) serveDraw(w http.ResponseWriter, r *http.Request, name string) error {
	params, err := f.parseDrawParams(r, 10)
	if err != nil {
		return writeError(w, http.StatusBadRequest, err)
	}

	g, status, err := newSeeded(name, params.seed)
	if err != nil {
		return writeError(w, status, err)
	}

	resp := drawResponse{
		Generator: name,
		Seed:      params.seed,
		Count:     params.count,
	}
	if params.floats {
		resp.Floats = make([]float64, params.count)
		for i := range resp.Floats {
			resp.Floats[i] = g.Float64()
		}
	} else {
		resp.Values = make([]uint32, params.count)
		for i := range resp.Values {
			resp.Values[i] = g.Uint32()
		}
	}

	return writeJSON(w, http.StatusOK, resp)
}

func (f *Frontend) serveValidate(w http.ResponseWriter, r *http.Request, name string) error {
	params, err := f.parseDrawParams(r, 20000)
	if err != nil {
		return writeError(w, http.StatusBadRequest, err)
	}

	g, status, err := newSeeded(name, params.seed)
	if err != nil {
		return writeError(w, status, err)
	}

	report, err := validator.New(name, g).Run(params.count)
	if err != nil {
		return writeError(w, http.StatusBadRequest, err)
	}

	return writeJSON(w, http.StatusOK, report)
}
