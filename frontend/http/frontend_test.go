package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pseudorand/pseudorand/generator/lcg"
	"github.com/pseudorand/pseudorand/generator/mt19937"
	"github.com/pseudorand/pseudorand/generator/xorshift"
	"github.com/pseudorand/pseudorand/validator"
)

func testFrontend() *Frontend {
	return &Frontend{Config: Config{MaxCount: DefaultMaxCount}}
}

func TestListRoute(t *testing.T) {
	srv := httptest.NewServer(testFrontend().handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/generators")
	require.Nil(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body listResponse
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Generators, lcg.Name)
	assert.Contains(t, body.Generators, mt19937.Name)
	assert.Contains(t, body.Generators, xorshift.Name)
}

func TestDrawRoute(t *testing.T) {
	srv := httptest.NewServer(testFrontend().handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/generators/lcg/draw?seed=1&count=3")
	require.Nil(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body drawResponse
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, lcg.Name, body.Generator)
	assert.Equal(t, uint32(1), body.Seed)
	assert.Equal(t, []uint32{1015568748, 1586005467, 2165703038}, body.Values)
	assert.Empty(t, body.Floats)
}

func TestDrawRouteFloats(t *testing.T) {
	srv := httptest.NewServer(testFrontend().handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/generators/mt19937/draw?seed=5489&count=2&format=float")
	require.Nil(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body drawResponse
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 2, len(body.Floats))
	assert.Equal(t, float64(3499211612)/(1<<32), body.Floats[0])
	assert.Empty(t, body.Values)
}

func TestDrawRouteErrors(t *testing.T) {
	srv := httptest.NewServer(testFrontend().handler())
	defer srv.Close()

	for path, status := range map[string]int{
		"/generators/nonexistent/draw":        http.StatusNotFound,
		"/generators/lcg/draw?count=0":        http.StatusBadRequest,
		"/generators/lcg/draw?count=bogus":    http.StatusBadRequest,
		"/generators/lcg/draw?seed=bogus":     http.StatusBadRequest,
		"/generators/lcg/draw?format=bogus":   http.StatusBadRequest,
		"/generators/lcg/draw?count=99999999": http.StatusBadRequest,
		"/generators/lcg/validate?count=100":  http.StatusBadRequest,
		"/generators/nonexistent/validate":    http.StatusNotFound,
	} {
		resp, err := http.Get(srv.URL + path)
		require.Nil(t, err)
		resp.Body.Close()
		assert.Equal(t, status, resp.StatusCode, "path: %s", path)
	}
}

func TestValidateRoute(t *testing.T) {
	srv := httptest.NewServer(testFrontend().handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/generators/mt19937/validate?seed=7&count=20000")
	require.Nil(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report validator.Report
	require.Nil(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, mt19937.Name, report.Generator)
	assert.Equal(t, 20000, report.Samples)
	assert.True(t, report.Consistent(), "report: %+v", report)
}
