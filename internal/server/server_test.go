package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/OpenCutList/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	return New(model.DefaultSettings(), nil)
}

func doRequest(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func exampleRequest() map[string]interface{} {
	p := model.ExampleProject()
	return map[string]interface{}{
		"parts": p.Parts,
		"stock": p.Stock,
		"kerf":  p.Settings.Kerf,
	}
}

func TestHealthz(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestExample(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodGet, "/api/example", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var p model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Example Cabinet", p.Name)
	assert.Len(t, p.Parts, 6)
}

func TestOptimize(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/optimize", exampleRequest())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Birch Plywood", resp.Results[0].Material)
	assert.Equal(t, "Walnut", resp.Results[1].Material)
	assert.Equal(t, 3, resp.Summary.BinsUsed)
	assert.Equal(t, 1, resp.Summary.ItemsUnplaced)
	require.Len(t, resp.Results[0].Unplaced, 1)
	assert.Equal(t, "Oversized Panel", resp.Results[0].Unplaced[0].Name)
}

func TestOptimize_NoStockMaterial(t *testing.T) {
	body := map[string]interface{}{
		"parts": []model.Part{{ID: "a", Name: "A", Length: 100, Width: 50, Thickness: 18, Quantity: 1, Material: "Oak"}},
		"stock": []model.StockPiece{},
		"kerf":  0,
	}

	w := doRequest(t, newTestServer(), http.MethodPost, "/api/optimize", body)

	require.Equal(t, http.StatusOK, w.Code)
	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, model.ErrNoStockAvailable, resp.Results[0].Error)
	assert.Equal(t, 1, resp.Summary.MaterialsNoStock)
}

func TestOptimize_DefaultKerf(t *testing.T) {
	body := map[string]interface{}{
		"parts": []model.Part{{ID: "a", Name: "A", Length: 500, Width: 600, Thickness: 18, Quantity: 2}},
		"stock": []model.StockPiece{{ID: "s", Name: "S", Length: 500, Width: 1200, Thickness: 18, Quantity: 1}},
	}

	w := doRequest(t, newTestServer(), http.MethodPost, "/api/optimize", body)

	require.Equal(t, http.StatusOK, w.Code)
	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Two 600 tall items only fit a 1200 board without kerf.
	assert.Equal(t, 1, resp.Summary.ItemsPlaced)
	assert.Equal(t, 1, resp.Summary.ItemsUnplaced)
}

func TestOptimize_InvalidInput(t *testing.T) {
	s := newTestServer()

	w := doRequest(t, s, http.MethodPost, "/api/optimize", map[string]interface{}{
		"parts": []model.Part{{Name: "Bad", Length: -1, Width: 10, Thickness: 18, Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "length must be a positive number")

	w = doRequest(t, s, http.MethodPost, "/api/optimize", map[string]interface{}{"kerf": -2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "kerf")

	req := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestCompare(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/compare", exampleRequest())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Scenarios, 4)
	assert.Equal(t, "Current Settings", resp.Scenarios[0].Scenario.Name)
	assert.Equal(t, 3, resp.Scenarios[0].BinsUsed)
}

func TestRespectGrainFlag(t *testing.T) {
	body := exampleRequest()
	body["respectGrain"] = true

	w := doRequest(t, newTestServer(), http.MethodPost, "/api/compare", body)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Scenarios[0].Scenario.Settings.RespectGrain)
	assert.Equal(t, "Ignore Grain", resp.Scenarios[len(resp.Scenarios)-1].Scenario.Name)
}
