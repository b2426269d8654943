package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/config"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/fixture"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/move"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) SolveResponse {
	t.Helper()
	var resp SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	return resp
}

func TestHealth(t *testing.T) {
	w := do(t, New(config.Default()), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSolve(t *testing.T) {
	deal, ok := fixture.Find(fixture.Default(), "endgame")
	require.True(t, ok)
	body, err := json.Marshal(deal.Board)
	require.NoError(t, err)

	s := New(config.Default())
	w := do(t, s, http.MethodPost, "/v1/solve", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode(t, w)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Solution, 5)
	assert.Equal(t, move.NewStart(), resp.Solution[0].Move)
	assert.Equal(t, deal.Board, resp.Solution[0].Board)
	assert.True(t, resp.Solution[4].Board.IsSolved())

	m := do(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, m.Code)
	assert.Contains(t, m.Body.String(), `shenzhen_solves_total{outcome="solved"} 1`)
	assert.Contains(t, m.Body.String(), `shenzhen_search_expansions_count 1`)
	assert.Contains(t, m.Body.String(), `shenzhen_solve_duration_seconds_count 1`)
}

func TestSolveErrors(t *testing.T) {
	const free = `[{"suit":"FaceDown","value":null},{"suit":"FaceDown","value":null},{"suit":"FaceDown","value":null}]`
	tests := []struct {
		name    string
		body    string
		code    int
		outcome string
	}{
		{
			name:    "malformed",
			body:    `{"top_left_storage":[]}`,
			code:    http.StatusBadRequest,
			outcome: outcomeMalformed,
		},
		{
			name:    "not json",
			body:    `columns`,
			code:    http.StatusBadRequest,
			outcome: outcomeMalformed,
		},
		{
			name: "no solution",
			body: `{"top_left_storage":` + free + `,"top_right_storage":[1,0,9,9],` +
				`"columns":[[{"suit":"Red","value":2}],[],[],[],[],[],[],[]]}`,
			code:    http.StatusUnprocessableEntity,
			outcome: outcomeNoSolution,
		},
		{
			name:    "internal",
			body:    `{"top_left_storage":[],"top_right_storage":[0,0,0,0],"columns":[[],[],[],[],[],[],[],[]]}`,
			code:    http.StatusInternalServerError,
			outcome: outcomeInternal,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := New(config.Default())
			w := do(t, s, http.MethodPost, "/v1/solve", []byte(test.body))
			assert.Equal(t, test.code, w.Code, w.Body.String())

			resp := decode(t, w)
			assert.Nil(t, resp.Solution)
			assert.NotEmpty(t, resp.Error)
			assert.Contains(t, w.Body.String(), `"solution":null`)

			m := do(t, s, http.MethodGet, "/metrics", nil)
			assert.Contains(t, m.Body.String(), `shenzhen_solves_total{outcome="`+test.outcome+`"} 1`)
		})
	}
}

func TestSolveNoSolutionMessage(t *testing.T) {
	deal, ok := fixture.Find(fixture.Default(), "reference-3")
	require.True(t, ok)
	body, err := json.Marshal(deal.Board)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Search.MaxExpansions = 10
	w := do(t, New(cfg), http.MethodPost, "/v1/solve", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "no solution found", decode(t, w).Error)
}

func TestUnknownRoute(t *testing.T) {
	w := do(t, New(config.Default()), http.MethodGet, "/v1/solve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
