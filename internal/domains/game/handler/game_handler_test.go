package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardgame-tracker/internal/domains/game"
)

type stubService struct {
	searchResult game.SearchResult
	lastQuery    string
	games        map[uuid.UUID]*game.Game
	createErr    error
}

func (s *stubService) Search(ctx context.Context, query string) game.SearchResult {
	s.lastQuery = query
	return s.searchResult
}

func (s *stubService) FindOne(ctx context.Context, id uuid.UUID) (*game.Game, error) {
	g, ok := s.games[id]
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return g, nil
}

func (s *stubService) CreateGame(ctx context.Context, req game.CreateGameRequest) (*game.Game, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &game.Game{ID: uuid.New(), ExternalGame: req.ToExternal(game.APIRefUser, uuid.NewString())}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func newRouter(svc game.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewGameHandler(svc)
	r.GET("/games/search", h.Search)
	r.GET("/games/:id", h.GetGame)
	r.POST("/games", h.CreateGame)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestSearchEndpointAlwaysOK(t *testing.T) {
	svc := &stubService{searchResult: game.EmptySearchResult(true)}
	w, env := do(t, newRouter(svc), http.MethodGet, "/games/search?q=catan", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "catan", svc.lastQuery)
	assert.JSONEq(t, `{"games":[],"external_available":true}`, string(env.Data))
}

func TestSearchEndpointSerializesNullVersusEmptyLists(t *testing.T) {
	g := &game.Game{ID: uuid.New(), ExternalGame: game.ExternalGame{
		APIRef: "bgg", ExternalID: "13", Name: "Catan", Categories: []string{}, Mechanics: nil,
	}}
	svc := &stubService{searchResult: game.SearchResult{Games: []*game.Game{g}}}

	_, env := do(t, newRouter(svc), http.MethodGet, "/games/search?q=cat", nil)

	var data struct {
		Games []map[string]json.RawMessage `json:"games"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Games, 1)
	assert.Equal(t, "[]", string(data.Games[0]["categories"]))
	assert.Equal(t, "null", string(data.Games[0]["mechanics"]))
}

func TestGetGameEndpoint(t *testing.T) {
	id := uuid.New()
	svc := &stubService{games: map[uuid.UUID]*game.Game{
		id: {ID: id, ExternalGame: game.ExternalGame{Name: "Azul"}},
	}}
	r := newRouter(svc)

	w, env := do(t, r, http.MethodGet, "/games/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Azul")

	w, env = do(t, r, http.MethodGet, "/games/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "GAME_NOT_FOUND", env.Error.Code)

	w, _ = do(t, r, http.MethodGet, "/games/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGameEndpoint(t *testing.T) {
	r := newRouter(&stubService{})
	w, env := do(t, r, http.MethodPost, "/games", map[string]interface{}{"name": "Homebrew", "year": 2024})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), `"api_ref":"user"`)

	w, _ = do(t, r, http.MethodPost, "/games", map[string]interface{}{"year": 2024})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGameEndpointValidationDetails(t *testing.T) {
	verr := game.CreateGameRequest{Name: "X", MinPlayers: new(int)}.Validate()
	require.Error(t, verr)

	svc := &stubService{createErr: fmt.Errorf("%w: %w", game.ErrInvalidGame, verr)}
	w, env := do(t, newRouter(svc), http.MethodPost, "/games", map[string]interface{}{"name": "X", "min_players": 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), "min_players")
}
