package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/franciscosanchezn/pizzastore-api/internal/controllers"
	"github.com/franciscosanchezn/pizzastore-api/internal/database"
	"github.com/franciscosanchezn/pizzastore-api/internal/models"
	"github.com/franciscosanchezn/pizzastore-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "pizzas.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, database.Migrate(db))

	logger, _ := test.NewNullLogger()
	return New(Options{
		PizzaController:    controllers.NewPizzaController(services.NewPizzaService(db)),
		CORSAllowedOrigins: []string{"*"},
		Logger:             logger,
	})
}

func do(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodePizza(t *testing.T, w *httptest.ResponseRecorder) models.Pizza {
	t.Helper()
	var pizza models.Pizza
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pizza))
	return pizza
}

func TestPizzaLifecycle(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodPost, "/pizzas", gin.H{"name": "Margherita", "description": "Classic"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/pizza/1", w.Header().Get("Location"))
	assert.Equal(t, models.Pizza{ID: 1, Name: "Margherita", Description: "Classic"}, decodePizza(t, w))

	w = do(router, http.MethodGet, "/pizzas/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Pizza{ID: 1, Name: "Margherita", Description: "Classic"}, decodePizza(t, w))

	w = do(router, http.MethodPut, "/pizzas/1", gin.H{"name": "Margherita", "description": "Extra basil"})
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(router, http.MethodGet, "/pizzas/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Margherita","description":"Extra basil"}`, w.Body.String())

	w = do(router, http.MethodDelete, "/pizzas/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(router, http.MethodGet, "/pizzas/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(router, http.MethodDelete, "/pizzas/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAfterCreatesAndDeletes(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodGet, "/pizzas", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for i := 1; i <= 5; i++ {
		w := do(router, http.MethodPost, "/pizzas", gin.H{"name": fmt.Sprintf("Pizza %d", i)})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	for _, id := range []int{2, 4} {
		w := do(router, http.MethodDelete, fmt.Sprintf("/pizzas/%d", id), nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = do(router, http.MethodGet, "/pizzas", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var pizzas []models.Pizza
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pizzas))
	require.Len(t, pizzas, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{pizzas[0].ID, pizzas[1].ID, pizzas[2].ID})
}

func TestCreateIgnoresClientID(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodPost, "/pizzas", gin.H{"id": 77, "name": "Diavola", "description": "Spicy"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, decodePizza(t, w).ID)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/pizzas/77", nil).Code)
}

func TestUpdateKeepsID(t *testing.T) {
	router := setupTestRouter(t)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/pizzas", gin.H{"name": "Old"}).Code)

	w := do(router, http.MethodPut, "/pizzas/1", gin.H{"id": 9, "name": "A", "description": "B"})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(router, http.MethodGet, "/pizzas/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.Pizza{ID: 1, Name: "A", Description: "B"}, decodePizza(t, w))
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/pizzas/9", nil).Code)
}

func TestNotFoundAndBadRequest(t *testing.T) {
	router := setupTestRouter(t)

	testCases := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
	}{
		{"get unknown id", http.MethodGet, "/pizzas/12", "", http.StatusNotFound},
		{"update unknown id", http.MethodPut, "/pizzas/12", `{"name":"x","description":"y"}`, http.StatusNotFound},
		{"delete unknown id", http.MethodDelete, "/pizzas/12", "", http.StatusNotFound},
		{"get non integer id", http.MethodGet, "/pizzas/abc", "", http.StatusBadRequest},
		{"delete non integer id", http.MethodDelete, "/pizzas/abc", "", http.StatusBadRequest},
		{"create malformed body", http.MethodPost, "/pizzas", `{"name":`, http.StatusBadRequest},
		{"update malformed body", http.MethodPut, "/pizzas/1", `not json`, http.StatusBadRequest},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, ServiceName, response["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCORSHeaders(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/pizzas", nil)
	req.Header.Set("Origin", "http://frontend.test")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwaggerDocument(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var document map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &document))
	info := document["info"].(map[string]any)
	assert.Equal(t, "PizzaStore API", info["title"])
	assert.Equal(t, "v1", info["version"])

	paths := document["paths"].(map[string]any)
	assert.Contains(t, paths, "/pizzas")
	assert.Contains(t, paths, "/pizzas/{id}")
}
