package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/librarium/internal/database"
	"github.com/mrlokans/librarium/internal/database/books"
)

func setupBooksTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_books_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func TestBooksController_CreateBook(t *testing.T) {
	t.Run("creates a book with authors and genres", func(t *testing.T) {
		db, cleanup := setupBooksTestDB(t)
		defer cleanup()

		controller := NewBooksController(books.NewRepository(db.DB))
		router := gin.New()
		router.POST("/api/books", controller.CreateBook)

		body := bytes.NewBufferString(`{
			"title": "Dune",
			"authors": ["Frank Herbert"],
			"genres": ["Sci-Fi"],
			"original_language": "English"
		}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]uint
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotZero(t, resp["id"])
	})

	t.Run("rejects a book without authors", func(t *testing.T) {
		db, cleanup := setupBooksTestDB(t)
		defer cleanup()

		controller := NewBooksController(books.NewRepository(db.DB))
		router := gin.New()
		router.POST("/api/books", controller.CreateBook)

		body := bytes.NewBufferString(`{"title": "Dune", "authors": []}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a book without title", func(t *testing.T) {
		db, cleanup := setupBooksTestDB(t)
		defer cleanup()

		controller := NewBooksController(books.NewRepository(db.DB))
		router := gin.New()
		router.POST("/api/books", controller.CreateBook)

		body := bytes.NewBufferString(`{"title": "", "authors": ["Frank Herbert"]}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/books", body)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_GetAllBooks(t *testing.T) {
	db, cleanup := setupBooksTestDB(t)
	defer cleanup()

	repo := books.NewRepository(db.DB)
	_, err := repo.InsertBook(books.BookParams{Title: "Solaris", Authors: []string{"Stanislaw Lem"}})
	require.NoError(t, err)
	_, err = repo.InsertBook(books.BookParams{Title: "Dune", Authors: []string{"Frank Herbert"}})
	require.NoError(t, err)

	controller := NewBooksController(repo)
	router := gin.New()
	router.GET("/api/books", controller.GetAllBooks)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/books", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Books []books.BookLabel `json:"books"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "Dune - Frank Herbert", resp.Books[0].Label)
	assert.Equal(t, "Solaris - Stanislaw Lem", resp.Books[1].Label)
}

func TestBooksController_GetBookAuthors(t *testing.T) {
	db, cleanup := setupBooksTestDB(t)
	defer cleanup()

	repo := books.NewRepository(db.DB)
	id, err := repo.InsertBook(books.BookParams{Title: "Dune", Authors: []string{"Frank Herbert"}})
	require.NoError(t, err)

	controller := NewBooksController(repo)
	router := gin.New()
	router.GET("/api/books/:id/authors", controller.GetBookAuthors)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/books/"+itoa(id)+"/authors", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Authors []string `json:"authors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Frank Herbert"}, resp.Authors)
}
