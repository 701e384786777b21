package http

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadithapp/hadith/internal/entities"
)

func setupBooksRouter(env *testEnv) *gin.Engine {
	controller := NewBooksController(env.corpus, env.saved)
	router := gin.New()
	router.GET("/api/books", controller.GetBooks)
	router.GET("/api/books/:book/chapters", controller.GetChapters)
	router.GET("/api/books/:book/chapters/:chapter/hadiths", controller.GetHadithsByChapter)
	return router
}

func TestBooksController_GetBooks(t *testing.T) {
	env := setupTestEnv(t)
	router := setupBooksRouter(env)

	w := performRequest(router, "GET", "/api/books")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Books []entities.Book `json:"books"`
		Count int             `json:"count"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []entities.Book{
		{Name: "Sahih Bukhari", HadithCount: 3},
		{Name: "Sahih Muslim", HadithCount: 1},
	}, resp.Books)
}

func TestBooksController_GetChapters(t *testing.T) {
	env := setupTestEnv(t)
	router := setupBooksRouter(env)

	t.Run("lists chapters in order", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/books/Sahih%20Bukhari/chapters")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Book     string             `json:"book"`
			Chapters []entities.Chapter `json:"chapters"`
		}
		decodeBody(t, w, &resp)

		assert.Equal(t, "Sahih Bukhari", resp.Book)
		assert.Equal(t, []entities.Chapter{
			{Number: 1, Name: "Revelation"},
			{Number: 2, Name: "Belief"},
		}, resp.Chapters)
	})

	t.Run("unknown book", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/books/Nope/chapters")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBooksController_GetHadithsByChapter(t *testing.T) {
	env := setupTestEnv(t)
	router := setupBooksRouter(env)
	env.saved.Toggle("Sahih Bukhari_2")

	t.Run("includes saved flags", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/books/Sahih%20Bukhari/chapters/1/hadiths")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Chapter int          `json:"chapter"`
			Hadiths []HadithView `json:"hadiths"`
		}
		decodeBody(t, w, &resp)

		assert.Equal(t, 1, resp.Chapter)
		require.Len(t, resp.Hadiths, 2)
		assert.Equal(t, "Sahih Bukhari_1", resp.Hadiths[0].ID)
		assert.False(t, resp.Hadiths[0].Saved)
		assert.Equal(t, "Sahih Bukhari_2", resp.Hadiths[1].ID)
		assert.True(t, resp.Hadiths[1].Saved)
	})

	t.Run("invalid chapter", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/books/Sahih%20Bukhari/chapters/abc/hadiths")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty chapter", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/books/Sahih%20Bukhari/chapters/99/hadiths")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
