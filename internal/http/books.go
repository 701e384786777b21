package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hadithapp/hadith/internal/entities"
)

type BooksController struct {
	corpus CorpusReader
	saved  SavedSet
}

func NewBooksController(corpus CorpusReader, saved SavedSet) *BooksController {
	return &BooksController{corpus: corpus, saved: saved}
}

// GetBooks lists the collections.
// GET /api/books
func (bc *BooksController) GetBooks(c *gin.Context) {
	books, err := bc.corpus.GetBooks()
	if err != nil {
		respondInternalError(c, err, "get books")
		return
	}
	if books == nil {
		books = []entities.Book{}
	}

	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetChapters lists a book's chapters.
// GET /api/books/:book/chapters
func (bc *BooksController) GetChapters(c *gin.Context) {
	book := c.Param("book")

	chapters, err := bc.corpus.GetChapters(book)
	if err != nil {
		respondInternalError(c, err, "get chapters")
		return
	}
	if len(chapters) == 0 {
		respondNotFound(c, "book")
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": book, "chapters": chapters})
}

// GetHadithsByChapter lists the narrations of one chapter with their saved flags.
// GET /api/books/:book/chapters/:chapter/hadiths
func (bc *BooksController) GetHadithsByChapter(c *gin.Context) {
	book := c.Param("book")
	chapterNo, ok := parseIntParam(c, "chapter")
	if !ok {
		return
	}

	rows, err := bc.corpus.GetHadithsByChapter(book, chapterNo)
	if err != nil {
		respondInternalError(c, err, "get chapter hadiths")
		return
	}
	if len(rows) == 0 {
		respondNotFound(c, "chapter")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book":    book,
		"chapter": chapterNo,
		"hadiths": newHadithViews(rows, bc.saved),
	})
}
