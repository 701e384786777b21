// Package narrations provides read access to the hadith corpus.
//
// This package implements the CorpusReader interface defined in internal/http/stores.go.
//
// Book names are matched on the trimmed source column because the bundled
// corpus pads some collection names (" Sahih Bukhari ").
//
// # Usage
//
//	repo := narrations.NewRepository(db)
//	chapters, err := repo.GetChapters("Sahih Bukhari")
//	hadith, err := repo.GetHadith("Sahih Bukhari", "5")
package narrations

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/hadithapp/hadith/internal/bookmarks"
	"github.com/hadithapp/hadith/internal/entities"
)

const (
	DefaultSearchLimit    = 100
	DefaultMinQueryLength = 3
)

var (
	ErrQueryTooShort = errors.New("search query too short")
	ErrEmptyCorpus   = errors.New("corpus has no narrations")
)

// Rand is the subset of *rand.Rand used to pick a random narration.
type Rand interface {
	Int63n(n int64) int64
}

// Repository handles all narration queries.
type Repository struct {
	db             *gorm.DB
	minQueryLength int
	searchLimit    int
}

// NewRepository creates a new narrations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, minQueryLength: DefaultMinQueryLength, searchLimit: DefaultSearchLimit}
}

// SetMinQueryLength changes the shortest accepted search query.
func (r *Repository) SetMinQueryLength(n int) {
	if n > 0 {
		r.minQueryLength = n
	}
}

// SetSearchLimit changes the default and maximum number of search results.
func (r *Repository) SetSearchLimit(n int) {
	if n > 0 {
		r.searchLimit = n
	}
}

// MinQueryLength returns the shortest accepted search query, in characters.
func (r *Repository) MinQueryLength() int {
	return r.minQueryLength
}

// withTranslation keeps only narrations that have English text.
func withTranslation(db *gorm.DB) *gorm.DB {
	return db.Where("text_en IS NOT NULL AND text_en != ''")
}

func withNumber(db *gorm.DB) *gorm.DB {
	return db.Where("hadith_no IS NOT NULL AND TRIM(hadith_no) != ''")
}

// GetBooks returns every collection with its number of translated narrations.
func (r *Repository) GetBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Model(&entities.Narration{}).
		Scopes(withTranslation).
		Select("TRIM(source) AS name, COUNT(*) AS hadith_count").
		Group("TRIM(source)").
		Order("name ASC").
		Scan(&books).Error
	return books, err
}

// GetChapters returns the distinct chapters of a book in numeric order.
func (r *Repository) GetChapters(book string) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.Model(&entities.Narration{}).
		Scopes(withTranslation).
		Select("DISTINCT chapter_no AS number, chapter AS name").
		Where("TRIM(source) = ?", strings.TrimSpace(book)).
		Order("CAST(chapter_no AS INTEGER)").
		Scan(&chapters).Error
	return chapters, err
}

// GetHadithsByChapter returns a chapter's narrations ordered by hadith number.
func (r *Repository) GetHadithsByChapter(book string, chapterNo int) ([]entities.Narration, error) {
	var hadiths []entities.Narration
	err := r.db.Scopes(withTranslation).
		Where("TRIM(source) = ? AND chapter_no = ?", strings.TrimSpace(book), chapterNo).
		Order("CAST(hadith_no AS INTEGER)").
		Find(&hadiths).Error
	return hadiths, err
}

// GetHadith returns the narration with the given number in a book, or
// gorm.ErrRecordNotFound.
func (r *Repository) GetHadith(book, number string) (*entities.Narration, error) {
	var hadith entities.Narration
	err := r.db.
		Where("TRIM(source) = ? AND TRIM(hadith_no) = ?", strings.TrimSpace(book), strings.TrimSpace(number)).
		First(&hadith).Error
	if err != nil {
		return nil, err
	}
	return &hadith, nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search does a substring match over both texts, the source and the hadith number.
// Results are capped at the search limit, DefaultSearchLimit unless changed.
func (r *Repository) Search(query string, limit int) ([]entities.Narration, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < r.minQueryLength {
		return nil, ErrQueryTooShort
	}
	if limit <= 0 || limit > r.searchLimit {
		limit = r.searchLimit
	}

	pattern := "%" + likeEscaper.Replace(query) + "%"
	var results []entities.Narration
	err := r.db.Scopes(withTranslation).
		Where(`(text_en LIKE ? ESCAPE '\' OR text_ar LIKE ? ESCAPE '\' OR source LIKE ? ESCAPE '\' OR hadith_no LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern).
		Order("id ASC").
		Limit(limit).
		Find(&results).Error
	return results, err
}

// Random returns a uniformly chosen numbered, translated narration.
// A nil rng uses the shared math/rand source.
func (r *Repository) Random(rng Rand) (*entities.Narration, error) {
	var total int64
	if err := r.db.Model(&entities.Narration{}).Scopes(withTranslation, withNumber).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count narrations: %w", err)
	}
	if total == 0 {
		return nil, ErrEmptyCorpus
	}

	var offset int64
	if rng != nil {
		offset = rng.Int63n(total)
	} else {
		offset = rand.Int63n(total)
	}

	var hadith entities.Narration
	err := r.db.Scopes(withTranslation, withNumber).
		Order("id ASC").
		Offset(int(offset)).
		Limit(1).
		Take(&hadith).Error
	if err != nil {
		return nil, err
	}
	return &hadith, nil
}

// GetBySavedIDs resolves saved identifiers to narrations, preserving order.
// Identifiers that are malformed or no longer in the corpus are skipped.
func (r *Repository) GetBySavedIDs(ids []string) ([]entities.Narration, error) {
	hadiths := make([]entities.Narration, 0, len(ids))
	for _, id := range ids {
		book, number, ok := bookmarks.Split(id)
		if !ok {
			continue
		}
		hadith, err := r.GetHadith(book, number)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve saved hadith %q: %w", id, err)
		}
		hadiths = append(hadiths, *hadith)
	}
	return hadiths, nil
}

// Count returns the number of translated narrations.
func (r *Repository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entities.Narration{}).Scopes(withTranslation).Count(&total).Error
	return total, err
}
