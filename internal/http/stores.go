package http

import (
	"github.com/hadithapp/hadith/internal/database/narrations"
	"github.com/hadithapp/hadith/internal/entities"
)

// Each controller depends on the narrowest interface it needs. This file
// collects the ones shared by several controllers.

// CorpusReader provides read access to narrations.
type CorpusReader interface {
	GetBooks() ([]entities.Book, error)
	GetChapters(book string) ([]entities.Chapter, error)
	GetHadithsByChapter(book string, chapterNo int) ([]entities.Narration, error)
	GetHadith(book, number string) (*entities.Narration, error)
	Search(query string, limit int) ([]entities.Narration, error)
	Random(rng narrations.Rand) (*entities.Narration, error)
	GetBySavedIDs(ids []string) ([]entities.Narration, error)
	MinQueryLength() int
}

// NarratorReader resolves narrators and chains.
type NarratorReader interface {
	GetNarrator(scholarIndx string) (*entities.Narrator, error)
	GetChain(chainIndx string) ([]entities.ChainLink, error)
}

// SavedSet is the bookmark store as seen by HTTP handlers.
// *bookmarks.Serialized satisfies it.
type SavedSet interface {
	IsSaved(rawID string) bool
	ToggleAndCheck(rawID string) bool
	Cleanup()
	List() []string
	Len() int
}

// HadithView is the JSON shape of a narration.
type HadithView struct {
	ID        string   `json:"id"`
	Book      string   `json:"book"`
	Number    string   `json:"number"`
	ChapterNo int      `json:"chapter_no"`
	Chapter   string   `json:"chapter"`
	TextAr    string   `json:"text_ar"`
	TextEn    string   `json:"text_en"`
	Chain     []string `json:"chain"`
	Saved     bool     `json:"saved"`
}

func newHadithView(n entities.Narration, saved SavedSet) HadithView {
	view := HadithView{
		ID:        n.SavedID(),
		Book:      n.Book(),
		Number:    n.Number(),
		ChapterNo: n.ChapterNo,
		Chapter:   n.Chapter,
		TextAr:    n.TextAr,
		TextEn:    n.TextEn,
		Chain:     n.Chain(),
	}
	if view.Chain == nil {
		view.Chain = []string{}
	}
	if saved != nil {
		view.Saved = saved.IsSaved(view.ID)
	}
	return view
}

func newHadithViews(rows []entities.Narration, saved SavedSet) []HadithView {
	views := make([]HadithView, 0, len(rows))
	for _, n := range rows {
		views = append(views, newHadithView(n, saved))
	}
	return views
}
