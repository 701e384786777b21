package entities

import (
	"strings"
	"unicode"

	"github.com/hadithapp/hadith/internal/bookmarks"
)

// Narration is one hadith row of the bundled corpus.
// Source and HadithNo may carry surrounding whitespace in the shipped data.
type Narration struct {
	ID        uint   `gorm:"primaryKey;column:id" json:"id"`
	HadithID  int    `gorm:"column:hadith_id;index" json:"hadith_id"`
	Source    string `gorm:"column:source;index;size:128" json:"source"`
	ChapterNo int    `gorm:"column:chapter_no;index" json:"chapter_no"`
	HadithNo  string `gorm:"column:hadith_no;size:32" json:"hadith_no"`
	Chapter   string `gorm:"column:chapter;size:512" json:"chapter"`
	ChainIndx string `gorm:"column:chain_indx;type:text" json:"chain_indx"`
	TextAr    string `gorm:"column:text_ar;type:text" json:"text_ar"`
	TextEn    string `gorm:"column:text_en;type:text" json:"text_en"`
}

func (Narration) TableName() string {
	return "narrations"
}

// Book returns the collection name without padding.
func (n Narration) Book() string {
	return strings.TrimSpace(n.Source)
}

// Number returns the in-collection hadith number without padding.
func (n Narration) Number() string {
	return strings.TrimSpace(n.HadithNo)
}

// SavedID returns the canonical bookmark identifier for this narration.
func (n Narration) SavedID() string {
	return bookmarks.Join(n.Source, n.HadithNo)
}

// Chain returns the narrator indices of the isnad in order.
func (n Narration) Chain() []string {
	return ParseChain(n.ChainIndx)
}

// Narrator is a transmitter (rawi) referenced from narration chains.
type Narrator struct {
	ScholarIndx        string `gorm:"primaryKey;column:scholar_indx;size:16" json:"scholar_indx"`
	Name               string `gorm:"column:name;size:512;index" json:"name"`
	Grade              string `gorm:"column:grade;size:256" json:"grade"`
	Parents            string `gorm:"column:parents;type:text" json:"parents,omitempty"`
	Spouse             string `gorm:"column:spouse;type:text" json:"spouse,omitempty"`
	Siblings           string `gorm:"column:siblings;type:text" json:"siblings,omitempty"`
	Children           string `gorm:"column:children;type:text" json:"children,omitempty"`
	BirthDatePlace     string `gorm:"column:birth_date_place;type:text" json:"birth_date_place,omitempty"`
	PlacesOfStay       string `gorm:"column:places_of_stay;type:text" json:"places_of_stay,omitempty"`
	DeathDatePlace     string `gorm:"column:death_date_place;type:text" json:"death_date_place,omitempty"`
	Teachers           string `gorm:"column:teachers;type:text" json:"teachers,omitempty"`
	Students           string `gorm:"column:students;type:text" json:"students,omitempty"`
	AreaOfInterest     string `gorm:"column:area_of_interest;type:text" json:"area_of_interest,omitempty"`
	Tags               string `gorm:"column:tags;type:text" json:"tags,omitempty"`
	Books              string `gorm:"column:books;type:text" json:"books,omitempty"`
	StudentsInds       string `gorm:"column:students_inds;type:text" json:"students_inds,omitempty"`
	TeachersInds       string `gorm:"column:teachers_inds;type:text" json:"teachers_inds,omitempty"`
	BirthPlace         string `gorm:"column:birth_place;size:256" json:"birth_place,omitempty"`
	BirthDate          string `gorm:"column:birth_date;size:256" json:"birth_date,omitempty"`
	BirthDateHijri     *int   `gorm:"column:birth_date_hijri" json:"birth_date_hijri,omitempty"`
	BirthDateGregorian *int   `gorm:"column:birth_date_gregorian" json:"birth_date_gregorian,omitempty"`
	DeathDateHijri     *int   `gorm:"column:death_date_hijri" json:"death_date_hijri,omitempty"`
	DeathDateGregorian *int   `gorm:"column:death_date_gregorian" json:"death_date_gregorian,omitempty"`
	DeathPlace         string `gorm:"column:death_place;size:256" json:"death_place,omitempty"`
	DeathReason        string `gorm:"column:death_reason;type:text" json:"death_reason,omitempty"`
}

func (Narrator) TableName() string {
	return "narrators"
}

// StudentIndices returns the scholar indices of the narrator's students.
func (n Narrator) StudentIndices() []string {
	return ParseChain(n.StudentsInds)
}

// TeacherIndices returns the scholar indices of the narrator's teachers.
func (n Narrator) TeacherIndices() []string {
	return ParseChain(n.TeachersInds)
}

// Book is a collection in the corpus.
type Book struct {
	Name        string `json:"name"`
	HadithCount int64  `json:"hadith_count"`
}

// Chapter is a numbered chapter within a book.
type Chapter struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// ChainLink is one resolved narrator in an isnad.
type ChainLink struct {
	Position       int    `json:"position"`
	ScholarIndx    string `json:"scholar_indx"`
	Name           string `json:"name"`
	Grade          string `json:"grade,omitempty"`
	BirthDatePlace string `json:"birth_date_place,omitempty"`
	DeathDatePlace string `json:"death_date_place,omitempty"`
}

// ParseChain splits a chain index into scholar indices. The corpus uses both
// comma and space separated forms ("30418, 20005" and "30418 20005").
func ParseChain(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
