// Package narrators provides read access to narrator (rawi) records and isnad resolution.
//
// This package implements the NarratorReader interface defined in internal/http/stores.go.
package narrators

import (
	"strings"

	"gorm.io/gorm"

	"github.com/hadithapp/hadith/internal/entities"
)

// Repository handles all narrator queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new narrators repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetNarrator returns the narrator with the given scholar index, or gorm.ErrRecordNotFound.
func (r *Repository) GetNarrator(scholarIndx string) (*entities.Narrator, error) {
	var narrator entities.Narrator
	err := r.db.Where("scholar_indx = ?", strings.TrimSpace(scholarIndx)).First(&narrator).Error
	if err != nil {
		return nil, err
	}
	return &narrator, nil
}

// GetNarrators returns the narrators for the given indices in the same order.
// Unknown indices are skipped.
func (r *Repository) GetNarrators(indices []string) ([]entities.Narrator, error) {
	if len(indices) == 0 {
		return []entities.Narrator{}, nil
	}

	var found []entities.Narrator
	if err := r.db.Where("scholar_indx IN ?", indices).Find(&found).Error; err != nil {
		return nil, err
	}

	byIndex := make(map[string]entities.Narrator, len(found))
	for _, n := range found {
		byIndex[n.ScholarIndx] = n
	}

	ordered := make([]entities.Narrator, 0, len(indices))
	for _, idx := range indices {
		if n, ok := byIndex[idx]; ok {
			ordered = append(ordered, n)
		}
	}
	return ordered, nil
}

// GetChain resolves a narration's chain index into narrator links.
// Position is the 1-based place of the narrator in the original chain, so gaps
// show where an index could not be resolved.
func (r *Repository) GetChain(chainIndx string) ([]entities.ChainLink, error) {
	indices := entities.ParseChain(chainIndx)
	narrators, err := r.GetNarrators(indices)
	if err != nil {
		return nil, err
	}

	byIndex := make(map[string]entities.Narrator, len(narrators))
	for _, n := range narrators {
		byIndex[n.ScholarIndx] = n
	}

	links := make([]entities.ChainLink, 0, len(indices))
	for i, idx := range indices {
		n, ok := byIndex[idx]
		if !ok {
			continue
		}
		links = append(links, entities.ChainLink{
			Position:       i + 1,
			ScholarIndx:    n.ScholarIndx,
			Name:           n.Name,
			Grade:          n.Grade,
			BirthDatePlace: n.BirthDatePlace,
			DeathDatePlace: n.DeathDatePlace,
		})
	}
	return links, nil
}
