package importers

import (
	"fmt"
	"io"
	"strings"

	"github.com/hadithapp/hadith/internal/entities"
)

// ParseHadithsCSV parses the hadiths snapshot.
// Returns the parsed rows, any per-line errors encountered, and a fatal error if the header is unusable.
func ParseHadithsCSV(r io.Reader) ([]entities.Narration, []string, error) {
	var rows []entities.Narration
	seen := make(map[uint]bool)

	lineErrors, err := csvRecords(r, []string{"source", "hadith_no", "text_en"}, func(line int, rec csvRecord) string {
		n := entities.Narration{
			ID:        uint(rec.getInt("id")),
			HadithID:  rec.getInt("hadith_id"),
			Source:    rec.raw("source"),
			ChapterNo: rec.getInt("chapter_no"),
			HadithNo:  rec.get("hadith_no"),
			Chapter:   rec.get("chapter"),
			ChainIndx: strings.Join(entities.ParseChain(rec.get("chain_indx")), ","),
			TextAr:    rec.get("text_ar"),
			TextEn:    rec.get("text_en"),
		}

		if strings.TrimSpace(n.Source) == "" || n.HadithNo == "" {
			return "skipped - missing source or hadith_no"
		}
		// Rows without an id get one from sqlite.
		if n.ID != 0 {
			if seen[n.ID] {
				return fmt.Sprintf("skipped - duplicate id %d", n.ID)
			}
			seen[n.ID] = true
		}

		rows = append(rows, n)
		return ""
	})
	if err != nil {
		return nil, nil, err
	}

	return rows, lineErrors, nil
}

// ParseNarratorsCSV parses the narrators snapshot. The key column may be
// named scholar_indx or id.
func ParseNarratorsCSV(r io.Reader) ([]entities.Narrator, []string, error) {
	var rows []entities.Narrator
	seen := make(map[string]bool)

	lineErrors, err := csvRecords(r, []string{"name"}, func(line int, rec csvRecord) string {
		key := rec.get("scholar_indx", "id")
		if key == "" {
			return "skipped - missing scholar_indx"
		}
		if seen[key] {
			return "skipped - duplicate scholar_indx " + key
		}
		seen[key] = true

		rows = append(rows, entities.Narrator{
			ScholarIndx:        key,
			Name:               rec.get("name"),
			Grade:              rec.get("grade"),
			Parents:            rec.get("parents"),
			Spouse:             rec.get("spouse"),
			Siblings:           rec.get("siblings"),
			Children:           rec.get("children"),
			BirthDatePlace:     rec.get("birth_date_place"),
			PlacesOfStay:       rec.get("places_of_stay"),
			DeathDatePlace:     rec.get("death_date_place"),
			Teachers:           rec.get("teachers"),
			Students:           rec.get("students"),
			AreaOfInterest:     rec.get("area_of_interest"),
			Tags:               rec.get("tags"),
			Books:              rec.get("books"),
			StudentsInds:       rec.get("students_inds"),
			TeachersInds:       rec.get("teachers_inds"),
			BirthPlace:         rec.get("birth_place"),
			BirthDate:          rec.get("birth_date"),
			BirthDateHijri:     rec.optionalInt("birth_date_hijri"),
			BirthDateGregorian: rec.optionalInt("birth_date_gregorian"),
			DeathDateHijri:     rec.optionalInt("death_date_hijri"),
			DeathDateGregorian: rec.optionalInt("death_date_gregorian"),
			DeathPlace:         rec.get("death_place"),
			DeathReason:        rec.get("death_reason"),
		})
		return ""
	})
	if err != nil {
		return nil, nil, err
	}

	return rows, lineErrors, nil
}
