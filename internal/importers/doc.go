// Package importers loads the corpus CSV snapshots into the corpus database.
//
// # Architecture
//
// The import follows a simple flow:
//
//	CSV file → Parse*CSV → entities → Importer → CorpusWriter → Storage
//
// The parsers read the header row into an index map, so column order does not
// matter and unknown columns are ignored. Rows that cannot be used are skipped
// and reported as "Line N: ..." strings rather than failing the whole file.
//
// # Files
//
//   - hadiths CSV (all_hadiths_clean.csv): id, hadith_id, source, chapter_no,
//     hadith_no, chapter, chain_indx, text_ar, text_en
//   - narrators CSV (all_rawis.csv): scholar_indx, name, grade and the biography columns
//
// Chain indices are space separated in the CSV and stored comma separated.
//
// # Example Usage
//
//	importer := importers.NewImporter(corpusDB)
//	result, err := importer.Import(ctx, "all_hadiths_clean.csv", "all_rawis.csv")
package importers
