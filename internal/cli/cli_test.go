package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadithapp/hadith/internal/bookmarks"
	"github.com/hadithapp/hadith/internal/database"
	"github.com/hadithapp/hadith/internal/database/settings"
	"github.com/hadithapp/hadith/internal/entities"
)

const testHadithsCSV = `id,hadith_id,source,chapter_no,hadith_no,chapter,chain_indx,text_ar,text_en
1,1, Sahih Bukhari ,1, 1,Revelation,"30418, 20005",نص,Narrated Umar: Actions are by intentions
2,2, Sahih Bukhari ,1, 2,Revelation,20005,نص,Narrated Aisha: Al-Harith asked
`

const testNarratorsCSV = `scholar_indx,name,grade
30418,Umar ibn al-Khattab,Comp.(RA)
20005,Aisha bint Abi Bakr,Comp.(RA)
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func storedSet(t *testing.T, userDBPath string) []string {
	t.Helper()
	db, err := database.NewUserDatabase(userDBPath)
	require.NoError(t, err)
	defer db.Close()

	value, ok, err := settings.NewRepository(db.DB).GetValue(bookmarks.DefaultStorageKey)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	ids, err := bookmarks.Decode([]byte(value))
	require.NoError(t, err)
	return ids
}

func TestBookmarksCommand_ParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"list", []string{"-list"}, false},
		{"toggle", []string{"-toggle", "A_1"}, false},
		{"no action", []string{}, true},
		{"two actions", []string{"-list", "-cleanup"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBookmarksCommand().ParseFlags(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookmarksCommand_Run(t *testing.T) {
	userDB := filepath.Join(t.TempDir(), "user.db")

	run := func(args ...string) {
		t.Helper()
		cmd := NewBookmarksCommand()
		require.NoError(t, cmd.ParseFlags(append([]string{"-user-db", userDB}, args...)))
		require.NoError(t, cmd.Run())
	}

	run("-toggle", " Sahih Bukhari _5")
	run("-toggle", "Sahih Muslim_2")
	assert.Equal(t, []string{"Sahih Bukhari_5", "Sahih Muslim_2"}, storedSet(t, userDB))

	run("-toggle", "Sahih Muslim _ 2")
	assert.Equal(t, []string{"Sahih Bukhari_5"}, storedSet(t, userDB))

	run("-list")
	run("-check", "Sahih Bukhari_5")
}

func TestBookmarksCommand_Cleanup(t *testing.T) {
	userDB := filepath.Join(t.TempDir(), "user.db")

	db, err := database.NewUserDatabase(userDB)
	require.NoError(t, err)
	require.NoError(t, settings.NewRepository(db.DB).SetSetting(bookmarks.DefaultStorageKey, `["A_1"," A _1"]`))
	require.NoError(t, db.Close())

	cmd := NewBookmarksCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-user-db", userDB, "-cleanup"}))
	require.NoError(t, cmd.Run())

	assert.Equal(t, []string{"A_1"}, storedSet(t, userDB))
}

func TestImportCorpusCommand_Run(t *testing.T) {
	dir := t.TempDir()
	corpusDB := filepath.Join(dir, "source.db")
	userDB := filepath.Join(dir, "user.db")

	cmd := NewImportCorpusCommand()
	require.NoError(t, cmd.ParseFlags([]string{
		"-hadiths", writeFile(t, dir, "h.csv", testHadithsCSV),
		"-narrators", writeFile(t, dir, "n.csv", testNarratorsCSV),
		"-db", corpusDB,
		"-user-db", userDB,
	}))
	require.NoError(t, cmd.Run())

	db, err := database.NewDatabase(corpusDB)
	require.NoError(t, err)
	defer db.Close()

	narrations, narrators, err := db.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), narrations)
	assert.Equal(t, int64(2), narrators)

	udb, err := database.NewUserDatabase(userDB)
	require.NoError(t, err)
	defer udb.Close()

	var events []entities.AuditEvent
	require.NoError(t, udb.DB.Where("action = ?", "corpus_import").Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
}

func TestImportCorpusCommand_ParseFlags(t *testing.T) {
	err := NewImportCorpusCommand().ParseFlags([]string{"-hadiths", "", "-narrators", ""})
	assert.Error(t, err)
}

func TestImportCorpusCommand_MissingFile(t *testing.T) {
	cmd := NewImportCorpusCommand()
	require.NoError(t, cmd.ParseFlags([]string{
		"-hadiths", filepath.Join(t.TempDir(), "missing.csv"),
		"-narrators", "",
	}))
	assert.Error(t, cmd.Run())
}

func TestSearchCommand(t *testing.T) {
	t.Run("query required", func(t *testing.T) {
		assert.Error(t, NewSearchCommand().ParseFlags([]string{"-q", "  "}))
	})

	t.Run("runs against corpus", func(t *testing.T) {
		corpusDB := filepath.Join(t.TempDir(), "source.db")
		db, err := database.NewDatabase(corpusDB)
		require.NoError(t, err)
		require.NoError(t, db.DB.Create(&entities.Narration{Source: "Sahih Muslim", HadithNo: "1", TextEn: "intentions matter"}).Error)
		require.NoError(t, db.Close())

		cmd := NewSearchCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-db", corpusDB, "-q", "intention"}))
		assert.NoError(t, cmd.Run())

		cmd = NewSearchCommand()
		require.NoError(t, cmd.ParseFlags([]string{"-db", corpusDB, "-q", "ab"}))
		assert.Error(t, cmd.Run())
	})
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "a b", preview(" a \n b ", 10))
	assert.Equal(t, "abc...", preview("abcdef", 3))
}
