package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hadithapp/hadith/internal/audit"
	"github.com/hadithapp/hadith/internal/bookmarks"
	"github.com/hadithapp/hadith/internal/database"
	auditrepo "github.com/hadithapp/hadith/internal/database/audit"
	"github.com/hadithapp/hadith/internal/database/narrations"
	"github.com/hadithapp/hadith/internal/database/narrators"
	"github.com/hadithapp/hadith/internal/database/settings"
	"github.com/hadithapp/hadith/internal/entities"
	"github.com/hadithapp/hadith/internal/settingsstore"
)

type testEnv struct {
	corpusDB  *database.Database
	userDB    *database.Database
	corpus    *narrations.Repository
	narrators *narrators.Repository
	settings  *settings.Repository
	store     *settingsstore.SettingsStore
	audit     *audit.Service
	saved     *bookmarks.Serialized
}

type fixedRand int64

func (f fixedRand) Int63n(n int64) int64 {
	return int64(f) % n
}

// setupTestEnv opens a seeded corpus database and an empty user database in
// a temp dir. legacy entries, if any, are written to the saved slot verbatim
// before the store is built, and startup cleanup is skipped.
func setupTestEnv(t *testing.T, legacy ...string) *testEnv {
	t.Helper()
	dir := t.TempDir()

	corpusDB, err := database.NewDatabase(filepath.Join(dir, "source.db"))
	require.NoError(t, err)
	userDB, err := database.NewUserDatabase(filepath.Join(dir, "user.db"))
	require.NoError(t, err)

	env := &testEnv{
		corpusDB:  corpusDB,
		userDB:    userDB,
		corpus:    narrations.NewRepository(corpusDB.DB),
		narrators: narrators.NewRepository(corpusDB.DB),
		settings:  settings.NewRepository(userDB.DB),
	}
	env.store = settingsstore.New(env.settings, settingsstore.Defaults{})
	env.audit = audit.NewService(auditrepo.NewRepository(userDB.DB))

	t.Cleanup(func() {
		env.audit.Flush()
		corpusDB.Close()
		userDB.Close()
	})

	seedTestCorpus(t, corpusDB)

	slot := settingsstore.NewBlobSlot(env.settings)
	opts := []bookmarks.Option{bookmarks.WithDiagnostics(env.audit)}
	if len(legacy) > 0 {
		data, err := bookmarks.Encode(legacy)
		require.NoError(t, err)
		require.NoError(t, slot.Write(bookmarks.DefaultStorageKey, data))
		opts = append(opts, bookmarks.SkipStartupCleanup())
	}
	env.saved = bookmarks.NewSerialized(bookmarks.New(slot, opts...))

	return env
}

func seedTestCorpus(t *testing.T, db *database.Database) {
	t.Helper()
	rows := []entities.Narration{
		{HadithID: 1, Source: " Sahih Bukhari ", ChapterNo: 1, HadithNo: " 1", Chapter: "Revelation", ChainIndx: "30418, 20005", TextAr: "إنما الأعمال بالنيات", TextEn: "Narrated Umar: Actions are by intentions"},
		{HadithID: 2, Source: " Sahih Bukhari ", ChapterNo: 1, HadithNo: " 2", Chapter: "Revelation", ChainIndx: "20005", TextAr: "نص", TextEn: "Narrated Aisha: Al-Harith asked"},
		{HadithID: 3, Source: " Sahih Bukhari ", ChapterNo: 2, HadithNo: " 8", Chapter: "Belief", TextAr: "نص", TextEn: "Islam is based on five"},
		{HadithID: 4, Source: "Sahih Muslim", ChapterNo: 1, HadithNo: "1", Chapter: "Faith", TextAr: "نص", TextEn: "Narrated Yahya: intentions matter"},
	}
	require.NoError(t, db.DB.Create(&rows).Error)

	people := []entities.Narrator{
		{ScholarIndx: "30418", Name: "Umar ibn al-Khattab", Grade: "Comp.(RA)"},
		{ScholarIndx: "20005", Name: "Aisha bint Abi Bakr", Grade: "Comp.(RA)"},
	}
	require.NoError(t, db.DB.Create(&people).Error)
}

func (env *testEnv) routerConfig() RouterConfig {
	return RouterConfig{
		Corpus:          env.corpus,
		Narrators:       env.narrators,
		Saved:           env.saved,
		Rand:            fixedRand(0),
		CorpusDatabase:  env.corpusDB,
		UserDatabase:    env.userDB,
		Auditor:         env.audit,
		AuditReader:     env.audit,
		CleanupSettings: env.store,
		Version:         "test",
	}
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
