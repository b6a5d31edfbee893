package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/skawahara/kotoba-sns-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formResponse is the validation-failure rendering payload: submitted values
// echoed back plus field-level messages.
type formResponse struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors"`
}

func TestWordsRequireLogin(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(http.MethodGet, "/words", nil, nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestWordIndexIsScopedToActingUser(t *testing.T) {
	app := newTestApp(t)
	aliceSession, _ := app.registerUser("テストさん", "alice@example.com")
	bobSession, _ := app.registerUser("テストくん", "bob@example.com")

	for _, w := range []string{"単語1", "単語2", "単語3"} {
		resp := app.do(http.MethodPost, "/words", map[string]string{"word": w, "reading": "読み"}, aliceSession)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	}
	resp := app.do(http.MethodPost, "/words", map[string]string{"word": "単語4", "reading": "読み4"}, bobSession)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var words []models.Word
	app.decode(app.do(http.MethodGet, "/words", nil, aliceSession), &words)
	require.Len(t, words, 3)
	for _, w := range words {
		assert.NotEqual(t, "単語4", w.Word)
	}

	var bobWords []models.Word
	app.decode(app.do(http.MethodGet, "/words", nil, bobSession), &bobWords)
	require.Len(t, bobWords, 1)
	assert.Equal(t, "単語4", bobWords[0].Word)
}

func TestWordCreateValidation(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.registerUser("テストさん", "alice@example.com")

	t.Run("blank fields", func(t *testing.T) {
		resp := app.do(http.MethodPost, "/words", map[string]string{"word": "", "reading": ""}, session)
		require.Equal(t, http.StatusOK, resp.StatusCode, "validation failure is not a transport error")

		var form formResponse
		app.decode(resp, &form)
		assert.Equal(t, "can't be blank", form.Errors["word"])
		assert.Equal(t, "can't be blank", form.Errors["reading"])

		var words []models.Word
		app.decode(app.do(http.MethodGet, "/words", nil, session), &words)
		assert.Empty(t, words, "nothing persisted")
	})

	t.Run("141 characters is too long", func(t *testing.T) {
		long := strings.Repeat("あ", 141)
		resp := app.do(http.MethodPost, "/words", map[string]string{"word": long, "reading": long}, session)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var form formResponse
		app.decode(resp, &form)
		assert.Equal(t, long, form.Values["word"], "submitted values are preserved")
		assert.Equal(t, "is too long (maximum is 140 characters)", form.Errors["word"])
		assert.Equal(t, "is too long (maximum is 140 characters)", form.Errors["reading"])

		var words []models.Word
		app.decode(app.do(http.MethodGet, "/words", nil, session), &words)
		assert.Empty(t, words)
	})

	t.Run("140 characters exactly succeeds", func(t *testing.T) {
		edge := strings.Repeat("あ", 140)
		resp := app.do(http.MethodPost, "/words", map[string]string{"word": edge, "reading": edge}, session)
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/words", resp.Header.Get("Location"))

		var words []models.Word
		app.decode(app.do(http.MethodGet, "/words", nil, session), &words)
		require.Len(t, words, 1)
		assert.Equal(t, edge, words[0].Word)
	})
}

func TestWordUpdateByOwner(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.registerUser("テストさん", "alice@example.com")

	resp := app.do(http.MethodPost, "/words", map[string]string{"word": "編集前単語", "reading": "編集前読み"}, session)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var words []models.Word
	app.decode(app.do(http.MethodGet, "/words", nil, session), &words)
	require.Len(t, words, 1)
	id := words[0].ID

	resp = app.do(http.MethodPatch, "/words/"+id, map[string]string{"word": "編集後単語", "reading": "編集後読み"}, session)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/words", resp.Header.Get("Location"))

	var word models.Word
	app.decode(app.do(http.MethodGet, "/words/"+id, nil, nil), &word)
	assert.Equal(t, "編集後単語", word.Word)
	assert.Equal(t, "編集後読み", word.Reading)
}

func TestWordMutationByForeignUserIsRejected(t *testing.T) {
	app := newTestApp(t)
	aliceSession, _ := app.registerUser("テストさん", "alice@example.com")
	bobSession, _ := app.registerUser("テストくん", "bob@example.com")

	resp := app.do(http.MethodPost, "/words", map[string]string{"word": "単語", "reading": "読み"}, aliceSession)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var words []models.Word
	app.decode(app.do(http.MethodGet, "/words", nil, aliceSession), &words)
	require.Len(t, words, 1)
	id := words[0].ID

	// Bob tries to edit Alice's word.
	resp = app.do(http.MethodPatch, "/words/"+id, map[string]string{"word": "上書き", "reading": "うわがき"}, bobSession)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/words", resp.Header.Get("Location"))
	assert.Equal(t, "not authorized", app.notice(resp))

	var word models.Word
	app.decode(app.do(http.MethodGet, "/words/"+id, nil, nil), &word)
	assert.Equal(t, "単語", word.Word)
	assert.Equal(t, "読み", word.Reading)

	// Bob tries to delete it.
	resp = app.do(http.MethodDelete, "/words/"+id, nil, bobSession)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "not authorized", app.notice(resp))

	app.decode(app.do(http.MethodGet, "/words", nil, aliceSession), &words)
	assert.Len(t, words, 1, "row still exists")
}

func TestWordDestroyByOwner(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.registerUser("テストさん", "alice@example.com")

	resp := app.do(http.MethodPost, "/words", map[string]string{"word": "削除前単語", "reading": "削除前読み"}, session)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var words []models.Word
	app.decode(app.do(http.MethodGet, "/words", nil, session), &words)
	require.Len(t, words, 1)

	resp = app.do(http.MethodDelete, "/words/"+words[0].ID, nil, session)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/words", resp.Header.Get("Location"))

	app.decode(app.do(http.MethodGet, "/words", nil, session), &words)
	assert.Empty(t, words)
}

func TestWordUpdateValidationKeepsRow(t *testing.T) {
	app := newTestApp(t)
	session, _ := app.registerUser("テストさん", "alice@example.com")

	resp := app.do(http.MethodPost, "/words", map[string]string{"word": "編集前単語", "reading": "編集前読み"}, session)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var words []models.Word
	app.decode(app.do(http.MethodGet, "/words", nil, session), &words)
	require.Len(t, words, 1)
	id := words[0].ID

	resp = app.do(http.MethodPatch, "/words/"+id, map[string]string{"word": "", "reading": ""}, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var form formResponse
	app.decode(resp, &form)
	assert.Equal(t, "can't be blank", form.Errors["word"])

	var word models.Word
	app.decode(app.do(http.MethodGet, "/words/"+id, nil, nil), &word)
	assert.Equal(t, "編集前単語", word.Word)
	assert.Equal(t, "編集前読み", word.Reading)
}
