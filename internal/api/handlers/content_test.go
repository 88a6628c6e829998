package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentJSON struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Summary    string   `json:"summary"`
	Categories []string `json:"categories"`
	Document   string   `json:"document"`
	Author     string   `json:"author"`
}

func createContent(t *testing.T, h http.Handler, token string, body map[string]any) contentJSON {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/contents", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var item contentJSON
	require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &item))
	return item
}

func listContents(t *testing.T, h http.Handler, token string) []contentJSON {
	t.Helper()

	rec := doJSON(t, h, http.MethodGet, "/api/v1/contents", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var items []contentJSON
	require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &items))
	return items
}

func TestContentCreate_AuthorIsAlwaysCaller(t *testing.T) {
	h := setupTest(t)
	tokens := registerAndLogin(t, h, "asha", "asha@example.com")

	item := createContent(t, h, tokens.Access, map[string]any{
		"title":      "First post",
		"body":       "Some body text",
		"summary":    "A summary",
		"categories": []string{"a", "b"},
		"author":     "00000000-0000-0000-0000-000000000001",
	})

	assert.Equal(t, []string{"a", "b"}, item.Categories)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000001", item.Author)

	// The spoofed author never sticks: the item shows up in the caller's
	// own list.
	items := listContents(t, h, tokens.Access)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, item.Author, items[0].Author)
}

func TestContentCreate_EmptyCategories(t *testing.T) {
	h := setupTest(t)
	tokens := registerAndLogin(t, h, "asha", "asha@example.com")

	item := createContent(t, h, tokens.Access, map[string]any{
		"title":   "No categories",
		"body":    "Some body text",
		"summary": "A summary",
	})
	assert.Equal(t, []string{}, item.Categories)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/contents/"+item.ID, tokens.Access, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got contentJSON
	require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &got))
	assert.Equal(t, []string{}, got.Categories)
}

func TestContentCreate_Validation(t *testing.T) {
	h := setupTest(t)
	tokens := registerAndLogin(t, h, "asha", "asha@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/v1/contents", tokens.Access, map[string]any{
		"title":   strings.Repeat("t", 31),
		"body":    "Some body text",
		"summary": "A summary",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodePayload(t, rec).Errors, "title")
}

func TestContentList_Scoping(t *testing.T) {
	h := setupTest(t)
	asha := registerAndLogin(t, h, "asha", "asha@example.com")
	binh := registerAndLogin(t, h, "binh", "binh@example.com")
	createAdmin(t, "root@example.com")
	admin := login(t, h, "root@example.com", "Str0ngPass")

	createContent(t, h, asha.Access, map[string]any{
		"title": "Asha one", "body": "body", "summary": "summary",
	})
	createContent(t, h, asha.Access, map[string]any{
		"title": "Asha two", "body": "body", "summary": "summary",
	})
	createContent(t, h, binh.Access, map[string]any{
		"title": "Binh one", "body": "body", "summary": "summary",
	})

	assert.Len(t, listContents(t, h, asha.Access), 2)
	assert.Len(t, listContents(t, h, binh.Access), 1)
	assert.Len(t, listContents(t, h, admin.Access), 3)
}

func TestContentDetail_ForeignItemIsNotFound(t *testing.T) {
	h := setupTest(t)
	asha := registerAndLogin(t, h, "asha", "asha@example.com")
	binh := registerAndLogin(t, h, "binh", "binh@example.com")
	createAdmin(t, "root@example.com")
	admin := login(t, h, "root@example.com", "Str0ngPass")

	item := createContent(t, h, asha.Access, map[string]any{
		"title": "Asha only", "body": "body", "summary": "summary",
	})

	// Not forbidden: the item is simply outside binh's visible set.
	rec := doJSON(t, h, http.MethodGet, "/api/v1/contents/"+item.ID, binh.Access, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/contents/"+item.ID, asha.Access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/contents/"+item.ID, admin.Access, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/contents/not-a-uuid", asha.Access, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentUpdate(t *testing.T) {
	h := setupTest(t)
	asha := registerAndLogin(t, h, "asha", "asha@example.com")
	binh := registerAndLogin(t, h, "binh", "binh@example.com")
	createAdmin(t, "root@example.com")
	admin := login(t, h, "root@example.com", "Str0ngPass")

	item := createContent(t, h, asha.Access, map[string]any{
		"title": "Original", "body": "body", "summary": "summary",
		"categories": []string{"old"},
	})

	// Owner update: omitted fields keep their values, categories are
	// replaced wholesale.
	rec := doJSON(t, h, http.MethodPut, "/api/v1/contents/"+item.ID, asha.Access, map[string]any{
		"title":      "Renamed",
		"categories": []string{"new", "labels"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated contentJSON
	require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &updated))
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "body", updated.Body)
	assert.Equal(t, []string{"new", "labels"}, updated.Categories)

	// Malformed update
	rec = doJSON(t, h, http.MethodPut, "/api/v1/contents/"+item.ID, asha.Access, map[string]any{
		"title": strings.Repeat("t", 31),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Another author cannot update; the item is not in their visible set.
	rec = doJSON(t, h, http.MethodPut, "/api/v1/contents/"+item.ID, binh.Access, map[string]any{
		"title": "Hijack",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Admins can update anything.
	rec = doJSON(t, h, http.MethodPut, "/api/v1/contents/"+item.ID, admin.Access, map[string]any{
		"title": "Admin edit",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContentDelete(t *testing.T) {
	h := setupTest(t)
	asha := registerAndLogin(t, h, "asha", "asha@example.com")
	binh := registerAndLogin(t, h, "binh", "binh@example.com")

	item := createContent(t, h, asha.Access, map[string]any{
		"title": "Doomed", "body": "body", "summary": "summary",
	})

	rec := doJSON(t, h, http.MethodDelete, "/api/v1/contents/"+item.ID, binh.Access, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/contents/"+item.ID, asha.Access, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/contents/"+item.ID, asha.Access, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func searchContents(t *testing.T, h http.Handler, token, query string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, h, http.MethodGet, "/api/v1/contents/search?query="+url.QueryEscape(query), token, nil)
}

func TestSearch_MatchesAnyField(t *testing.T) {
	h := setupTest(t)
	asha := registerAndLogin(t, h, "asha", "asha@example.com")

	createContent(t, h, asha.Access, map[string]any{
		"title":      "Go Routines",
		"body":       "All about channels and select",
		"summary":    "A concurrency primer",
		"categories": []string{"golang", "backend"},
	})

	for _, query := range []string{"routines", "CHANNELS", "Primer", "golang"} {
		rec := searchContents(t, h, asha.Access, query)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var items []contentJSON
		require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &items))
		assert.Len(t, items, 1, "query %q", query)
	}

	rec := searchContents(t, h, asha.Access, "zzz-no-match")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []contentJSON
	require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &items))
	assert.Empty(t, items)
}

func TestSearch_MetacharactersMatchLiterally(t *testing.T) {
	h := setupTest(t)
	asha := registerAndLogin(t, h, "asha", "asha@example.com")

	createContent(t, h, asha.Access, map[string]any{
		"title": "abc widget", "body": "body", "summary": "summary",
	})
	createContent(t, h, asha.Access, map[string]any{
		"title": "100% organic", "body": "body", "summary": "summary",
	})
	createContent(t, h, asha.Access, map[string]any{
		"title": "snake_case", "body": "body", "summary": "summary",
	})

	// "a_c" and "a%c" are substrings of nothing above; without escaping
	// they would wildcard-match "abc widget".
	for _, query := range []string{"a_c", "a%c"} {
		rec := searchContents(t, h, asha.Access, query)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var items []contentJSON
		require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &items))
		assert.Empty(t, items, "query %q", query)
	}

	tests := []struct {
		query string
		title string
	}{
		{"% organic", "100% organic"},
		{"snake_", "snake_case"},
	}
	for _, tt := range tests {
		rec := searchContents(t, h, asha.Access, tt.query)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var items []contentJSON
		require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &items))
		require.Len(t, items, 1, "query %q", tt.query)
		assert.Equal(t, tt.title, items[0].Title)
	}
}

func TestSearch_QueryValidation(t *testing.T) {
	h := setupTest(t)
	asha := registerAndLogin(t, h, "asha", "asha@example.com")

	rec := searchContents(t, h, asha.Access, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = searchContents(t, h, asha.Access, strings.Repeat("q", 101))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_IsGlobal(t *testing.T) {
	h := setupTest(t)
	asha := registerAndLogin(t, h, "asha", "asha@example.com")
	binh := registerAndLogin(t, h, "binh", "binh@example.com")

	createContent(t, h, asha.Access, map[string]any{
		"title": "Hidden gem", "body": "body", "summary": "summary",
	})

	// binh cannot list asha's item but can find it through search.
	assert.Empty(t, listContents(t, h, binh.Access))

	rec := searchContents(t, h, binh.Access, "hidden gem")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []contentJSON
	require.NoError(t, json.Unmarshal(decodePayload(t, rec).Data, &items))
	assert.Len(t, items, 1)
}
