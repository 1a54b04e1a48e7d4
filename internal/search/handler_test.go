package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"itooklib/internal/advisor"
	"itooklib/internal/session"
	"itooklib/pkg/models"
)

type fakeCatalog struct {
	results     []models.Character
	single      *models.Character
	err         error
	searchCalls int
	singleCalls int
}

func (f *fakeCatalog) SearchCharacters(ctx context.Context, query string) ([]models.Character, error) {
	f.searchCalls++
	return f.results, f.err
}

func (f *fakeCatalog) SearchCharacter(ctx context.Context, query string) (*models.Character, error) {
	f.singleCalls++
	return f.single, f.err
}

type fakeAdvisor struct {
	detected     string
	analysis     string
	analyzeCalls int
}

func (f *fakeAdvisor) IdentifyCharacter(ctx context.Context, imageData []byte, mimeType string) string {
	return f.detected
}

func (f *fakeAdvisor) AnalyzeProfile(ctx context.Context, char *models.Character) string {
	f.analyzeCalls++
	return f.analysis
}

func newTestEnv(t *testing.T, h *Handler) (*gin.Engine, *session.State, *http.Cookie) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(time.Hour)
	tokens := session.TokenService{Secret: []byte("s"), Issuer: "itooklib", Duration: time.Hour}
	id, state := store.Create()
	signed, _, err := tokens.Sign(id)
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}

	router := gin.New()
	group := router.Group("/search")
	group.Use(session.Middleware(store, tokens))
	h.RegisterRoutes(group)

	return router, state, &http.Cookie{Name: session.CookieName, Value: signed}
}

func postJSON(router *gin.Engine, cookie *http.Cookie, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)
	return w
}

func luffyResults() []models.Character {
	return []models.Character{
		{MalID: 40, Name: "Monkey D. Luffy"},
		{MalID: 41, Name: "Luffy Zwei"},
		{MalID: 42, Name: "Luffyko"},
	}
}

func TestSearchByNameStoresResults(t *testing.T) {
	catalog := &fakeCatalog{results: luffyResults()}
	router, state, cookie := newTestEnv(t, NewHandler(catalog, &fakeAdvisor{}))

	w := postJSON(router, cookie, "/search/characters", `{"query":"Luffy"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Found   bool               `json:"found"`
		Total   int                `json:"total"`
		Results []models.Character `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Found || resp.Total != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	view := state.View()
	if len(view.SearchResults) != 3 || view.SelectedCharacter != nil {
		t.Fatalf("unexpected session view: %+v", view)
	}
	for i, want := range []int{40, 41, 42} {
		if view.SearchResults[i].MalID != want {
			t.Fatalf("result order not preserved: %+v", view.SearchResults)
		}
	}
	if got := len(state.History()); got != 0 {
		t.Fatalf("listing results must not record history, got %d entries", got)
	}
}

func TestSearchByNameEmptyQuery(t *testing.T) {
	catalog := &fakeCatalog{}
	router, state, cookie := newTestEnv(t, NewHandler(catalog, &fakeAdvisor{}))

	w := postJSON(router, cookie, "/search/characters", `{"query":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if catalog.searchCalls != 0 {
		t.Fatalf("empty query must not reach the provider")
	}
	if got := len(state.History()); got != 0 {
		t.Fatalf("expected no history, got %d", got)
	}
}

func TestSearchByNameNotFoundClearsResults(t *testing.T) {
	catalog := &fakeCatalog{results: luffyResults()}
	router, state, cookie := newTestEnv(t, NewHandler(catalog, &fakeAdvisor{}))

	postJSON(router, cookie, "/search/characters", `{"query":"Luffy"}`)

	catalog.results = nil
	w := postJSON(router, cookie, "/search/characters", `{"query":"zzz"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No character found!") {
		t.Fatalf("missing not-found message: %s", w.Body.String())
	}

	view := state.View()
	if view.ShowCharacterList || len(view.SearchResults) != 0 {
		t.Fatalf("prior results must be cleared: %+v", view)
	}
}

func TestSearchProviderFailureRendersNotFound(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("jikan down")}
	router, _, cookie := newTestEnv(t, NewHandler(catalog, &fakeAdvisor{}))

	w := postJSON(router, cookie, "/search/characters", `{"query":"Luffy"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("provider failure must render softly, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No character found!") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSelectCharacterAnalyzesAndRecords(t *testing.T) {
	catalog := &fakeCatalog{results: luffyResults()}
	adv := &fakeAdvisor{analysis: "report"}
	router, state, cookie := newTestEnv(t, NewHandler(catalog, adv))

	postJSON(router, cookie, "/search/characters", `{"query":"Luffy"}`)

	w := postJSON(router, cookie, "/search/characters/select", `{"mal_id":41}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	if adv.analyzeCalls != 1 {
		t.Fatalf("expected exactly one analysis call, got %d", adv.analyzeCalls)
	}

	view := state.View()
	if view.SelectedCharacter == nil || view.SelectedCharacter.MalID != 41 {
		t.Fatalf("selection not stored: %+v", view)
	}

	entries := state.History()
	if len(entries) != 1 || entries[0].Type != models.HistoryCharacterText {
		t.Fatalf("unexpected history: %+v", entries)
	}
	if entries[0].Query != "Luffy" || entries[0].Result != "Luffy Zwei" {
		t.Fatalf("unexpected history entry: %+v", entries[0])
	}
}

func TestSelectCharacterNotInResults(t *testing.T) {
	catalog := &fakeCatalog{results: luffyResults()}
	adv := &fakeAdvisor{}
	router, _, cookie := newTestEnv(t, NewHandler(catalog, adv))

	postJSON(router, cookie, "/search/characters", `{"query":"Luffy"}`)

	w := postJSON(router, cookie, "/search/characters/select", `{"mal_id":999}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if adv.analyzeCalls != 0 {
		t.Fatalf("miss must not trigger analysis")
	}
}

func multipartImage(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("image", "char.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("not-really-a-png"))
	mw.Close()
	return body, mw.FormDataContentType()
}

func postImage(t *testing.T, router *gin.Engine, cookie *http.Cookie) *httptest.ResponseRecorder {
	body, contentType := multipartImage(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search/image", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)
	return w
}

func TestImageSearchSuccess(t *testing.T) {
	single := &models.Character{MalID: 40, Name: "Monkey D. Luffy"}
	catalog := &fakeCatalog{single: single}
	adv := &fakeAdvisor{detected: "Monkey D. Luffy", analysis: "report"}
	router, state, cookie := newTestEnv(t, NewHandler(catalog, adv))

	w := postImage(t, router, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	if catalog.singleCalls != 1 || adv.analyzeCalls != 1 {
		t.Fatalf("unexpected call counts: lookup=%d analyze=%d", catalog.singleCalls, adv.analyzeCalls)
	}

	entries := state.History()
	if len(entries) != 1 || entries[0].Type != models.HistoryCharacterImage {
		t.Fatalf("unexpected history: %+v", entries)
	}
	if entries[0].Query != "Image Upload" || entries[0].Result != "Monkey D. Luffy" {
		t.Fatalf("unexpected history entry: %+v", entries[0])
	}
}

func TestImageSearchUnknownSkipsCatalog(t *testing.T) {
	catalog := &fakeCatalog{}
	adv := &fakeAdvisor{detected: advisor.Unknown}
	router, state, cookie := newTestEnv(t, NewHandler(catalog, adv))

	w := postImage(t, router, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if catalog.singleCalls != 0 {
		t.Fatalf("unidentified image must trigger zero catalog lookups, got %d", catalog.singleCalls)
	}
	if got := len(state.History()); got != 0 {
		t.Fatalf("expected no history, got %d", got)
	}
}

func TestImageSearchNoDetailedData(t *testing.T) {
	catalog := &fakeCatalog{single: nil}
	adv := &fakeAdvisor{detected: "Some Obscure Character"}
	router, _, cookie := newTestEnv(t, NewHandler(catalog, adv))

	w := postImage(t, router, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Some Obscure Character") {
		t.Fatalf("detected name missing from response: %s", w.Body.String())
	}
	if catalog.singleCalls != 1 {
		t.Fatalf("expected one lookup, got %d", catalog.singleCalls)
	}
}

func TestImageSearchMissingFile(t *testing.T) {
	router, _, cookie := newTestEnv(t, NewHandler(&fakeCatalog{}, &fakeAdvisor{}))

	w := postJSON(router, cookie, "/search/image", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestImageSearchAdvisorNotConfigured(t *testing.T) {
	catalog := &fakeCatalog{}
	adv := &fakeAdvisor{detected: advisor.NotConfigured}
	router, _, cookie := newTestEnv(t, NewHandler(catalog, adv))

	w := postImage(t, router, cookie)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if catalog.singleCalls != 0 {
		t.Fatalf("not-configured advisor must not reach the catalog")
	}
}
