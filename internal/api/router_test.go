package api

import (
	"bytes"
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/bengali-knowledge-assistant/internal/assistant"
	"github.com/bengali-knowledge-assistant/internal/blob"
	"github.com/bengali-knowledge-assistant/internal/jsonx"
	"github.com/bengali-knowledge-assistant/internal/knowledge"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := assistant.DefaultConfig()
	cfg.RandSource = rand.NewSource(1)

	svc, err := assistant.New(context.Background(), cfg, blob.NewMemory(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	return NewRouter(svc, zaptest.NewLogger(t))
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, jsonx.EncodeTo(&buf, body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLearnAndAsk(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/learn", learnRequest{
		Title:   "জন্ম তথ্য",
		Content: "তিনি ১৯৫০ সালে জন্মগ্রহণ করেন।",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/ask", askRequest{
		Question: "তিনি কখন জন্মগ্রহণ করেন?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp askResponse
	require.NoError(t, jsonx.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Answer, "১৯৫০ সালে")
}

func TestLearnRejectsBlankInput(t *testing.T) {
	h := newTestRouter(t)

	tests := []learnRequest{
		{Title: "", Content: "কিছু তথ্য"},
		{Title: "শিরোনাম", Content: ""},
		{Title: "   ", Content: "   "},
	}
	for _, req := range tests {
		rec := doJSON(t, h, http.MethodPost, "/api/learn", req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/ask", askRequest{Question: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidBody(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/learn", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndDelete(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/learn", learnRequest{
		Title:   "ঢাকা",
		Content: "ঢাকা বাংলাদেশের রাজধানী শহর।",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/knowledge", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []knowledge.Item
	require.NoError(t, jsonx.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)

	rec = doJSON(t, h, http.MethodDelete, "/api/knowledge/"+items[0].ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/knowledge", nil)
	require.NoError(t, jsonx.Unmarshal(rec.Body.Bytes(), &items))
	assert.Empty(t, items)
}

func TestClearKnowledge(t *testing.T) {
	h := newTestRouter(t)

	doJSON(t, h, http.MethodPost, "/api/learn", learnRequest{Title: "এক", Content: "প্রথম বিষয়বস্তু এখানে।"})
	doJSON(t, h, http.MethodPost, "/api/learn", learnRequest{Title: "দুই", Content: "দ্বিতীয় বিষয়বস্তু এখানে।"})

	rec := doJSON(t, h, http.MethodDelete, "/api/knowledge", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		Total int `json:"total"`
	}
	require.NoError(t, jsonx.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.Total)
}

func TestStatsEndpoint(t *testing.T) {
	h := newTestRouter(t)

	doJSON(t, h, http.MethodPost, "/api/learn", learnRequest{Title: "ঢাকা", Content: "ঢাকা রাজধানী শহর।"})

	rec := doJSON(t, h, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		Total  int      `json:"total"`
		Topics []string `json:"topics"`
	}
	require.NoError(t, jsonx.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, []string{"ঢাকা"}, stats.Topics)
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
