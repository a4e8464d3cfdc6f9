package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/curalink/curalink/backend/api/internal/config"
)

func newPDFRouter(t *testing.T, apiKey, baseURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.HuggingFace.APIKey = apiKey
	h := NewPDFHandler(cfg)
	if baseURL != "" {
		h.baseURL = baseURL
	}
	r := gin.New()
	h.Register(r.Group("/api/v1"))
	return r
}

func pdfRequestBody() map[string]string {
	return map[string]string{
		"model":  "test-model",
		"prompt": "Extract the metadata as JSON.",
		"text":   "Sample publication text.",
	}
}

func TestExtractMetadata_ParsesFencedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		generated := "Here you go:\n```json\n{\"title\": \"A Study\", \"year\": 2023}\n```"
		out, _ := json.Marshal([]map[string]string{{"generated_text": generated}})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(out)
	}))
	defer srv.Close()

	r := newPDFRouter(t, "key-123", srv.URL)
	env := &testEnv{router: r}

	w := env.do(t, "POST", "/api/v1/pdf/extract-metadata", "", pdfRequestBody())
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	meta := body["metadata"].(map[string]interface{})
	require.Equal(t, "A Study", meta["title"])
	require.Equal(t, float64(2023), meta["year"])
}

func TestExtractMetadata_ModelLoadingPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "Model is loading", "estimated_time": 42.5}`))
	}))
	defer srv.Close()

	r := newPDFRouter(t, "key-123", srv.URL)
	env := &testEnv{router: r}

	w := env.do(t, "POST", "/api/v1/pdf/extract-metadata", "", pdfRequestBody())
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "Model is loading", body["error"])
	require.Equal(t, 42.5, body["estimated_time"])
}

func TestExtractMetadata_MissingAPIKey(t *testing.T) {
	r := newPDFRouter(t, "", "")
	env := &testEnv{router: r}

	w := env.do(t, "POST", "/api/v1/pdf/extract-metadata", "", pdfRequestBody())
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Hugging Face API key not configured.", decodeBody(t, w)["detail"])
}

func TestExtractMetadata_NoJSONInOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text": "I could not find any metadata."}]`))
	}))
	defer srv.Close()

	r := newPDFRouter(t, "key-123", srv.URL)
	env := &testEnv{router: r}

	w := env.do(t, "POST", "/api/v1/pdf/extract-metadata", "", pdfRequestBody())
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, decodeBody(t, w)["detail"], "No JSON found in model output")
}

func TestExtractMetadata_UpstreamErrorForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broken"))
	}))
	defer srv.Close()

	r := newPDFRouter(t, "key-123", srv.URL)
	env := &testEnv{router: r}

	w := env.do(t, "POST", "/api/v1/pdf/extract-metadata", "", pdfRequestBody())
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Contains(t, decodeBody(t, w)["detail"], "Hugging Face API error")
}
