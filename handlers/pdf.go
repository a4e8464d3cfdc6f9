package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/config"
	"github.com/curalink/curalink/backend/api/pkg/logger"
)

const hfRouterBase = "https://router.huggingface.co/hf-inference/models"

type PDFExtractRequest struct {
	Model  string `json:"model" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
	Text   string `json:"text" binding:"required"`
}

// PDFHandler extracts publication metadata from PDF text through the
// HuggingFace router inference API.
type PDFHandler struct {
	cfg     *config.Config
	client  *http.Client
	baseURL string
}

func NewPDFHandler(cfg *config.Config) *PDFHandler {
	return &PDFHandler{
		cfg:     cfg,
		client:  &http.Client{Timeout: 80 * time.Second},
		baseURL: hfRouterBase,
	}
}

// Register routes under /pdf
func (h *PDFHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/pdf")
	g.POST("/extract-metadata", h.ExtractMetadata)
}

func (h *PDFHandler) ExtractMetadata(c *gin.Context) {
	var req PDFExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.cfg.HuggingFace.APIKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Hugging Face API key not configured."})
		return
	}

	payload := map[string]interface{}{
		"inputs": req.Prompt + "\n\nPDF TEXT:\n" + req.Text,
		"parameters": map[string]interface{}{
			"max_new_tokens":   1500,
			"temperature":      0.1,
			"return_full_text": false,
			"top_p":            0.95,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to encode request"})
		return
	}

	url := h.baseURL + "/" + req.Model
	hreq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to build request"})
		return
	}
	hreq.Header.Set("Authorization", "Bearer "+h.cfg.HuggingFace.APIKey)
	hreq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(hreq)
	if err != nil {
		logger.Errorf("hf request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Unexpected error: %v", err)})
		return
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf("Unexpected error: %v", err)})
		return
	}

	// the router answers 503 while the model is loading
	if resp.StatusCode == http.StatusServiceUnavailable {
		var hfErr struct {
			Error         string   `json:"error"`
			EstimatedTime *float64 `json:"estimated_time"`
		}
		if err := json.Unmarshal(raw, &hfErr); err != nil || hfErr.Error == "" {
			hfErr.Error = "Model is loading"
		}
		c.JSON(http.StatusOK, gin.H{"error": hfErr.Error, "estimated_time": hfErr.EstimatedTime})
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.JSON(resp.StatusCode, gin.H{"detail": fmt.Sprintf("Hugging Face API error: %s", string(raw))})
		return
	}

	generated, err := generatedText(raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	metadata, err := firstJSONObject(generated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metadata": metadata})
}

// generatedText pulls the model output from the two response shapes the
// router uses (a bare object or a one-element array).
func generatedText(raw []byte) (string, error) {
	pick := func(m map[string]interface{}) string {
		if s, ok := m["generated_text"].(string); ok && s != "" {
			return s
		}
		if s, ok := m["text"].(string); ok && s != "" {
			return s
		}
		return ""
	}

	var asList []map[string]interface{}
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 {
		if s := pick(asList[0]); s != "" {
			return s, nil
		}
	}
	var asObj map[string]interface{}
	if err := json.Unmarshal(raw, &asObj); err == nil {
		if s := pick(asObj); s != "" {
			return s, nil
		}
	}
	return "", fmt.Errorf("No generated_text in HF response: %s", string(raw))
}

// firstJSONObject strips markdown fences and decodes the first {...} block.
func firstJSONObject(generated string) (map[string]interface{}, error) {
	cleaned := strings.ReplaceAll(generated, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		snippet := cleaned
		if len(snippet) > 400 {
			snippet = snippet[:400]
		}
		return nil, fmt.Errorf("No JSON found in model output. Raw: %s", snippet)
	}
	var metadata map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &metadata); err != nil {
		return nil, fmt.Errorf("Unexpected error: %v", err)
	}
	return metadata, nil
}
