// Package gemini is a thin client for the Gemini generateContent REST API,
// used for advisory marketing copy and price suggestions. Every call
// degrades to a deterministic fallback: the generative result is never
// required for a form to be submittable.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Defaults for the REST endpoint.
const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Client calls the generateContent endpoint. A client with an empty API key
// is valid and always answers with fallbacks.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// New creates a client. model and baseURL fall back to the package defaults
// when empty; logger falls back to slog.Default.
func New(apiKey, model, baseURL string, logger *slog.Logger) *Client {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Available reports whether a credential is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	u := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

// Describe produces a short marketing description for a vehicle listing.
// Missing credential or any request failure resolves to a fixed fallback.
func (c *Client) Describe(ctx context.Context, make, model string, year int, features string) string {
	if !c.Available() {
		c.logger.Warn("gemini: no API key, returning fallback description")
		return fmt.Sprintf("Uma excelente oportunidade para adquirir este %s %s %d. Veículo em ótimo estado.", make, model, year)
	}

	prompt := fmt.Sprintf(`Atue como um vendedor de carros de luxo experiente e persuasivo.
Escreva uma descrição curta, atraente e vendedora (máximo de 3 parágrafos curtos) para um anúncio de carro.

Veículo: %s %s
Ano: %d
Características adicionais: %s

O tom deve ser profissional, destacando emoção, segurança e status. Use português do Brasil.
Não use formatação markdown como negrito ou itálico, apenas texto corrido.`, make, model, year, features)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("gemini: describe failed", slog.String("error", err.Error()))
		return fmt.Sprintf("Confira este incrível %s %s %d. Entre em contato para mais detalhes!", make, model, year)
	}
	return text
}

// SuggestPrice asks for a realistic market price. The second return value
// is false when no suggestion is available (missing credential, request
// failure, or an unparsable answer).
func (c *Client) SuggestPrice(ctx context.Context, make, model string, year int) (int64, bool) {
	if !c.Available() {
		return 0, false
	}

	prompt := fmt.Sprintf(`Baseado no mercado brasileiro de usados, sugira um preço realista (apenas o número inteiro, sem formatação de moeda) para um:
%s %s ano %d.
Retorne APENAS o número. Exemplo: 150000.`, make, model, year)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("gemini: price suggestion failed", slog.String("error", err.Error()))
		return 0, false
	}

	var digits strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	price, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}
