package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rlimports/autovitrine/internal/gemini"
	"github.com/rlimports/autovitrine/internal/testutil"
)

func reply(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	body := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]string{{"text": text}},
			},
		}},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode reply: %v", err)
	}
}

func TestDescribeWithoutKey(t *testing.T) {
	c := gemini.New("", "", "", testutil.Logger())

	if c.Available() {
		t.Error("client without key reports available")
	}
	got := c.Describe(context.Background(), "Porsche", "911", 2023, "")
	want := "Uma excelente oportunidade para adquirir este Porsche 911 2023. Veículo em ótimo estado."
	if got != want {
		t.Errorf("fallback = %q, want %q", got, want)
	}
}

func TestDescribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-2.5-flash:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		reply(t, w, "  Um carro excepcional.\n")
	}))
	defer srv.Close()

	c := gemini.New("test-key", "", srv.URL, testutil.Logger())
	got := c.Describe(context.Background(), "Porsche", "911", 2023, "teto solar")
	if got != "Um carro excepcional." {
		t.Errorf("description = %q", got)
	}
}

func TestDescribeFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := gemini.New("test-key", "", srv.URL, testutil.Logger())
	got := c.Describe(context.Background(), "BMW", "X6", 2021, "")
	want := "Confira este incrível BMW X6 2021. Entre em contato para mais detalhes!"
	if got != want {
		t.Errorf("fallback = %q, want %q", got, want)
	}
}

func TestDescribeFallsBackOnEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := gemini.New("test-key", "", srv.URL, testutil.Logger())
	got := c.Describe(context.Background(), "BMW", "X6", 2021, "")
	want := "Confira este incrível BMW X6 2021. Entre em contato para mais detalhes!"
	if got != want {
		t.Errorf("fallback = %q, want %q", got, want)
	}
}

func TestSuggestPrice(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   int64
		ok     bool
	}{
		{"bare number", "450000", 450000, true},
		{"formatted answer", "R$ 450.000,00", 45000000, true},
		{"prose around number", "O preço sugerido é 380000 reais.", 380000, true},
		{"no digits", "não sei dizer", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reply(t, w, tc.answer)
			}))
			defer srv.Close()

			c := gemini.New("test-key", "", srv.URL, testutil.Logger())
			got, ok := c.SuggestPrice(context.Background(), "Porsche", "911", 2023)
			if ok != tc.ok || got != tc.want {
				t.Errorf("SuggestPrice = %d/%v, want %d/%v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestSuggestPriceWithoutKey(t *testing.T) {
	c := gemini.New("", "", "", testutil.Logger())
	if price, ok := c.SuggestPrice(context.Background(), "Porsche", "911", 2023); ok || price != 0 {
		t.Errorf("SuggestPrice = %d/%v, want 0/false", price, ok)
	}
}
