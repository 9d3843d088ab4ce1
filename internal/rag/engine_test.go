package rag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeEmbedder maps known texts to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", t)
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeGenerator struct {
	lastPrompt string
	reply      string
	err        error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestLoadChunks(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "menu.json")
		if err := os.WriteFile(path, []byte(`["Margherita 12 EUR", "Tiramisu 6 EUR"]`), 0o644); err != nil {
			t.Fatalf("write menu: %v", err)
		}
		chunks, err := LoadChunks(path)
		if err != nil {
			t.Fatalf("LoadChunks returned error: %v", err)
		}
		if len(chunks) != 2 {
			t.Fatalf("expected 2 chunks, got %d", len(chunks))
		}
	})

	t.Run("rejects non-array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "menu.json")
		if err := os.WriteFile(path, []byte(`{"menu": true}`), 0o644); err != nil {
			t.Fatalf("write menu: %v", err)
		}
		if _, err := LoadChunks(path); err == nil {
			t.Fatalf("expected error for non-array menu")
		}
	})

	t.Run("rejects empty array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "menu.json")
		if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
			t.Fatalf("write menu: %v", err)
		}
		if _, err := LoadChunks(path); err == nil {
			t.Fatalf("expected error for empty menu")
		}
	})
}

func TestIndex_Search(t *testing.T) {
	ix, err := newIndex(
		[]string{"pizza", "pasta", "dessert"},
		[][]float32{{1, 0}, {0, 1}, {0.7, 0.7}},
	)
	if err != nil {
		t.Fatalf("newIndex returned error: %v", err)
	}

	got := ix.search([]float32{1, 0}, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0] != "pizza" {
		t.Fatalf("expected best match pizza, got %q", got[0])
	}
	if got[1] != "dessert" {
		t.Fatalf("expected second match dessert, got %q", got[1])
	}

	t.Run("k larger than corpus", func(t *testing.T) {
		if got := ix.search([]float32{1, 0}, 10); len(got) != 3 {
			t.Fatalf("expected all 3 results, got %d", len(got))
		}
	})
}

func TestCosine(t *testing.T) {
	if got := cosine([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Fatalf("identical vectors should score ~1, got %f", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Fatalf("orthogonal vectors should score 0, got %f", got)
	}
	if got := cosine([]float32{1, 0}, []float32{1}); got != 0 {
		t.Fatalf("mismatched lengths should score 0, got %f", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Fatalf("zero vector should score 0, got %f", got)
	}
}

func TestEngine_Query(t *testing.T) {
	chunks := []string{"Margherita pizza, 12 EUR", "Spaghetti carbonara, 14 EUR"}
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		chunks[0]:              {1, 0},
		chunks[1]:              {0, 1},
		"how much is pizza?":   {0.9, 0.1},
		"anything with cream?": {0.1, 0.9},
	}}

	t.Run("answers from retrieved context", func(t *testing.T) {
		gen := &fakeGenerator{reply: "A Margherita is 12 EUR."}
		e, err := NewWithClients(context.Background(), chunks, embedder, gen, "Bella Roma", nil)
		if err != nil {
			t.Fatalf("NewWithClients returned error: %v", err)
		}

		got := e.Query(context.Background(), "how much is pizza?")
		if got != "A Margherita is 12 EUR." {
			t.Fatalf("unexpected answer: %q", got)
		}
		if !strings.Contains(gen.lastPrompt, chunks[0]) {
			t.Fatalf("prompt missing retrieved chunk: %q", gen.lastPrompt)
		}
		if !strings.Contains(gen.lastPrompt, "how much is pizza?") {
			t.Fatalf("prompt missing question: %q", gen.lastPrompt)
		}
		if !strings.Contains(gen.lastPrompt, "Bella Roma") {
			t.Fatalf("prompt missing restaurant name: %q", gen.lastPrompt)
		}
	})

	t.Run("generation failure degrades to apology", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("model unavailable")}
		e, err := NewWithClients(context.Background(), chunks, embedder, gen, "", nil)
		if err != nil {
			t.Fatalf("NewWithClients returned error: %v", err)
		}
		if got := e.Query(context.Background(), "how much is pizza?"); got != apology {
			t.Fatalf("expected apology, got %q", got)
		}
	})

	t.Run("embedding failure degrades to apology", func(t *testing.T) {
		gen := &fakeGenerator{reply: "unused"}
		e, err := NewWithClients(context.Background(), chunks, embedder, gen, "", nil)
		if err != nil {
			t.Fatalf("NewWithClients returned error: %v", err)
		}
		if got := e.Query(context.Background(), "unknown question"); got != apology {
			t.Fatalf("expected apology, got %q", got)
		}
	})

	t.Run("index build fails when embedding fails", func(t *testing.T) {
		bad := &fakeEmbedder{err: errors.New("quota exhausted")}
		if _, err := NewWithClients(context.Background(), chunks, bad, &fakeGenerator{}, "", nil); err == nil {
			t.Fatalf("expected error when menu embedding fails")
		}
	})
}
