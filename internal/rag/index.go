package rag

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// LoadChunks reads the menu file: a JSON array of pre-chunked text
// passages.
func LoadChunks(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}
	var chunks []string
	if err := json.Unmarshal(b, &chunks); err != nil {
		return nil, fmt.Errorf("menu: expected a JSON array of strings: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("menu: no chunks in %s", path)
	}
	return chunks, nil
}

// index is an in-memory vector index over menu chunks. Small enough that
// brute-force cosine scoring beats carrying a vector store.
type index struct {
	chunks  []string
	vectors [][]float32
}

func newIndex(chunks []string, vectors [][]float32) (*index, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("menu index: %d chunks but %d vectors", len(chunks), len(vectors))
	}
	return &index{chunks: chunks, vectors: vectors}, nil
}

// search returns the k chunks most similar to the query vector, best
// first. Chunks with no overlap at all still rank; the prompt is what
// keeps the model from answering off-context.
func (ix *index) search(query []float32, k int) []string {
	type scored struct {
		chunk string
		score float64
	}
	all := make([]scored, 0, len(ix.chunks))
	for i, v := range ix.vectors {
		all = append(all, scored{chunk: ix.chunks[i], score: cosine(query, v)})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	if k > len(all) {
		k = len(all)
	}
	out := make([]string, 0, k)
	for _, s := range all[:k] {
		out = append(out, s.chunk)
	}
	return out
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
