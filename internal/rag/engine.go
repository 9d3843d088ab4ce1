// Package rag answers menu questions from a small embedded index of menu
// chunks plus a Gemini generation call, strictly grounded in the
// retrieved context.
package rag

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const retrieveK = 4

const apology = "I'm sorry, something went wrong while looking that up. Please try again."

const promptTemplate = `You are %s's friendly restaurant assistant.
You ONLY answer questions using the provided context about the restaurant's menu.
If the answer cannot be found in the context, respond with:
"I'm sorry, that item is not on our menu."

Do NOT make up information. Do NOT reference items not in the context.
Be warm, helpful, and concise in your responses.
Use a friendly Italian-restaurant tone.

Context:
%s

Question: %s

Answer:`

// Embedder turns texts into embedding vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine retrieves menu chunks for a question and lets the model answer
// from that context only.
type Engine struct {
	embedder   Embedder
	generator  Generator
	index      *index
	restaurant string
	log        *zap.Logger
}

// Options configures a menu answerer.
type Options struct {
	APIKey     string
	ChatModel  string
	EmbedModel string
	Restaurant string
	Log        *zap.Logger
}

// New builds the engine against the Gemini API: it embeds every menu
// chunk once up front and keeps the vectors in memory.
func New(ctx context.Context, chunks []string, opts Options) (*Engine, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("rag: create client: %w", err)
	}
	gc := &geminiClient{client: client, chatModel: opts.ChatModel, embedModel: opts.EmbedModel}
	return NewWithClients(ctx, chunks, gc, gc, opts.Restaurant, opts.Log)
}

// NewWithClients is New with the model calls swapped out; tests use it
// with in-memory fakes.
func NewWithClients(ctx context.Context, chunks []string, embedder Embedder, generator Generator, restaurant string, log *zap.Logger) (*Engine, error) {
	if restaurant == "" {
		restaurant = "Bella Roma"
	}
	if log == nil {
		log = zap.NewNop()
	}
	vectors, err := embedder.Embed(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("rag: embed menu: %w", err)
	}
	ix, err := newIndex(chunks, vectors)
	if err != nil {
		return nil, err
	}
	log.Info("menu index ready", zap.Int("chunks", len(chunks)))
	return &Engine{embedder: embedder, generator: generator, index: ix, restaurant: restaurant, log: log}, nil
}

// Query answers one menu question. Failures never escape: the caller
// always gets friendly text.
func (e *Engine) Query(ctx context.Context, question string) string {
	qv, err := e.embedder.Embed(ctx, []string{question})
	if err != nil || len(qv) == 0 {
		e.log.Warn("question embedding failed", zap.Error(err))
		return apology
	}

	docs := e.index.search(qv[0], retrieveK)
	prompt := fmt.Sprintf(promptTemplate, e.restaurant, strings.Join(docs, "\n\n"), question)

	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		e.log.Warn("menu answer generation failed", zap.Error(err))
		return apology
	}
	return strings.TrimSpace(answer)
}

// Unavailable stands in for the engine when no API key is configured.
type Unavailable struct{}

func (Unavailable) Query(ctx context.Context, question string) string {
	return "🍕 Menu questions are offline right now, but I can still help with reservations!"
}

type geminiClient struct {
	client     *genai.Client
	chatModel  string
	embedModel string
}

func (g *geminiClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}
	resp, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: want %d, got %d", len(texts), len(resp.Embeddings))
	}
	out := make([][]float32, 0, len(resp.Embeddings))
	for _, emb := range resp.Embeddings {
		out = append(out, emb.Values)
	}
	return out, nil
}

func (g *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.chatModel, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
