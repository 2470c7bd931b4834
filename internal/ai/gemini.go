// Package ai wraps the Gemini API as the curation oracle: structured article
// classification and corpus-grounded chat.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wecurate/wecurate/curate"
	"github.com/wecurate/wecurate/curate/service"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-3-flash-preview"

// Gemini is the Gemini-backed implementation of service.Oracle.
type Gemini struct {
	client *genai.Client
	model  string
}

// New creates a Gemini oracle.
func New(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Classify sends a structured prompt and expects a schema-constrained JSON
// response. The category is restricted to the given registry labels.
func (g *Gemini) Classify(ctx context.Context, title, snippet string, categories []string) (*curate.Classification, error) {
	prompt := fmt.Sprintf(
		"Classify and summarize the following curated article.\nTitle: %s\nSnippet: %s\n\nReturn JSON.",
		title, snippet,
	)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category": {
					Type:        genai.TypeString,
					Description: "Category label, must be one of: " + strings.Join(categories, ", "),
				},
				"tags": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "3-5 core keywords for the article",
				},
				"summary": {
					Type:        genai.TypeString,
					Description: fmt.Sprintf("Concise professional summary, at most %d characters", service.MaxSummaryLength),
				},
			},
			Required: []string{"category", "tags", "summary"},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %w", err)
	}

	classification := &curate.Classification{}
	if err := json.Unmarshal([]byte(resp.Text()), classification); err != nil {
		return nil, fmt.Errorf("unparseable classification response: %w", err)
	}

	return classification, nil
}

// NewChat opens a conversational session seeded with a system instruction
// carrying the serialized article corpus.
func (g *Gemini) NewChat(ctx context.Context, contextDoc string) (service.ChatSession, error) {
	instruction := fmt.Sprintf(
		"You are a professional content analysis assistant. Answer questions using the curated article "+
			"library the user has collected. The current library context is:\n%s\n"+
			"Reply in a professional, objective, and concise tone. If a question falls outside the library, "+
			"say so and answer from general knowledge where you can.",
		contextDoc,
	)

	chat, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat session: %w", err)
	}

	return &geminiChat{chat: chat}, nil
}

type geminiChat struct {
	chat *genai.Chat
}

func (c *geminiChat) Send(ctx context.Context, message string) (string, error) {
	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
