// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"venueflow/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements the NLU oracle on top of Gemini, prompting for
// a strict JSON rendering of models.ExtractedFields.
type GeminiExtractor struct {
	model    *genai.GenerativeModel
	ctxStore *RedisContextStore
}

func NewGeminiExtractor(apiKey string, ctxStore *RedisContextStore) *GeminiExtractor {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiExtractor{model: model, ctxStore: ctxStore}
}

// Extract prompts Gemini with the message, the confirmed-value snapshot and
// recent conversation context, and decodes the JSON reply.
func (g *GeminiExtractor) Extract(ctx context.Context, text string, snapshot models.StateSnapshot) (models.ExtractedFields, error) {
	var history []string
	if g.ctxStore != nil {
		history, _ = g.ctxStore.Recent(ctx, snapshot, 5)
	}

	prompt := buildExtractionPrompt(text, snapshot, history)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.ExtractedFields{}, fmt.Errorf("gemini generate error: %w", err)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	raw := strings.TrimSpace(sb.String())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "```"), "```")

	var fields models.ExtractedFields
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return models.ExtractedFields{}, fmt.Errorf("failed to parse gemini extraction: %w", err)
	}
	return fields, nil
}

func buildExtractionPrompt(text string, snapshot models.StateSnapshot, history []string) string {
	snap, _ := json.Marshal(snapshot)

	var sb strings.Builder
	sb.WriteString("You extract structured fields from a venue-booking client message.\n")
	sb.WriteString("Current confirmed state: ")
	sb.Write(snap)
	sb.WriteString("\n")
	if len(history) > 0 {
		sb.WriteString("Recent messages:\n")
		for _, h := range history {
			sb.WriteString("- " + h + "\n")
		}
	}
	sb.WriteString("Message: " + text + "\n")
	sb.WriteString(`Reply with ONLY a JSON object with these optional keys (omit absent values):
date ("YYYY-MM-DD"), room_id, participant_count (int), seating_layout,
duration_window, special_requirements (array), products (array),
price_amount (number), deposit_amount (number), site_visit_date ("YYYY-MM-DD"),
contact_email, contact_phone.`)
	return sb.String()
}
