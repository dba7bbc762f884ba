package aigateway

import (
	"encoding/json"
	"fmt"

	"github.com/mindflowhq/mindflow-backend/internal/domain"
)

// InsightRequest is the context bundle for one insight generation call.
// Free-text fields arrive pre-joined (challenges and wisdom sources as
// comma-separated summaries) because the prompt consumes them as prose.
type InsightRequest struct {
	Phase            domain.Phase    `json:"phase"`
	Challenges       string          `json:"challenges"`
	WisdomSources    string          `json:"wisdomSources"`
	Schedule         string          `json:"schedule"`
	WorkMode         string          `json:"workMode"`
	EnergyLevel      string          `json:"energyLevel,omitempty"`
	FocusAreas       string          `json:"focusAreas"`
	Situation        string          `json:"situation"`
	MorningInsight   json.RawMessage `json:"morningInsight,omitempty"`
	MiddayReflection string          `json:"middayReflection,omitempty"`
}

// FollowUpRequest is the context bundle for one follow-up chat turn.
type FollowUpRequest struct {
	Phase         domain.Phase             `json:"phase"`
	Question      string                   `json:"question"`
	Insight       json.RawMessage          `json:"insight"`
	History       []domain.FollowUpMessage `json:"conversationHistory"`
	Situation     string                   `json:"situation"`
	Challenges    []string                 `json:"challenges"`
	WisdomSources []string                 `json:"wisdomSources"`
}

const insightSystemPrompt = `You are a thoughtful personal coach. You draw on the user's chosen wisdom sources and respond with warmth, depth, and practicality. You always answer with a single JSON object and nothing else.`

const insightSchema = `{
  "title": "<short evocative title>",
  "quote": {"text": "<relevant quote>", "author": "<author>"},
  "mainInsight": "<2-3 sentences connecting the user's situation to their challenges>",
  "deeperInsight": "<1-2 sentences going one level deeper>",
  "powerQuestion": "<one reflective question>",
  "metaphor": "<a short metaphor for today>",
  "actionItems": [{"text": "<small concrete step>"}],
  "todaysPitfall": "<the one trap to avoid today>",
  "theAnchor": "<a phrase to return to during the day>",
  "carryThis": "<one sentence to carry into the rest of the day>",
  "recommendations": [{"type": "<read|listen|practice>", "title": "<title>", "description": "<why>", "estimatedTime": "<e.g. 10 min>"}]
}`

// buildInsightPrompt renders the user prompt for a generation call. The
// context travels as indented JSON so the model sees field names verbatim.
func buildInsightPrompt(req InsightRequest) (string, error) {
	contextJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal insight context: %w", err)
	}

	switch req.Phase {
	case domain.PhaseMidday:
		return fmt.Sprintf(`Generate a midday check-in insight for the user.

The morning insight and the user's midday reflection are included in the context. Build on the morning guidance: acknowledge what has happened so far and adjust the course for the afternoon.

Context:
%s

Output ONLY a valid JSON object matching this schema (omit fields you have nothing for):
%s

Rules:
- 2-4 action items, each small enough to finish before the evening
- Do not repeat the morning action items verbatim
- Output ONLY the JSON, no markdown, no explanations`, contextJSON, insightSchema), nil

	default:
		return fmt.Sprintf(`Generate a morning insight for the user's day ahead.

Context:
%s

Output ONLY a valid JSON object matching this schema (omit fields you have nothing for):
%s

Rules:
- Ground the insight in the user's active challenges and wisdom sources
- 3-5 action items, each a small concrete step for today
- Match the tone to the work mode and energy level when given
- Output ONLY the JSON, no markdown, no explanations`, contextJSON, insightSchema), nil
	}
}

// buildFollowUpSystemPrompt renders the system prompt for a follow-up chat
// turn. The stored insight and user context anchor the conversation.
func buildFollowUpSystemPrompt(req FollowUpRequest) (string, error) {
	anchor := struct {
		Phase         domain.Phase    `json:"phase"`
		Insight       json.RawMessage `json:"insight"`
		Situation     string          `json:"situation"`
		Challenges    []string        `json:"challenges"`
		WisdomSources []string        `json:"wisdomSources"`
	}{req.Phase, req.Insight, req.Situation, req.Challenges, req.WisdomSources}

	anchorJSON, err := json.MarshalIndent(anchor, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal follow-up context: %w", err)
	}

	return fmt.Sprintf(`You are a thoughtful personal coach continuing a conversation about an insight you generated earlier today.

Earlier insight and user context:
%s

Answer the user's questions about this insight conversationally. Keep replies short (2-4 sentences), concrete, and grounded in the user's wisdom sources. Answer in plain text, never JSON.`, anchorJSON), nil
}
