package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"learnhub/config"
	"learnhub/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AURA (Adaptive Unified Reasoning Agent) turns raw study material into a
// structured lesson and classifies it for ranking fairness: exactly one
// domain from the closed set, and a difficulty multiplier in [1.0, 1.5].

const auraModel = "gemini-1.5-flash"

const maxSourceChars = 20000

var auraClient *genai.Client

// InitAuraService initializes the Gemini client used for lesson generation
func InitAuraService(cfg *config.Config) error {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Gemini.ApiKey))
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	auraClient = client
	return nil
}

// GenerationParams describes one lesson generation request.
type GenerationParams struct {
	Topic        string
	RawContent   string
	UserInterest string
	Difficulty   string // beginner, intermediate, advanced
}

// GeneratedLesson is the classifier/generator output consumed by the lesson
// controller.
type GeneratedLesson struct {
	Title                string                 `json:"title"`
	Domain               string                 `json:"domain"`
	DifficultyMultiplier float64                `json:"difficultyMultiplier"`
	EstimatedTime        string                 `json:"estimatedTime"`
	XPReward             int                    `json:"xpReward"`
	Sections             []models.LessonSection `json:"sections"`
	Quiz                 []models.QuizQuestion  `json:"quiz"`
}

// GenerateLesson invokes the model and normalizes its classification output.
func GenerateLesson(ctx context.Context, params GenerationParams) (*GeneratedLesson, error) {
	if auraClient == nil {
		return nil, errors.New("AURA client not initialized")
	}

	difficulty := params.Difficulty
	if difficulty == "" {
		difficulty = "beginner"
	}

	systemInstruction := fmt.Sprintf(`You are AURA (Adaptive Unified Reasoning Agent).
Objective: Transform raw educational content into a structured, gamified lesson plan AND strictly classify its academic domain for ranking fairness.

TARGET AUDIENCE PROFILE:
- Interest: %s (Use metaphors/analogies from this world)
- Difficulty Level: %s

MANDATORY RANKING LOGIC:
1. Classify content into exactly one domain:
   - 'STEM' (Science, Tech, Engineering, Math)
   - 'Humanities' (History, Philosophy, Social Studies)
   - 'Arts' (Design, Music, Fine Arts)
   - 'Business' (Finance, Economics, Management)
   - 'Language' (Linguistics, Literature)
   - 'General' (Everything else)

2. Assign a 'difficultyMultiplier' (1.0 to 1.5) based on cognitive load:
   - STEM / Complex Logic: 1.3 - 1.5
   - Business / Advanced Humanities: 1.1 - 1.3
   - General / Intro / Arts: 1.0 - 1.2

OUTPUT: JSON only, matching this shape:
{"title": string, "domain": string, "difficultyMultiplier": number, "estimatedTime": string, "xpReward": integer,
 "sections": [{"title": string, "content": string, "visualPrompt": string, "keyTakeaways": [string]}],
 "quiz": [{"question": string, "options": [string], "correctAnswerIndex": integer, "explanation": string, "difficulty": integer}]}`,
		params.UserInterest, difficulty)

	source := params.RawContent
	if len(source) > maxSourceChars {
		source = source[:maxSourceChars]
	}

	prompt := fmt.Sprintf(
		"TOPIC: %s\nSOURCE MATERIAL: %q\n\nGenerate the lesson plan. Ensure 'domain' and 'difficultyMultiplier' are accurate.",
		params.Topic, source)

	model := auraClient.GenerativeModel(auraModel)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	model.GenerationConfig.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("AURA generation failed, using fallback lesson: %v", err)
		return fallbackLesson(params), nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Println("AURA returned empty response, using fallback lesson")
		return fallbackLesson(params), nil
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}

	var lesson GeneratedLesson
	if err := json.Unmarshal([]byte(cleanJSONOutput(raw)), &lesson); err != nil {
		log.Printf("Failed to parse AURA response, using fallback lesson: %v", err)
		return fallbackLesson(params), nil
	}

	normalizeLesson(&lesson, params.Topic)
	return &lesson, nil
}

// fallbackLesson wraps the raw material into a single-section General lesson
// when the model is unavailable. Multiplier 1.0 keeps the award unweighted,
// so a model outage can never inflate anyone's ranking.
func fallbackLesson(params GenerationParams) *GeneratedLesson {
	content := params.RawContent
	if len(content) > maxSourceChars {
		content = content[:maxSourceChars]
	}
	return &GeneratedLesson{
		Title:                params.Topic,
		Domain:               string(models.DomainGeneral),
		DifficultyMultiplier: 1.0,
		EstimatedTime:        "15 min",
		XPReward:             100,
		Sections: []models.LessonSection{{
			Title:   params.Topic,
			Content: content,
		}},
	}
}

// normalizeLesson clamps the classifier output into the documented ranges so
// a misbehaving model can never skew the fairness weighting.
func normalizeLesson(lesson *GeneratedLesson, topic string) {
	if lesson.Title == "" {
		lesson.Title = topic
	}
	if _, ok := models.ParseDomain(lesson.Domain); !ok {
		lesson.Domain = string(models.DomainGeneral)
	}
	if lesson.DifficultyMultiplier < 1.0 {
		lesson.DifficultyMultiplier = 1.0
	}
	if lesson.DifficultyMultiplier > 1.5 {
		lesson.DifficultyMultiplier = 1.5
	}
	if lesson.XPReward <= 0 {
		lesson.XPReward = 100
	}
	if lesson.EstimatedTime == "" {
		lesson.EstimatedTime = "15 min"
	}
}

// cleanJSONOutput surgically extracts the JSON object from a model response,
// stripping any conversational filler or markdown fencing around it.
func cleanJSONOutput(text string) string {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last == -1 || first >= last {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[first : last+1])
}
