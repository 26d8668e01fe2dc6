package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
)

const maxPromptChars = 20000

// contentGenerator is the part of llms.Model the extractor needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type LLMService struct {
	Client contentGenerator
}

// NewLLMService connects to Gemini. Without an API key the service is
// created disabled and every call returns ErrExtractionDisabled.
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		logrus.Warn("GEMINI_API_KEY is empty, vacancy extraction disabled")
		return &LLMService{}, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

const vacancyExtractionPrompt = `
You are a job posting data extraction agent. Read the text of a job posting and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists and advertisements.
2. Output valid JSON only. Do not wrap it in markdown code blocks.
3. If a field is missing, use null for numbers, "" for strings and [] for lists. Do not guess.

### OUTPUT SCHEMA:
{
    "name": "Vacancy title, at most 30 characters",
    "company_name": "Name of the hiring company",
    "level": "One of: Intern, Junior, Middle, Senior",
    "experience": "Required experience, e.g. '3+ years'",
    "min_salary": 1000,
    "max_salary": 2000,
    "description": "Responsibilities and requirements as plain text",
    "tags": ["up", "to", "five", "lowercase", "technologies"],
    "country": "Country of the office",
    "cities": ["City names"],
    "employment_format": ["Any of: Employment contract, B2B, Mandate contract"],
    "work_format": ["Any of: Remote work, Office work, Hybrid, Full-time, Part-time, Freelance"]
}

### POSTING:
%s
`

// ExtractVacancyDetails turns a raw posting page into a vacancy draft.
func (s *LLMService) ExtractVacancyDetails(ctx context.Context, rawHTML string) (*dtos.VacancyDraft, error) {
	if s == nil || s.Client == nil {
		return nil, ErrExtractionDisabled
	}

	text, err := htmlToText(rawHTML)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(vacancyExtractionPrompt, text)
	resp, err := s.Client.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(0),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, fmt.Errorf("llm call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("llm returned no choices")
	}

	raw := stripCodeFence(resp.Choices[0].Content)
	var draft dtos.VacancyDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		logrus.WithField("raw", raw).Warn("llm answer is not valid json")
		return nil, fmt.Errorf("decode llm answer: %w", err)
	}
	return &draft, nil
}

// htmlToText keeps the visible text of a page, collapsed to single spaces.
func htmlToText(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, nav, footer, header").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	if runes := []rune(text); len(runes) > maxPromptChars {
		text = string(runes[:maxPromptChars])
	}
	return text, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
