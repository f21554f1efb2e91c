package demodata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/brickyard/internal/ai"
)

// Per-dataset generation temperatures. User profiles run hotter than
// surveys and responses.
const (
	surveyTemperature   = 0.8
	userTemperature     = 0.9
	responseTemperature = 0.8
)

const surveysPrompt = `Generate 5 diverse survey structures in JSON format. Requirements:

- Each survey should have a unique, professional name and description
- Include 3-5 questions per survey with various types
- Question types: openText, multipleChoiceSingle, multipleChoiceMulti, rating, nps
- Cover different use cases: customer feedback, employee satisfaction, product research, event feedback, user onboarding
- Use realistic question text and answer options
- Include a thank you screen for each survey

Return only a JSON array with this exact structure:
[
  {
    "name": "Survey Name",
    "description": "Survey description",
    "questions": [
      {
        "type": "openText|multipleChoiceSingle|multipleChoiceMulti|rating|nps",
        "headline": "Question text",
        "subheader": "Optional subheader",
        "required": true,
        "choices": ["Option 1", "Option 2"],
        "range": 5,
        "scale": "number"
      }
    ],
    "thankYouCard": {
      "headline": "Thank you message",
      "subheader": "Additional message"
    }
  }
]

Return only the JSON array without any markdown formatting or additional text.`

const usersPrompt = `Generate 10 user profiles in JSON format. Requirements:

- Use realistic, diverse full names
- Create professional email addresses
- Assign roles: 5 users as "owner", 5 users as "member"

Return only a JSON array with this exact structure:
[
  {
    "name": "Full Name",
    "email": "email@domain.com",
    "role": "owner"
  }
]

Use realistic names and email addresses. Return only the JSON array without any markdown formatting.`

const responsePromptFormat = `Generate 1 realistic survey response for this survey:

Survey: %s

Questions:
%s

Return a JSON array with 1 response object:
[
  {
    "surveyIndex": %d,
    "answers": {
      "questionIndex_0": "answer value"
    },
    "completed": true
  }
]

Answer format:
- openText: string
- multipleChoiceSingle: string
- multipleChoiceMulti: array of strings
- rating: number
- nps: number (0-10)

Provide realistic, natural answers. Return only the JSON array without markdown formatting.`

// Generator produces the three demo datasets through an LLM provider.
// Progress notes go to out as each survey's responses are generated.
type Generator struct {
	provider ai.TextGenerator
	out      io.Writer
}

// NewGenerator builds a generator on the given provider.
func NewGenerator(provider ai.TextGenerator, out io.Writer) *Generator {
	return &Generator{provider: provider, out: out}
}

// GenerateSurveys asks the model for five survey structures.
func (g *Generator) GenerateSurveys(ctx context.Context) ([]Survey, error) {
	var surveys []Survey
	if err := g.generateInto(ctx, surveysPrompt, surveyTemperature, &surveys); err != nil {
		return nil, fmt.Errorf("generate surveys: %w", err)
	}
	return surveys, nil
}

// GenerateUsers asks the model for ten user profiles.
func (g *Generator) GenerateUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := g.generateInto(ctx, usersPrompt, userTemperature, &users); err != nil {
		return nil, fmt.Errorf("generate users: %w", err)
	}
	return users, nil
}

// GenerateResponses asks the model for one response per survey. Each
// response is generated against a summary of the survey's questions so the
// answers fit the question types, and carries the survey's position in the
// input slice as its surveyIndex.
func (g *Generator) GenerateResponses(ctx context.Context, surveys []Survey) ([]Response, error) {
	var all []Response
	for i, survey := range surveys {
		fmt.Fprintf(g.out, "  Processing survey %d/%d...\n", i+1, len(surveys))

		prompt := fmt.Sprintf(responsePromptFormat, survey.Name, questionSummaries(survey.Questions), i)
		var responses []Response
		if err := g.generateInto(ctx, prompt, responseTemperature, &responses); err != nil {
			return nil, fmt.Errorf("generate responses for survey %d: %w", i, err)
		}
		all = append(all, responses...)
	}
	return all, nil
}

func (g *Generator) generateInto(ctx context.Context, prompt string, temperature float32, target any) error {
	content, err := g.provider.GenerateText(ctx, prompt, temperature)
	if err != nil {
		return err
	}
	cleaned := CleanJSONResponse(content)
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("parse model output: %w", err)
	}
	return nil
}

// questionSummaries renders one line per question so the model knows what
// answer shape each position expects.
func questionSummaries(questions []Question) string {
	lines := make([]string, 0, len(questions))
	for _, q := range questions {
		switch q.Type {
		case QuestionMultipleChoiceSingle, QuestionMultipleChoiceMulti:
			lines = append(lines, fmt.Sprintf("%s (Type: %s, Choices: %s)", q.Headline, q.Type, strings.Join(q.Choices, ", ")))
		case QuestionRating:
			lines = append(lines, fmt.Sprintf("%s (Type: rating, Range: 1-%d)", q.Headline, ratingRangeOrDefault(q.Range)))
		case QuestionNPS:
			lines = append(lines, fmt.Sprintf("%s (Type: NPS, Range: 0-10)", q.Headline))
		default:
			lines = append(lines, fmt.Sprintf("%s (Type: %s)", q.Headline, q.Type))
		}
	}
	return strings.Join(lines, "\n")
}

func ratingRangeOrDefault(r int) int {
	if r == 0 {
		return 5
	}
	return r
}

// CleanJSONResponse strips a markdown code fence from a model reply. Models
// often wrap JSON in a ```json fence despite being told not to.
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.Split(content, "```")[1]
		content = strings.TrimPrefix(content, "json")
	}
	return strings.TrimSpace(content)
}
