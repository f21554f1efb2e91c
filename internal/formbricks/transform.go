package formbricks

import (
	"github.com/louisbranch/brickyard/internal/demodata"
)

// Defaults applied when the simplified schema leaves a field out.
const (
	defaultPlaceholder     = "Type your answer here..."
	defaultRatingRange     = 5
	defaultRatingScale     = "number"
	defaultEndingHeadline  = "Thank you!"
	defaultEndingSubheader = "We appreciate your feedback."
)

// TransformSurvey converts a simplified survey into the platform's creation
// payload. The conversion is pure: the same input always yields the same
// payload, and the input is never mutated. Questions keep their order, which
// later anchors the questionIndex answer remapping.
func TransformSurvey(survey demodata.Survey, environmentID string) map[string]any {
	questions := make([]map[string]any, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		questions = append(questions, transformQuestion(q))
	}

	return map[string]any{
		"name":          survey.Name,
		"type":          "link",
		"status":        "inProgress",
		"environmentId": environmentID,
		"questions":     questions,
		"endings":       []map[string]any{transformEnding(survey.ThankYouCard)},
	}
}

func transformQuestion(q demodata.Question) map[string]any {
	wire := map[string]any{
		"type":     q.Type,
		"headline": localized(q.Headline),
		"required": q.IsRequired(),
	}
	if q.Subheader != "" {
		wire["subheader"] = localized(q.Subheader)
	}

	switch q.Type {
	case demodata.QuestionOpenText:
		wire["inputType"] = "text"
		wire["placeholder"] = localized(defaultPlaceholder)
	case demodata.QuestionMultipleChoiceSingle, demodata.QuestionMultipleChoiceMulti:
		choices := make([]map[string]any, 0, len(q.Choices))
		for _, choice := range q.Choices {
			choices = append(choices, map[string]any{"label": localized(choice)})
		}
		wire["choices"] = choices
		if q.Type == demodata.QuestionMultipleChoiceMulti {
			wire["allowMultipleSelection"] = true
		}
	case demodata.QuestionRating:
		wire["range"] = ratingRange(q.Range)
		wire["scale"] = ratingScale(q.Scale)
		wire["lowerLabel"] = localized("Not likely")
		wire["upperLabel"] = localized("Very likely")
	case demodata.QuestionNPS:
		wire["lowerLabel"] = localized("Not at all likely")
		wire["upperLabel"] = localized("Extremely likely")
	}
	return wire
}

// transformEnding builds the single endScreen ending every survey gets. A
// nil card falls back to stock thank-you copy.
func transformEnding(card *demodata.ThankYouCard) map[string]any {
	headline := defaultEndingHeadline
	subheader := defaultEndingSubheader
	if card != nil {
		if card.Headline != "" {
			headline = card.Headline
		}
		if card.Subheader != "" {
			subheader = card.Subheader
		}
	}
	return map[string]any{
		"type":      "endScreen",
		"headline":  localized(headline),
		"subheader": localized(subheader),
	}
}

func ratingRange(r int) int {
	if r == 0 {
		return defaultRatingRange
	}
	return r
}

func ratingScale(s string) string {
	if s == "" {
		return defaultRatingScale
	}
	return s
}

// localized wraps display text in the platform's i18n envelope.
func localized(text string) map[string]any {
	return map[string]any{"default": text}
}
