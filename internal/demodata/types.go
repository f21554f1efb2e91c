// Package demodata defines the simplified survey authoring schema produced
// by the generator and consumed by the seeder, along with the dataset files
// that carry it between the two commands.
package demodata

// Question types accepted by the simplified schema.
const (
	QuestionOpenText             = "openText"
	QuestionMultipleChoiceSingle = "multipleChoiceSingle"
	QuestionMultipleChoiceMulti  = "multipleChoiceMulti"
	QuestionRating               = "rating"
	QuestionNPS                  = "nps"
)

// User roles accepted by the platform's organization membership.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Survey is a simplified, human-authored survey description. It is written
// once by the generator and never mutated afterwards.
type Survey struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Questions    []Question    `json:"questions"`
	ThankYouCard *ThankYouCard `json:"thankYouCard,omitempty"`
}

// Question is a single survey question in the simplified schema. Choices are
// only meaningful for the multipleChoice types; range and scale only for
// rating questions.
type Question struct {
	Type      string   `json:"type"`
	Headline  string   `json:"headline"`
	Subheader string   `json:"subheader,omitempty"`
	Required  *bool    `json:"required,omitempty"`
	Choices   []string `json:"choices,omitempty"`
	Range     int      `json:"range,omitempty"`
	Scale     string   `json:"scale,omitempty"`
}

// IsRequired reports whether the question must be answered. Questions are
// required unless the schema explicitly opts out.
func (q Question) IsRequired() bool {
	return q.Required == nil || *q.Required
}

// ThankYouCard is the closing screen shown after survey completion.
type ThankYouCard struct {
	Headline  string `json:"headline,omitempty"`
	Subheader string `json:"subheader,omitempty"`
}

// User is a synthetic platform user profile.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Response is a synthetic survey response. SurveyIndex addresses the survey
// by its position in the surveys dataset the response was generated against;
// reordering or filtering that dataset invalidates every response. Answer
// keys use the form "questionIndex_{i}"; server-assigned question ids do not
// exist at generation time.
type Response struct {
	SurveyIndex int            `json:"surveyIndex"`
	Answers     map[string]any `json:"answers"`
	Completed   *bool          `json:"completed,omitempty"`
}

// IsCompleted reports whether the response counts as finished. Responses are
// finished unless the schema explicitly opts out.
func (r Response) IsCompleted() bool {
	return r.Completed == nil || *r.Completed
}
