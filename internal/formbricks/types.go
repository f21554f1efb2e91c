// Package formbricks talks to a running Formbricks instance. It converts the
// simplified survey schema into the platform's wire format and drives the
// management and client APIs used by the seeder.
package formbricks

// Survey is the platform's representation of a created survey. Only the
// fields the seeder relies on are modeled; the platform returns question ids
// in submission order, which the response remapper depends on.
type Survey struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	EnvironmentID string           `json:"environmentId"`
	Questions     []SurveyQuestion `json:"questions"`
}

// SurveyQuestion carries the server-assigned question id.
type SurveyQuestion struct {
	ID string `json:"id"`
}

// User is the platform's representation of a created organization member.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}

// Response is the platform's representation of a submitted survey response.
type Response struct {
	ID       string `json:"id"`
	SurveyID string `json:"surveyId"`
	Finished bool   `json:"finished"`
}

// surveyEnvelope is the {"data": ...} wrapper the management API puts
// around survey objects.
type surveyEnvelope struct {
	Data Survey `json:"data"`
}
