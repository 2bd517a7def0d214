package types

import "time"

// Challenge represents a practice coding challenge that candidates solve
// to earn skill tags. Challenges are graded by the external judge against
// a single input/expected-output pair.
type Challenge struct {
	// ID is the unique identifier of the challenge.
	ID int `json:"id" db:"id"`

	// Title is the human-readable name of the challenge.
	Title string `json:"title" db:"title"`

	// Description contains the full challenge statement.
	Description string `json:"description" db:"description"`

	// Type categorizes the challenge, typically by language.
	Type string `json:"type" db:"type"`

	// Input is the stdin handed to the submitted program.
	Input string `json:"input" db:"input"`

	// ExpectedOutput is the output a correct solution must produce.
	ExpectedOutput string `json:"expectedOutput" db:"expected_output"`

	// BoilerplateCode is the starter code shown to candidates.
	BoilerplateCode string `json:"boilerplateCode" db:"boilerplate_code"`

	// LanguageTag is the skill tag awarded when a submission scores high
	// enough. Matching elsewhere is case-sensitive, so the tag is stored
	// exactly as it should appear in a user's skill set.
	LanguageTag string `json:"languageTag" db:"language_tag"`

	// CreatedAt is the timestamp at which the challenge was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
