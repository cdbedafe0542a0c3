package languagetool

// IssueMisspelling is the only issue type the patch applier acts on.
const IssueMisspelling = "misspelling"

// Match is one candidate correction reported by the service. Offset and
// Length address the submitted chunk text and are interpreted as rune
// positions against the pre-edit chunk.
type Match struct {
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Message      string        `json:"message,omitempty"`
	Rule         Rule          `json:"rule"`
	Replacements []Replacement `json:"replacements"`
}

// Rule carries the service's classification of the match.
type Rule struct {
	ID        string `json:"id,omitempty"`
	IssueType string `json:"issueType"`
}

// Replacement is one suggested correction string.
type Replacement struct {
	Value string `json:"value"`
}

type checkResponse struct {
	Matches []Match `json:"matches"`
}
