package prompt

import (
	"encoding/json"
	"strings"
)

// ExplanationResult is the object the provider returns for an Explanation payload.
type ExplanationResult struct {
	Definition         string   `json:"definition"`
	Pronunciation      string   `json:"pronunciation"`
	PartOfSpeech       string   `json:"part_of_speech"`
	Example            string   `json:"example"`
	ExampleTranslation string   `json:"example_translation"`
	Synonyms           []string `json:"synonyms"`
	Antonyms           []string `json:"antonyms"`
}

// ParseExplanation decodes raw into an ExplanationResult.
func ParseExplanation(raw string) (*ExplanationResult, error) {
	var r ExplanationResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// FormatExplanation renders a provider response as the text stored on a card.
// Responses that are not a valid explanation object are returned trimmed but
// otherwise unchanged.
func FormatExplanation(raw string) string {
	r, err := ParseExplanation(raw)
	if err != nil || r.Definition == "" {
		return strings.TrimSpace(raw)
	}

	var b strings.Builder
	b.WriteString(r.Definition)

	if r.Pronunciation != "" || r.PartOfSpeech != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(r.Pronunciation + " " + paren(r.PartOfSpeech)))
	}
	if r.Example != "" {
		b.WriteString("\n\n")
		b.WriteString(r.Example)
		if r.ExampleTranslation != "" {
			b.WriteString("\n")
			b.WriteString(r.ExampleTranslation)
		}
	}
	if len(r.Synonyms) > 0 {
		b.WriteString("\n\nSynonyms: ")
		b.WriteString(strings.Join(r.Synonyms, ", "))
	}
	if len(r.Antonyms) > 0 {
		b.WriteString("\nAntonyms: ")
		b.WriteString(strings.Join(r.Antonyms, ", "))
	}
	return b.String()
}

func paren(s string) string {
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}
