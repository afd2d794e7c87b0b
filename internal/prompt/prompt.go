// Package prompt builds the chat payloads sent to the completion endpoint and
// post-processes the text that comes back. Everything here is pure.
package prompt

import (
	"fmt"
	"strings"
)

// Role names understood by the completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Format selects the response shape requested from the provider.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json_object"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is the body of a completion request.
type Payload struct {
	Messages []Message `json:"prompt"`
	Format   Format    `json:"format,omitempty"`
}

const explanationSystem = "You are a helpful %[1]s language instructor and a student is asking about a word. " +
	"Explain the word in English and give examples in %[1]s. " +
	"Answer with a single JSON object and nothing else, using exactly these keys: " +
	`"definition", "pronunciation", "part_of_speech", "example", "example_translation", "synonyms", "antonyms". ` +
	`"synonyms" and "antonyms" are arrays of strings and may be empty.`

// worked example shown to the model before the real request
const (
	exampleWord   = "hus"
	exampleAnswer = `{"definition":"house; a building people live in","pronunciation":"/huːs/","part_of_speech":"noun",` +
		`"example":"Vi bor i et gammelt hus.","example_translation":"We live in an old house.",` +
		`"synonyms":["bolig"],"antonyms":[]}`
)

// Explanation returns the payload asking for a structured explanation of term.
func Explanation(term, language string) Payload {
	return Payload{
		Messages: []Message{
			{Role: RoleSystem, Content: fmt.Sprintf(explanationSystem, language)},
			{Role: RoleUser, Content: wordRequest(exampleWord)},
			{Role: RoleAssistant, Content: exampleAnswer},
			{Role: RoleUser, Content: wordRequest(strings.TrimSpace(term))},
		},
		Format: FormatJSON,
	}
}

func wordRequest(word string) string {
	return "The word is " + word + "."
}

// Recommendation returns the payload asking for one new word on topic that is
// not already in existing.
func Recommendation(existing []string, language, topic string) Payload {
	known := "none yet"
	if len(existing) > 0 {
		known = strings.Join(existing, ", ")
	}

	topicLine := "The student has not chosen a topic."
	if t := strings.TrimSpace(topic); t != "" {
		topicLine = "The topic of the word list is: " + t + "."
	}

	return Payload{
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a helpful " + language + " language instructor recommending vocabulary to a student."},
			{Role: RoleUser, Content: topicLine + "\n" +
				"Words the student already knows: " + known + ".\n" +
				"Recommend exactly one new " + language + " word that fits the topic and is not in the list. " +
				"Reply with the bare word only, in lowercase, without punctuation or explanation."},
		},
		Format: FormatText,
	}
}
