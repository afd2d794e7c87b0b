// Package play implements a shuffled review pass over a collection's cards.
package play

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/atinyakov/VocabDeck/internal/models"
)

// Session is one pass over a shuffled copy of the cards. The order is fixed
// for the lifetime of the session; start a new one to reshuffle.
type Session struct {
	cards    []models.Card
	index    int
	revealed bool
}

// New shuffles a copy of cards with rng. A nil rng uses the global source.
// Zero cards yield an empty session.
func New(cards []models.Card, rng *rand.Rand) *Session {
	deck := slices.Clone(cards)
	shuffle(deck, rng)
	return &Session{cards: deck}
}

// shuffle is an in-place Fisher–Yates shuffle.
func shuffle(cards []models.Card, rng *rand.Rand) {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := intN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Empty reports whether the session has no cards.
func (s *Session) Empty() bool { return len(s.cards) == 0 }

// Len returns the number of cards.
func (s *Session) Len() int { return len(s.cards) }

// Index returns the zero-based position of the current card.
func (s *Session) Index() int { return s.index }

// Order returns the shuffled cards.
func (s *Session) Order() []models.Card { return slices.Clone(s.cards) }

// Current returns the card being shown.
func (s *Session) Current() (models.Card, bool) {
	if s.Empty() {
		return models.Card{}, false
	}
	return s.cards[s.index], true
}

// Next moves forward. It is a no-op on the last card.
func (s *Session) Next() {
	if s.index < len(s.cards)-1 {
		s.index++
		s.revealed = false
	}
}

// Previous moves back. It is a no-op on the first card.
func (s *Session) Previous() {
	if s.index > 0 {
		s.index--
		s.revealed = false
	}
}

// Reveal shows the explanation of the current card.
func (s *Session) Reveal() {
	if !s.Empty() {
		s.revealed = true
	}
}

// Revealed reports whether the current card's explanation is visible.
func (s *Session) Revealed() bool { return s.revealed }

// Explanation returns the current explanation, or "" while hidden.
func (s *Session) Explanation() string {
	c, ok := s.Current()
	if !ok || !s.revealed {
		return ""
	}
	return c.Explanation
}

// Position renders the 1-based position as "i / n". Empty sessions give "".
func (s *Session) Position() string {
	if s.Empty() {
		return ""
	}
	return fmt.Sprintf("%d / %d", s.index+1, len(s.cards))
}
