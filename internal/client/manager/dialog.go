package manager

import (
	"context"
	"strings"

	"github.com/atinyakov/VocabDeck/internal/common"
	"github.com/atinyakov/VocabDeck/internal/prompt"
	"go.uber.org/zap"
)

// DialogKind says what a dialog will do on submit.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogAdd
	DialogEdit
	DialogErase
)

func (k DialogKind) String() string {
	switch k {
	case DialogAdd:
		return "add"
	case DialogEdit:
		return "edit"
	case DialogErase:
		return "erase"
	default:
		return "none"
	}
}

// DialogState is the lifecycle position of the card dialog.
type DialogState int

const (
	Closed DialogState = iota
	Open
	Generating
	Submitting
)

// Dialog is a snapshot of the card dialog.
type Dialog struct {
	Kind        DialogKind
	State       DialogState
	CardID      int64
	Content     string
	Explanation string
	// Notice holds a user-facing message about the last failed action.
	Notice string

	epoch uint64
}

// Dialog returns a snapshot of the current dialog.
func (m *CardManager) Dialog() Dialog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dialog
}

// OpenAdd opens an empty add dialog.
func (m *CardManager) OpenAdd() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dialog.Kind != DialogNone {
		return ErrDialogOpen
	}
	if err := m.canAddLocked(); err != nil {
		return err
	}
	m.openLocked(Dialog{Kind: DialogAdd})
	return nil
}

// OpenEdit opens an edit dialog prefilled with card id.
func (m *CardManager) OpenEdit(id int64) error {
	return m.openForCard(DialogEdit, id)
}

// OpenErase opens the erase confirmation for card id.
func (m *CardManager) OpenErase(id int64) error {
	return m.openForCard(DialogErase, id)
}

func (m *CardManager) openForCard(kind DialogKind, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dialog.Kind != DialogNone {
		return ErrDialogOpen
	}
	i := m.indexLocked(id)
	if i < 0 {
		return common.ErrNotFound
	}
	c := m.cards[i]
	m.openLocked(Dialog{Kind: kind, CardID: c.ID, Content: c.Content, Explanation: c.Explanation})
	return nil
}

func (m *CardManager) openLocked(d Dialog) {
	m.epoch++
	d.State = Open
	d.epoch = m.epoch
	m.dialog = d
}

// Close discards the dialog. Pending completions for it are dropped when they
// arrive.
func (m *CardManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *CardManager) closeLocked() {
	m.epoch++
	m.dialog = Dialog{epoch: m.epoch}
}

// SetContent edits the term field of an open add or edit dialog.
func (m *CardManager) SetContent(s string) error {
	return m.edit(func(d *Dialog) { d.Content = s })
}

// SetExplanation edits the explanation field of an open add or edit dialog.
func (m *CardManager) SetExplanation(s string) error {
	return m.edit(func(d *Dialog) { d.Explanation = s })
}

func (m *CardManager) edit(fn func(*Dialog)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dialog.Kind != DialogAdd && m.dialog.Kind != DialogEdit {
		return ErrNoDialog
	}
	if m.dialog.State != Open {
		return ErrDialogBusy
	}
	fn(&m.dialog)
	return nil
}

// Submit performs the dialog's action. On success the dialog closes. On
// failure it stays open with its input intact and a notice set.
func (m *CardManager) Submit(ctx context.Context) error {
	m.mu.Lock()
	d := m.dialog
	switch {
	case d.Kind == DialogNone:
		m.mu.Unlock()
		return ErrNoDialog
	case d.State != Open:
		m.mu.Unlock()
		return ErrDialogBusy
	}
	if d.Kind != DialogErase {
		// local validation keeps the dialog open without a round trip
		if err := validateCard(d.Content, d.Explanation); err != nil {
			m.mu.Unlock()
			return err
		}
	}
	m.dialog.State = Submitting
	m.mu.Unlock()

	var err error
	switch d.Kind {
	case DialogAdd:
		_, err = m.Create(ctx, d.Content, d.Explanation)
	case DialogEdit:
		_, err = m.Update(ctx, d.CardID, d.Content, d.Explanation)
	case DialogErase:
		err = m.Erase(ctx, d.CardID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dialog.epoch != d.epoch {
		return err
	}
	if err != nil {
		m.dialog.State = Open
		m.dialog.Notice = err.Error()
		return err
	}
	m.closeLocked()
	return nil
}

// GenerateExplanation asks the completion gateway to explain the dialog's
// term in the preferred language and writes the result into the explanation
// field. Only one generation may be in flight per dialog. If the dialog was
// closed meanwhile the response is dropped and ErrStaleResponse returned.
func (m *CardManager) GenerateExplanation(ctx context.Context) (string, error) {
	m.mu.Lock()
	if err := m.beginGenerationLocked(); err != nil {
		m.mu.Unlock()
		return "", err
	}
	if strings.TrimSpace(m.dialog.Content) == "" {
		m.dialog.State = Open
		m.mu.Unlock()
		return "", ErrContentRequired
	}
	epoch := m.dialog.epoch
	p := prompt.Explanation(m.dialog.Content, m.prefs.Language())
	m.mu.Unlock()

	raw, err := m.completer.Complete(ctx, p)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dialog.epoch != epoch {
		return "", ErrStaleResponse
	}
	m.dialog.State = Open
	if err != nil {
		m.log.Error("generate explanation", zap.Error(err))
		m.dialog.Notice = NoticeGenerationFailed
		return "", err
	}

	text := prompt.FormatExplanation(raw)
	m.dialog.Explanation = text
	m.dialog.Notice = ""
	return text, nil
}

// RecommendNextWord asks for one new word on topic and prefills the add
// dialog's term with it after stripping punctuation. Needs at least
// RecommendThreshold cards. With no dialog open an add dialog is opened
// first; an open edit or erase dialog yields ErrDialogOpen.
func (m *CardManager) RecommendNextWord(ctx context.Context, topic string) (string, error) {
	m.mu.Lock()
	if m.collectionID == nil || len(m.cards) < RecommendThreshold {
		m.mu.Unlock()
		return "", ErrRecommendUnavailable
	}
	switch m.dialog.Kind {
	case DialogAdd:
	case DialogNone:
		if err := m.canAddLocked(); err != nil {
			m.mu.Unlock()
			return "", err
		}
		m.openLocked(Dialog{Kind: DialogAdd})
	default:
		m.mu.Unlock()
		return "", ErrDialogOpen
	}
	if err := m.beginGenerationLocked(); err != nil {
		m.mu.Unlock()
		return "", err
	}
	existing := make([]string, 0, len(m.cards))
	for _, c := range m.cards {
		existing = append(existing, c.Content)
	}
	epoch := m.dialog.epoch
	p := prompt.Recommendation(existing, m.prefs.Language(), topic)
	m.mu.Unlock()

	raw, err := m.completer.Complete(ctx, p)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dialog.epoch != epoch {
		return "", ErrStaleResponse
	}
	m.dialog.State = Open
	if err != nil {
		m.log.Error("recommend word", zap.Error(err))
		m.dialog.Notice = NoticeGenerationFailed
		return "", err
	}

	word := prompt.SanitizeWord(raw)
	if word == "" {
		m.dialog.Notice = NoticeGenerationFailed
		return "", ErrContentRequired
	}
	m.dialog.Content = word
	m.dialog.Notice = ""
	return word, nil
}

func (m *CardManager) beginGenerationLocked() error {
	switch {
	case m.dialog.Kind != DialogAdd && m.dialog.Kind != DialogEdit:
		return ErrNoDialog
	case m.dialog.State != Open:
		return ErrDialogBusy
	}
	m.dialog.State = Generating
	return nil
}
