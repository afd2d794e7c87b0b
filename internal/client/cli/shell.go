package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atinyakov/VocabDeck/internal/client/manager"
	"github.com/atinyakov/VocabDeck/internal/client/play"
	"github.com/atinyakov/VocabDeck/internal/client/settings"
)

const shellHelp = `Collections:
  collections                 list your collections
  select <id>                 select a collection (again to deselect)
  new <title> [| description] create a collection
  remove <id>                 delete a collection and its cards
Cards (selected collection):
  cards                       list cards
  add                         open the add dialog
  edit <id>                   open the edit dialog
  delete <id>                 ask to delete a card
Dialog:
  term <text>                 set the term
  explain <text>              set the explanation
  generate                    generate the explanation
  recommend                   suggest the next word
  show                        print the dialog
  save                        submit the dialog
  cancel                      close without saving
Play:
  play | next | prev | reveal | stop
Profile:
  language [name|reset]       show or set the target language
  key <provider key|clear>    use your own provider key
  feedback [0-5] <text>       send feedback
  onboarding [done]           show or dismiss the onboarding hint
  passwd                      change password
  logout
  help | exit`

// Shell is the interactive command loop.
type Shell struct {
	app     *App
	in      *bufio.Reader
	out     io.Writer
	session *play.Session
}

// NewShell returns a Shell reading commands from in.
func NewShell(app *App, in io.Reader, out io.Writer) *Shell {
	return &Shell{app: app, in: bufio.NewReader(in), out: out}
}

// Run loops until "exit", EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.app.Collections.Refresh(ctx); err != nil {
		s.printErr(err)
	}
	if need, err := s.app.Settings.NeedsOnboarding(ctx); err == nil && need {
		s.println("Welcome! Create a collection with 'new <title>', select it, then 'add' cards. Type 'help' for all commands.")
	}

	for ctx.Err() == nil {
		line, err := promptLine(s.in, s.out, s.promptText())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if s.exec(ctx, line) {
			return nil
		}
	}
	return ctx.Err()
}

func (s *Shell) promptText() string {
	if d := s.app.Cards.Dialog(); d.Kind != manager.DialogNone {
		return fmt.Sprintf("vocabdeck[%s]> ", d.Kind)
	}
	if s.session != nil {
		return "vocabdeck[play]> "
	}
	if c, ok := s.app.Collections.Selected(); ok {
		return fmt.Sprintf("vocabdeck:%s> ", c.Title)
	}
	return "vocabdeck> "
}

// exec runs one command line and reports whether the shell should exit.
func (s *Shell) exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "help":
		s.println(shellHelp)
	case "exit", "quit":
		s.println("Bye")
		return true

	case "collections":
		if err := s.app.Collections.Refresh(ctx); err != nil {
			s.printErr(err)
			return false
		}
		s.listCollections()
	case "select":
		id, ok := s.parseID(rest, "select <id>")
		if !ok {
			return false
		}
		s.session = nil
		if err := s.app.Collections.Select(ctx, &id); err != nil {
			s.printErr(err)
		}
	case "new":
		title, desc, _ := strings.Cut(rest, "|")
		if _, err := s.app.Collections.Create(ctx, title, desc); err != nil {
			s.printErr(err)
			return false
		}
		s.listCollections()
	case "remove":
		id, ok := s.parseID(rest, "remove <id>")
		if !ok {
			return false
		}
		if err := s.app.Collections.Erase(ctx, id); err != nil {
			s.printErr(err)
			return false
		}
		if _, ok := s.app.Collections.Selected(); !ok {
			s.session = nil
		}
		s.println("Collection deleted")

	case "cards":
		s.listCards()
	case "add":
		if err := s.app.Cards.OpenAdd(); err != nil {
			s.printErr(err)
			return false
		}
		if s.app.Cards.CanRecommend() {
			s.println("Tip: 'recommend' suggests a next word.")
		}
	case "edit":
		if id, ok := s.parseID(rest, "edit <id>"); ok {
			s.check(s.app.Cards.OpenEdit(id))
		}
	case "delete":
		if id, ok := s.parseID(rest, "delete <id>"); ok {
			if err := s.app.Cards.OpenErase(id); err != nil {
				s.printErr(err)
				return false
			}
			s.println("Type 'save' to delete or 'cancel' to keep the card.")
		}

	case "term":
		s.check(s.app.Cards.SetContent(rest))
	case "explain":
		s.check(s.app.Cards.SetExplanation(rest))
	case "generate":
		s.println("Generating...")
		if _, err := s.app.Cards.GenerateExplanation(ctx); err != nil {
			s.printErr(err)
		}
		s.showDialog()
	case "recommend":
		topic := ""
		if c, ok := s.app.Collections.Selected(); ok {
			topic = c.Title
		}
		word, err := s.app.Cards.RecommendNextWord(ctx, topic)
		if err != nil {
			s.printErr(err)
			return false
		}
		s.printf("Suggested: %s\n", word)
	case "show":
		s.showDialog()
	case "save":
		if err := s.app.Cards.Submit(ctx); err != nil {
			s.printErr(err)
			return false
		}
		s.println("Saved")
	case "cancel":
		s.app.Cards.Close()

	case "play":
		s.session = play.New(s.app.Cards.Cards(), nil)
		s.showCard()
	case "next", "prev", "reveal":
		if s.session == nil {
			s.println("Not playing. Type 'play' first.")
			return false
		}
		switch cmd {
		case "next":
			s.session.Next()
		case "prev":
			s.session.Previous()
		case "reveal":
			s.session.Reveal()
		}
		s.showCard()
	case "stop":
		s.session = nil

	case "language":
		s.language(rest)
	case "key":
		if rest == "clear" {
			rest = ""
		}
		s.check(s.app.Settings.SetProviderKey(rest))
	case "feedback":
		s.feedback(ctx, rest)
	case "onboarding":
		if rest == "done" {
			s.check(s.app.Settings.DismissOnboarding(ctx))
			return false
		}
		need, err := s.app.Settings.NeedsOnboarding(ctx)
		if err != nil {
			s.printErr(err)
			return false
		}
		s.printf("Onboarding pending: %v\n", need)
	case "passwd":
		pw, err := promptPassword(s.out, "New password: ")
		if err != nil {
			s.printErr(err)
			return false
		}
		if err := s.app.Settings.UpdatePassword(ctx, pw); err != nil {
			s.printErr(err)
			return false
		}
		s.println("Password updated")
	case "logout":
		if err := s.app.Settings.Logout(ctx); err != nil {
			s.printErr(err)
		}
		s.println("Signed out")
		return true

	default:
		s.println("Unknown command. Type 'help' for a list of commands.")
	}
	return false
}

func (s *Shell) language(arg string) {
	switch arg {
	case "":
	case "reset":
		if err := s.app.Settings.ResetLanguage(); err != nil {
			s.printErr(err)
			return
		}
	default:
		if err := s.app.Settings.SetLanguage(arg); err != nil {
			s.printErr(err)
			return
		}
	}
	s.printf("Target language: %s\n", s.app.Settings.Language())
}

func (s *Shell) feedback(ctx context.Context, arg string) {
	var rating *int
	first, rest, _ := strings.Cut(arg, " ")
	if n, err := strconv.Atoi(first); err == nil {
		rating = &n
		arg = rest
	}
	if err := s.app.Settings.SubmitFeedback(ctx, rating, arg); err != nil {
		if errors.Is(err, settings.ErrFeedbackRequired) {
			s.println("Usage: feedback [0-5] <text>")
			return
		}
		s.printErr(err)
		return
	}
	s.println("Thanks for your feedback!")
}

func (s *Shell) listCollections() {
	cols := s.app.Collections.List()
	if len(cols) == 0 {
		s.println("No collections yet.")
		return
	}
	sel, hasSel := s.app.Collections.Selected()
	for _, c := range cols {
		mark := " "
		if hasSel && sel.ID == c.ID {
			mark = "*"
		}
		desc := ""
		if c.Description != nil {
			desc = " - " + *c.Description
		}
		s.printf("%s %d  %s%s\n", mark, c.ID, c.Title, desc)
	}
	if !s.app.Collections.CanCreate() {
		s.println("Collection limit reached.")
	}
}

func (s *Shell) listCards() {
	if _, ok := s.app.Cards.CollectionID(); !ok {
		s.println("Select a collection first.")
		return
	}
	cards := s.app.Cards.Cards()
	if len(cards) == 0 {
		s.println("No cards yet.")
		return
	}
	for _, c := range cards {
		s.printf("%d  %s\n", c.ID, c.Content)
	}
	if !s.app.Cards.CanAdd() {
		s.println("Card limit reached.")
	}
}

func (s *Shell) showDialog() {
	d := s.app.Cards.Dialog()
	if d.Kind == manager.DialogNone {
		s.println("No dialog open.")
		return
	}
	s.printf("Term: %s\nExplanation:\n%s\n", d.Content, d.Explanation)
	if d.Notice != "" {
		s.printf("! %s\n", d.Notice)
	}
}

func (s *Shell) showCard() {
	c, ok := s.session.Current()
	if !ok {
		s.println("No cards to play.")
		return
	}
	s.printf("[%s] %s\n", s.session.Position(), c.Content)
	if s.session.Revealed() {
		s.println(s.session.Explanation())
	} else {
		s.println("(type 'reveal' to show the explanation)")
	}
}

func (s *Shell) parseID(arg, usage string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		s.println("Usage: " + usage)
		return 0, false
	}
	return id, true
}

func (s *Shell) check(err error) {
	if err != nil {
		s.printErr(err)
	}
}

func (s *Shell) printErr(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
