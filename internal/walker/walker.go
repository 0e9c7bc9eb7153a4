package walker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"safespace/internal/model"
	"strings"
)

// Page is one screen of the check-in flow
type Page string

const (
	PageLanding    Page = "landing"
	PageQuestions  Page = "questions"
	PageRoleplay   Page = "roleplay"
	PageReflection Page = "reflection"
)

// Shown when the backend cannot be reached
var (
	FallbackQuestions = []string{
		"Do you avoid talking about how you feel because of others?",
		"Have you felt judged for needing help with stress?",
		"Do you think admitting you struggle is weak?",
	}
	FallbackScenario = "A friend says 'You're making a big deal of nothing' when you open up about stress. How would you reply?"
	FallbackTip      = "Try a short breathing exercise: 4-4-4."
)

// maxLineBytes bounds one line of terminal input
const maxLineBytes = 1 << 20

const crisisNote = "If you feel in immediate danger or are thinking of self-harm, please contact local emergency services or a crisis helpline."

var answerChoices = map[string]string{
	"y": "Yes", "yes": "Yes",
	"m": "Maybe", "maybe": "Maybe",
	"n": "No", "no": "No",
}

// Session holds the variables carried between pages
type Session struct {
	Page        Page
	Answers     []string
	StigmaLevel model.StigmaLevel
	Scenario    string
	Reflection  string
	Tip         string
}

// Reset clears the session back to the landing page
func (s *Session) Reset() {
	*s = Session{Page: PageLanding}
}

// API is the backend surface the walker needs
type API interface {
	Questions(ctx context.Context) ([]string, error)
	Score(ctx context.Context, answers []string) (model.StigmaLevel, error)
	Scenario(ctx context.Context) (string, error)
	AskAI(ctx context.Context, ex model.RoleplayExchange) (model.Feedback, error)
}

// Walker runs the four-screen flow on a line-oriented terminal
type Walker struct {
	api     API
	in      *bufio.Scanner
	out     io.Writer
	Session Session
}

// New creates a walker reading answers from in and printing to out
func New(api API, in io.Reader, out io.Writer) *Walker {
	w := &Walker{
		api: api,
		in:  bufio.NewScanner(in),
		out: out,
	}
	w.in.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	w.Session.Reset()
	return w
}

// Run walks pages until the user quits or input ends. A read failure,
// including a line over maxLineBytes, is returned.
func (w *Walker) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var (
			done bool
			err  error
		)
		switch w.Session.Page {
		case PageLanding:
			done, err = w.landing()
		case PageQuestions:
			done, err = w.questions(ctx)
		case PageRoleplay:
			done, err = w.roleplay(ctx)
		case PageReflection:
			done, err = w.reflection()
		default:
			w.Session.Reset()
		}
		if err != nil {
			return err
		}
		if done {
			return w.in.Err()
		}
	}
}

// readLine returns false once input is exhausted
func (w *Walker) readLine(prompt string) (string, bool) {
	fmt.Fprint(w.out, prompt)
	if !w.in.Scan() {
		fmt.Fprintln(w.out)
		return "", false
	}
	return strings.TrimSpace(w.in.Text()), true
}

func (w *Walker) landing() (bool, error) {
	fmt.Fprintln(w.out, "Most people won't click this...")
	fmt.Fprintln(w.out, "Think you're fine? Prove it. (Or just be curious.)")
	fmt.Fprintln(w.out, "No sign-up, anonymous. Just a few minutes to check in and try a roleplay.")

	line, ok := w.readLine("Press Enter to take the challenge (q to quit): ")
	if !ok || strings.EqualFold(line, "q") {
		return true, nil
	}
	w.Session.Page = PageQuestions
	return false, nil
}

func (w *Walker) questions(ctx context.Context) (bool, error) {
	fmt.Fprintln(w.out, "\nDaily Stigma Check")

	questions, err := w.api.Questions(ctx)
	if err != nil || len(questions) == 0 {
		slog.Debug("Falling back to local questions", "error", err)
		fmt.Fprintln(w.out, "Could not fetch today's questions. Using default set.")
		questions = FallbackQuestions
	}

	answers := make([]string, 0, len(questions))
	for i, q := range questions {
		for {
			line, ok := w.readLine(fmt.Sprintf("%d. %s [Yes/Maybe/No]: ", i+1, q))
			if !ok {
				return true, nil
			}
			if a, valid := answerChoices[strings.ToLower(line)]; valid {
				answers = append(answers, a)
				break
			}
			fmt.Fprintln(w.out, "Please answer Yes, Maybe or No.")
		}
	}

	level, err := w.api.Score(ctx, answers)
	if err != nil {
		slog.Debug("Scoring failed", "error", err)
		level = model.StigmaUnknown
	}

	w.Session.Answers = answers
	w.Session.StigmaLevel = level
	w.Session.Page = PageRoleplay
	return false, nil
}

func (w *Walker) roleplay(ctx context.Context) (bool, error) {
	fmt.Fprintln(w.out, "\nDaily Roleplay")

	scenario, err := w.api.Scenario(ctx)
	if err != nil || strings.TrimSpace(scenario) == "" {
		slog.Debug("Falling back to local scenario", "error", err)
		scenario = FallbackScenario
	}
	w.Session.Scenario = scenario
	fmt.Fprintf(w.out, "Scenario: %s\n", scenario)

	for {
		reply, ok := w.readLine("How would you respond in this situation? ")
		if !ok {
			return true, nil
		}
		if reply == "" {
			fmt.Fprintln(w.out, "Please type a response before submitting.")
			continue
		}

		level := w.Session.StigmaLevel
		if level == "" {
			level = model.StigmaUnknown
		}
		feedback, err := w.api.AskAI(ctx, model.RoleplayExchange{
			Scenario:    w.Session.Scenario,
			UserReply:   reply,
			StigmaLevel: string(level),
		})
		if err != nil {
			slog.Debug("Feedback request failed", "error", err)
			fmt.Fprintln(w.out, "AI feedback currently unavailable. Please try again later.")
			continue
		}

		w.Session.Reflection = feedback.Reflection
		w.Session.Tip = feedback.Tip
		w.Session.Page = PageReflection
		return false, nil
	}
}

func (w *Walker) reflection() (bool, error) {
	level := w.Session.StigmaLevel
	if level == "" {
		level = model.StigmaUnknown
	}
	tip := w.Session.Tip
	if tip == "" {
		tip = FallbackTip
	}

	fmt.Fprintln(w.out, "\nReflection & Suggestion")
	fmt.Fprintf(w.out, "Your stigma level: %s\n", level)
	fmt.Fprintf(w.out, "AI Reflection: %s\n", w.Session.Reflection)
	fmt.Fprintf(w.out, "Try this: %s\n", tip)
	fmt.Fprintln(w.out, crisisNote)

	line, ok := w.readLine("Type r to restart, anything else to quit: ")
	if ok && strings.EqualFold(line, "r") {
		w.Session.Reset()
		return false, nil
	}
	return true, nil
}
