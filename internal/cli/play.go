package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-party/internal/app"
	"trivia-party/internal/config"
	"trivia-party/internal/domain"
	"trivia-party/internal/game"
)

// NewPlayCmd runs a game in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		subjectID  string
		modeFlag   string
		difficulty string
		timerSecs  int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			if difficulty != "" {
				cfg.Game.Difficulty = difficulty
			}
			if timerSecs > 0 {
				cfg.Game.TimerDuration = timerSecs
			}
			mode, err := domain.ParseMode(modeFlag)
			if err != nil {
				return fmt.Errorf("%w: %q", err, modeFlag)
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()
			// Rejected actions are part of normal terminal play.
			log = log.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))

			service, closeCatalog, err := newService(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeCatalog()

			return playGame(cmd.Context(), service, cmd.InOrStdin(), cmd.OutOrStdout(), subjectID, mode)
		},
	}
	cmd.Flags().StringVar(&subjectID, "subject", "", "subject id (prompted when empty)")
	cmd.Flags().StringVar(&modeFlag, "mode", string(domain.ModeSolo), "solo or social")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium, hard or mixed")
	cmd.Flags().IntVar(&timerSecs, "timer", 0, "seconds per question")
	return cmd
}

type terminal struct {
	lines *bufio.Scanner
	out   io.Writer
}

func (t terminal) readLine() (string, bool) {
	if !t.lines.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.lines.Text()), true
}

func (t terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

// playGame drives one engine from subject selection to results. End of input
// quits quietly.
func playGame(ctx context.Context, service *app.GameService, in io.Reader, out io.Writer, subjectID string, mode domain.Mode) error {
	term := terminal{lines: bufio.NewScanner(in), out: out}

	if subjectID == "" {
		chosen, ok, err := chooseSubject(ctx, service, term)
		if err != nil || !ok {
			return err
		}
		subjectID = chosen
	}
	return playSubject(ctx, service, term, subjectID, mode)
}

func chooseSubject(ctx context.Context, service *app.GameService, term terminal) (string, bool, error) {
	subjects, err := service.Subjects(ctx)
	if err != nil {
		return "", false, err
	}
	if len(subjects) == 0 {
		return "", false, errors.New("catalog is empty")
	}
	term.printf("Pick a subject:\n")
	for i, s := range subjects {
		term.printf("  %d. %s (%d questions)\n", i+1, s.Name, s.QuestionCount)
	}
	for {
		term.printf("> ")
		line, ok := term.readLine()
		if !ok {
			return "", false, nil
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(subjects) {
			return subjects[n-1].ID, true, nil
		}
		for _, s := range subjects {
			if strings.EqualFold(line, s.ID) || strings.EqualFold(line, s.Name) {
				return s.ID, true, nil
			}
		}
		term.printf("Unknown subject %q\n", line)
	}
}

func playSubject(ctx context.Context, service *app.GameService, term terminal, subjectID string, mode domain.Mode) error {
	engine, err := service.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	snap, err := service.StartGame(ctx, engine, subjectID, mode)
	for {
		if errors.Is(err, domain.ErrNoQuestions) {
			term.printf("No questions available at this difficulty.\n")
			return nil
		}
		if err != nil {
			return err
		}

		var quit bool
		snap, quit = playRounds(engine, term, snap)
		if quit {
			term.printf("Bye!\n")
			return nil
		}

		results, resultsErr := engine.Results()
		if resultsErr != nil {
			return resultsErr
		}
		printResults(term, results)

		term.printf("Play again? [y/N] ")
		line, ok := term.readLine()
		if !ok || !isYes(line) {
			return nil
		}
		snap, err = engine.PlayAgain()
	}
}

// playRounds loops until the session finishes or the player quits.
func playRounds(engine *game.Engine, term terminal, snap domain.Snapshot) (domain.Snapshot, bool) {
	for snap.State != domain.StateFinished {
		switch snap.State {
		case domain.StateAwaitingAnswer:
			printQuestion(term, snap)
			line, ok := term.readLine()
			if !ok || line == "/quit" {
				return snap, true
			}
			snap = handleInput(engine, term, snap, line)
		case domain.StateAnswerRevealed:
			printReveal(term, snap)
			term.printf("Press enter for the next question ")
			line, ok := term.readLine()
			if !ok || line == "/quit" {
				return snap, true
			}
			next, err := engine.NextQuestion()
			if err != nil {
				term.printf("%v\n", err)
			}
			snap = next
		default:
			return snap, true
		}
	}
	return snap, false
}

func handleInput(engine *game.Engine, term terminal, snap domain.Snapshot, line string) domain.Snapshot {
	var (
		next domain.Snapshot
		err  error
	)
	switch {
	case line == "/pause":
		next, err = engine.PauseTimer()
	case line == "/resume":
		next, err = engine.ResumeTimer()
	case line == "/skip":
		next, err = engine.TimeUp()
	case snap.Mode == domain.ModeSocial:
		switch strings.ToLower(line) {
		case "y", "yes":
			next, err = engine.ReportAnswer(true)
		case "n", "no":
			next, err = engine.ReportAnswer(false)
		default:
			term.printf("Answer y or n.\n")
			return engine.Snapshot()
		}
	default:
		next, err = engine.AnswerQuestion(resolveChoice(snap.CurrentQuestion, line))
	}

	if errors.Is(err, domain.ErrAnswerRevealed) {
		term.printf("Time's up!\n")
		return engine.Snapshot()
	}
	if err != nil {
		term.printf("%v\n", err)
		return engine.Snapshot()
	}
	return next
}

// resolveChoice maps a 1-based choice number to its text.
func resolveChoice(q *domain.QuestionView, line string) string {
	if q == nil {
		return line
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(q.Choices) {
		return q.Choices[n-1]
	}
	return line
}

func printQuestion(term terminal, snap domain.Snapshot) {
	q := snap.CurrentQuestion
	if q == nil {
		return
	}
	term.printf("\nQuestion %d/%d [%s] %ds left", snap.CurrentQuestionIndex+1, snap.TotalQuestions, q.Difficulty, snap.Timer.Remaining)
	if snap.Timer.Paused {
		term.printf(" (paused)")
	}
	term.printf("\n%s\n", q.Prompt)
	if snap.Mode == domain.ModeSocial {
		term.printf("Shout it out! Did they get it? [y/n] ")
		return
	}
	for i, c := range q.Choices {
		term.printf("  %d. %s\n", i+1, c)
	}
	term.printf("> ")
}

func printReveal(term terminal, snap domain.Snapshot) {
	if snap.LastCorrect {
		term.printf("Correct! Streak %d\n", snap.Streak)
	} else {
		term.printf("Not this time.\n")
	}
	if q := snap.CurrentQuestion; q != nil {
		term.printf("Answer: %s\n", q.Answer)
		if q.Explanation != "" {
			term.printf("%s\n", q.Explanation)
		}
	}
	if snap.ShowPunishment {
		term.printf("Punishment: %s\n", snap.Punishment)
	}
	term.printf("Score %d/%d\n", snap.Score, snap.TotalQuestions)
}

func printResults(term terminal, r domain.Results) {
	term.printf("\n%s finished\n", r.SubjectName)
	term.printf("Score %d/%d (%d%%)\n", r.Score, r.Total, r.Percentage)
	term.printf("Grade %s: %s\n", r.Grade, r.Message)
	term.printf("Best streak %d\n", r.BestStreak)
}

func isYes(line string) bool {
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	return false
}
