package game

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"trivia-party/internal/catalog"
	"trivia-party/internal/domain"
	"trivia-party/internal/punishment"
	"trivia-party/internal/timer"
)

func TestScienceScenario(t *testing.T) {
	picker, err := punishment.NewPickerWithSource(punishment.Default, rand.NewSource(1))
	if err != nil {
		t.Fatalf("picker: %v", err)
	}
	e := newTestEngine(t, domain.DefaultSettings(), WithPicker(picker))

	snap, err := e.StartGame(subject(t, "science"), domain.ModeSolo)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.TotalQuestions != 3 || snap.CurrentQuestion.ID != "1" || !snap.IsPlaying {
		t.Fatalf("unexpected start snapshot: %+v", snap)
	}

	snap, err = e.AnswerQuestion("Au")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if snap.Score != 1 || snap.Streak != 1 || !snap.ShowAnswer || snap.ShowPunishment {
		t.Fatalf("unexpected snapshot after correct answer: %+v", snap)
	}

	snap, err = e.NextQuestion()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if snap.CurrentQuestionIndex != 1 || snap.ShowAnswer {
		t.Fatalf("unexpected snapshot after next: %+v", snap)
	}

	snap, err = e.AnswerQuestion("196")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if snap.Score != 1 || snap.Streak != 0 || !snap.ShowPunishment {
		t.Fatalf("unexpected snapshot after wrong answer: %+v", snap)
	}
	if snap.Punishment == "" || !picker.Contains(snap.Punishment) {
		t.Fatalf("expected a punishment from the list, got %q", snap.Punishment)
	}

	if _, err := e.NextQuestion(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := e.AnswerQuestion("Mars"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	snap, err = e.NextQuestion()
	if err != nil {
		t.Fatalf("final next: %v", err)
	}
	if snap.IsPlaying || snap.State != domain.StateFinished {
		t.Fatalf("expected finished session, got %+v", snap)
	}
	if snap.CurrentQuestionIndex != 2 || snap.CurrentQuestion.ID != "3" {
		t.Fatalf("finishing should not move the current question, got %+v", snap.CurrentQuestion)
	}

	res, err := e.Results()
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if res.Score != 2 || res.Total != 3 || res.Percentage != 67 || res.Grade != "C" || res.BestStreak != 1 {
		t.Fatalf("unexpected results: %+v", res)
	}
}

func TestTimeUpOnLastQuestion(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := e.AnswerQuestion(mustCurrent(t, e).Answer); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if _, err := e.NextQuestion(); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}

	snap, err := e.TimeUp()
	if err != nil {
		t.Fatalf("time up: %v", err)
	}
	if snap.Score != 2 || snap.Streak != 0 || !snap.ShowAnswer || !snap.ShowPunishment {
		t.Fatalf("time up should score like a wrong answer, got %+v", snap)
	}
	if snap.CurrentQuestion.Answer != "Mars" {
		t.Fatalf("expected answer revealed, got %+v", snap.CurrentQuestion)
	}

	snap, err = e.NextQuestion()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if snap.IsPlaying {
		t.Fatalf("expected finished session")
	}
}

func TestCountdownExpiryRevealsAnswer(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.TimerDuration = 2
	e := newTestEngine(t, settings)
	if _, err := e.StartGame(subject(t, "sports"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}

	e.countdown.Tick()
	if snap := e.Snapshot(); snap.ShowAnswer || snap.Timer.Remaining != 1 {
		t.Fatalf("expected one second left and no reveal, got %+v", snap)
	}
	e.countdown.Tick()

	snap := e.Snapshot()
	if !snap.ShowAnswer || !snap.ShowPunishment || snap.Timer.Active {
		t.Fatalf("expected expiry to reveal with punishment, got %+v", snap)
	}

	snap, err := e.NextQuestion()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if snap.Timer.Remaining != 2 || !snap.Timer.Active {
		t.Fatalf("next question should restart the countdown, got %+v", snap.Timer)
	}
}

func TestStaleExpiryIsIgnored(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	if _, err := e.StartGame(subject(t, "movies"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}
	e.mu.Lock()
	firstRun := e.session.timerRun
	e.mu.Unlock()

	if _, err := e.AnswerQuestion(mustCurrent(t, e).Answer); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := e.NextQuestion(); err != nil {
		t.Fatalf("next: %v", err)
	}

	e.onTimerZero(firstRun)
	if snap := e.Snapshot(); snap.ShowAnswer {
		t.Fatalf("expiry from the previous question must not reveal the current one")
	}
}

func TestAnswerTimerStopsOnReveal(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.AnswerQuestion("Au"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if e.countdown.Tick() {
		t.Fatalf("countdown should not tick after the answer is revealed")
	}
	if snap := e.Snapshot(); snap.ShowPunishment {
		t.Fatalf("a correct answer must never turn into a punishment")
	}
}

func TestPreconditionGuards(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())

	if _, err := e.AnswerQuestion("Au"); !errors.Is(err, domain.ErrNotPlaying) {
		t.Fatalf("answer while idle: expected ErrNotPlaying, got %v", err)
	}
	if _, err := e.NextQuestion(); !errors.Is(err, domain.ErrNotPlaying) {
		t.Fatalf("next while idle: expected ErrNotPlaying, got %v", err)
	}
	if _, err := e.TimeUp(); !errors.Is(err, domain.ErrNotPlaying) {
		t.Fatalf("time up while idle: expected ErrNotPlaying, got %v", err)
	}

	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.NextQuestion(); !errors.Is(err, domain.ErrAnswerNotRevealed) {
		t.Fatalf("next before answer: expected ErrAnswerNotRevealed, got %v", err)
	}

	if _, err := e.AnswerQuestion("Au"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	snap, err := e.AnswerQuestion("Au")
	if !errors.Is(err, domain.ErrAnswerRevealed) {
		t.Fatalf("double answer: expected ErrAnswerRevealed, got %v", err)
	}
	if snap.Score != 1 || snap.Streak != 1 {
		t.Fatalf("double answer must not double count, got score=%d streak=%d", snap.Score, snap.Streak)
	}

	snap, err = e.TimeUp()
	if !errors.Is(err, domain.ErrAnswerRevealed) {
		t.Fatalf("time up after reveal: expected ErrAnswerRevealed, got %v", err)
	}
	if snap.Streak != 1 || snap.ShowPunishment {
		t.Fatalf("time up after reveal must be a no-op, got %+v", snap)
	}

	if _, err := e.StartGame(nil, domain.ModeSolo); !errors.Is(err, domain.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}
	if _, err := e.StartGame(subject(t, "science"), domain.Mode("duel")); !errors.Is(err, domain.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := e.Results(); !errors.Is(err, domain.ErrGameNotFinished) {
		t.Fatalf("expected ErrGameNotFinished, got %v", err)
	}
}

func TestVisitsEveryQuestionOnceInOrder(t *testing.T) {
	for _, s := range catalog.Builtin() {
		s := s
		e := newTestEngine(t, domain.DefaultSettings())
		snap, err := e.StartGame(&s, domain.ModeSolo)
		if err != nil {
			t.Fatalf("%s: start: %v", s.ID, err)
		}

		var visited []string
		for i := 0; i < snap.TotalQuestions; i++ {
			visited = append(visited, mustCurrent(t, e).ID)
			if _, err := e.TimeUp(); err != nil {
				t.Fatalf("%s: time up: %v", s.ID, err)
			}
			if snap, err = e.NextQuestion(); err != nil {
				t.Fatalf("%s: next: %v", s.ID, err)
			}
		}

		if snap.IsPlaying {
			t.Fatalf("%s: expected finished after %d advances", s.ID, snap.TotalQuestions)
		}
		for i, q := range s.Questions {
			if visited[i] != q.ID {
				t.Fatalf("%s: visit order %v does not match catalog", s.ID, visited)
			}
		}
	}
}

func TestRandomActionsKeepInvariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	e := newTestEngine(t, domain.DefaultSettings())
	subjects := catalog.Builtin()

	for step := 0; step < 2000; step++ {
		var (
			snap domain.Snapshot
			op   string
		)
		switch rnd.Intn(8) {
		case 0:
			s := subjects[rnd.Intn(len(subjects))]
			op = "start"
			snap, _ = e.StartGame(&s, domain.ModeSolo)
		case 1:
			op = "right"
			before := e.Snapshot()
			q, ok := e.CurrentQuestion()
			if !ok {
				q.Answer = "x"
			}
			var err error
			snap, err = e.AnswerQuestion(q.Answer)
			if err == nil && snap.Streak != before.Streak+1 {
				t.Fatalf("step %d: streak should grow by one, %d -> %d", step, before.Streak, snap.Streak)
			}
		case 2:
			op = "wrong"
			var err error
			snap, err = e.AnswerQuestion("definitely wrong")
			if err == nil && snap.Streak != 0 {
				t.Fatalf("step %d: streak should reset, got %d", step, snap.Streak)
			}
		case 3:
			op = "timeup"
			var err error
			snap, err = e.TimeUp()
			if err == nil && snap.Streak != 0 {
				t.Fatalf("step %d: streak should reset on time up, got %d", step, snap.Streak)
			}
		case 4, 5:
			op = "next"
			snap, _ = e.NextQuestion()
		case 6:
			op = "tick"
			e.countdown.Tick()
			snap = e.Snapshot()
		default:
			op = "reset"
			snap = e.ResetGame()
		}

		if snap.Score < 0 || snap.Score > snap.TotalQuestions {
			t.Fatalf("step %d (%s): score %d outside [0,%d]", step, op, snap.Score, snap.TotalQuestions)
		}
		if snap.ShowPunishment && !snap.ShowAnswer {
			t.Fatalf("step %d (%s): punishment shown without answer", step, op)
		}
		if snap.IsPlaying && (snap.CurrentQuestionIndex < 0 || snap.CurrentQuestionIndex >= snap.TotalQuestions) {
			t.Fatalf("step %d (%s): index %d outside [0,%d)", step, op, snap.CurrentQuestionIndex, snap.TotalQuestions)
		}
	}
}

func TestDifficultyFilter(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Difficulty = domain.DifficultyHard
	e := newTestEngine(t, settings)

	snap, err := e.StartGame(subject(t, "science"), domain.ModeSolo)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.TotalQuestions != 1 || snap.CurrentQuestion.ID != "2" {
		t.Fatalf("expected only the hard question, got %+v", snap)
	}
}

func TestEmptyFilterFinishesImmediately(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Difficulty = domain.DifficultyHard
	e := newTestEngine(t, settings)

	snap, err := e.StartGame(subject(t, "pop-culture"), domain.ModeSolo)
	if !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if snap.TotalQuestions != 0 || snap.IsPlaying || snap.CurrentQuestion != nil || snap.Timer.Active {
		t.Fatalf("unexpected empty session snapshot: %+v", snap)
	}
	if _, ok := e.CurrentQuestion(); ok {
		t.Fatalf("expected no current question")
	}
	res, err := e.Results()
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if res.Total != 0 || res.Percentage != 0 || res.Grade != "D" {
		t.Fatalf("unexpected empty results: %+v", res)
	}
}

func TestIdleHasNoCurrentQuestion(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	if _, ok := e.CurrentQuestion(); ok {
		t.Fatalf("idle engine should have no current question")
	}
	snap := e.Snapshot()
	if snap.State != domain.StateIdle || snap.Subject != nil || snap.CurrentQuestion != nil {
		t.Fatalf("unexpected idle snapshot: %+v", snap)
	}
}

func TestResetGameClearsSession(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.AnswerQuestion("nope"); err != nil {
		t.Fatalf("answer: %v", err)
	}

	snap := e.ResetGame()
	if snap.State != domain.StateIdle || snap.Subject != nil || snap.Score != 0 || snap.Streak != 0 {
		t.Fatalf("unexpected reset snapshot: %+v", snap)
	}
	if snap.ShowAnswer || snap.ShowPunishment || snap.Punishment != "" {
		t.Fatalf("reset should clear flags and punishment: %+v", snap)
	}
	if snap.Timer.Active || snap.Timer.Remaining != 30 {
		t.Fatalf("reset should park the timer at the configured duration: %+v", snap.Timer)
	}
	if _, err := e.PlayAgain(); !errors.Is(err, domain.ErrNoActiveGame) {
		t.Fatalf("expected ErrNoActiveGame after reset, got %v", err)
	}
}

func TestPlayAgainRestartsSameSubject(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	first, err := e.StartGame(subject(t, "sports"), domain.ModeSocial)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.ReportAnswer(true); err != nil {
		t.Fatalf("report: %v", err)
	}

	snap, err := e.PlayAgain()
	if err != nil {
		t.Fatalf("play again: %v", err)
	}
	if snap.Subject.ID != "sports" || snap.Mode != domain.ModeSocial || snap.Score != 0 || snap.CurrentQuestionIndex != 0 {
		t.Fatalf("unexpected replay snapshot: %+v", snap)
	}
	if snap.SessionID == first.SessionID {
		t.Fatalf("replay should get a new session id")
	}
}

func TestSocialModeIsSelfReported(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	snap, err := e.StartGame(subject(t, "brain-rot"), domain.ModeSocial)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(snap.CurrentQuestion.Choices) != 0 {
		t.Fatalf("social mode should not expose choices")
	}

	if _, err := e.AnswerQuestion("Something weird or strange"); !errors.Is(err, domain.ErrModeMismatch) {
		t.Fatalf("expected ErrModeMismatch, got %v", err)
	}
	snap, err = e.ReportAnswer(true)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if snap.Score != 1 || snap.Streak != 1 || snap.ShowPunishment {
		t.Fatalf("unexpected snapshot after self-reported hit: %+v", snap)
	}

	if _, err := e.NextQuestion(); err != nil {
		t.Fatalf("next: %v", err)
	}
	snap, err = e.ReportAnswer(false)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if snap.Streak != 0 || !snap.ShowPunishment {
		t.Fatalf("unexpected snapshot after self-reported miss: %+v", snap)
	}
}

func TestSoloRejectsReport(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := e.ReportAnswer(true); !errors.Is(err, domain.ErrModeMismatch) {
		t.Fatalf("expected ErrModeMismatch, got %v", err)
	}
}

func TestAnswerComparisonIsExact(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap, err := e.AnswerQuestion("au")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if snap.LastCorrect || snap.Score != 0 {
		t.Fatalf("lower-case answer must not match, got %+v", snap)
	}
}

func TestAnswerKeyHiddenUntilReveal(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	snap, err := e.StartGame(subject(t, "american-history"), domain.ModeSolo)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.CurrentQuestion.Answer != "" || snap.CurrentQuestion.Explanation != "" {
		t.Fatalf("answer key leaked before reveal: %+v", snap.CurrentQuestion)
	}
	snap, _ = e.AnswerQuestion("1776")
	if snap.CurrentQuestion.Answer != "1776" || snap.CurrentQuestion.Explanation == "" {
		t.Fatalf("expected answer and explanation after reveal: %+v", snap.CurrentQuestion)
	}
}

func TestSettingsApplyToNextGame(t *testing.T) {
	e := newTestEngine(t, domain.DefaultSettings())
	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}

	next := domain.DefaultSettings()
	next.Difficulty = domain.DifficultyEasy
	next.TimerDuration = 10
	if err := e.UpdateSettings(next); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	if snap := e.Snapshot(); snap.TotalQuestions != 3 {
		t.Fatalf("running session must keep its question list, got %d", snap.TotalQuestions)
	}
	if _, err := e.TimeUp(); err != nil {
		t.Fatalf("time up: %v", err)
	}
	snap, err := e.NextQuestion()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if snap.Timer.Remaining != 30 {
		t.Fatalf("running session must keep its timer duration, got %d", snap.Timer.Remaining)
	}

	snap, err = e.PlayAgain()
	if err != nil {
		t.Fatalf("play again: %v", err)
	}
	if snap.TotalQuestions != 1 || snap.Timer.Remaining != 10 {
		t.Fatalf("new game should use new settings, got total=%d timer=%d", snap.TotalQuestions, snap.Timer.Remaining)
	}

	bad := next
	bad.TimerDuration = -1
	if err := e.UpdateSettings(bad); !errors.Is(err, domain.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestPauseAndResume(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.TimerDuration = 5
	e := newTestEngine(t, settings)
	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}

	e.countdown.Tick()
	e.countdown.Tick()
	snap, err := e.PauseTimer()
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if !snap.Timer.Paused || snap.Timer.Remaining != 3 {
		t.Fatalf("unexpected paused timer: %+v", snap.Timer)
	}
	e.countdown.Tick()
	if got := e.Snapshot().Timer.Remaining; got != 3 {
		t.Fatalf("paused timer should not move, got %d", got)
	}

	if _, err := e.ResumeTimer(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	e.countdown.Tick()
	if got := e.Snapshot().Timer.Remaining; got != 2 {
		t.Fatalf("resumed timer should tick, got %d", got)
	}

	if _, err := e.AnswerQuestion("Au"); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := e.PauseTimer(); !errors.Is(err, domain.ErrAnswerRevealed) {
		t.Fatalf("pause after reveal: expected ErrAnswerRevealed, got %v", err)
	}
}

func TestRealCountdownExpires(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.TimerDuration = 1
	e, err := New(settings, WithTimerOptions(timer.WithInterval(5*time.Millisecond)))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	if _, err := e.StartGame(subject(t, "science"), domain.ModeSolo); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := e.Snapshot(); snap.ShowPunishment {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("countdown never expired the question")
}

func newTestEngine(t *testing.T, settings domain.Settings, opts ...Option) *Engine {
	t.Helper()
	n := 0
	base := []Option{
		WithTimerOptions(timer.WithManualTicks()),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("session-%d", n)
		}),
	}
	e, err := New(settings, append(base, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func subject(t *testing.T, id string) *domain.Subject {
	t.Helper()
	for _, s := range catalog.Builtin() {
		if s.ID == id {
			s := s
			return &s
		}
	}
	t.Fatalf("subject %s not in builtin catalog", id)
	return nil
}

func mustCurrent(t *testing.T, e *Engine) domain.Question {
	t.Helper()
	q, ok := e.CurrentQuestion()
	if !ok {
		t.Fatalf("expected a current question")
	}
	return q
}
