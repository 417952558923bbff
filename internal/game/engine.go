// Package game drives a single trivia session: subject and mode selection,
// the question loop with its countdown, and the final results.
package game

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trivia-party/internal/domain"
	"trivia-party/internal/punishment"
	"trivia-party/internal/timer"
)

// Picker supplies punishment phrases.
type Picker interface {
	Pick() string
}

// Engine is the progression state machine for one session at a time. It owns
// the countdown: starting or advancing a question starts the clock, any
// reveal stops it, and the clock reaching zero counts as a missed answer.
//
// Every method is safe for concurrent use. Actions attempted from the wrong
// state leave the session untouched and return a domain error.
type Engine struct {
	mu        sync.Mutex
	settings  domain.Settings
	picker    Picker
	logger    *zap.Logger
	newID     func() string
	timerOpts []timer.Option
	countdown *timer.Countdown

	session session
	version uint64
}

type session struct {
	id        string
	subject   *domain.Subject
	questions []domain.Question
	settings  domain.Settings
	mode      domain.Mode
	state     domain.State
	index     int

	score      int
	streak     int
	bestStreak int

	punished    bool
	punishment  string
	lastAnswer  string
	lastCorrect bool

	timerRun uint64
}

func idleSession() session {
	return session{state: domain.StateIdle, mode: domain.ModeSolo}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPicker replaces the default punishment list.
func WithPicker(p Picker) Option {
	return func(e *Engine) {
		if p != nil {
			e.picker = p
		}
	}
}

// WithTimerOptions passes options to the owned countdown.
func WithTimerOptions(opts ...timer.Option) Option {
	return func(e *Engine) { e.timerOpts = append(e.timerOpts, opts...) }
}

// WithIDGenerator overrides how session IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// New builds an idle engine.
func New(settings domain.Settings, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		settings: settings,
		logger:   zap.NewNop(),
		newID:    func() string { return uuid.NewString() },
		session:  idleSession(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.picker == nil {
		e.picker = punishment.MustDefault()
	}
	e.countdown = timer.New(settings.TimerDuration, e.onTimerZero, e.timerOpts...)
	return e, nil
}

// Settings returns the settings the next game will start with.
func (e *Engine) Settings() domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// UpdateSettings validates and stores new settings. A game in progress keeps
// the settings it started with.
func (e *Engine) UpdateSettings(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = settings
	e.logger.Debug("settings updated",
		zap.Int("timer_duration", settings.TimerDuration),
		zap.String("difficulty", string(settings.Difficulty)))
	return nil
}

// StartGame begins a new session on subject. The question list is the
// subject filtered by the configured difficulty and is fixed until the next
// start. An empty list yields a finished session and ErrNoQuestions.
func (e *Engine) StartGame(subject *domain.Subject, mode domain.Mode) (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if subject == nil {
		return e.rejectLocked("start", domain.ErrSubjectNotFound)
	}
	if _, err := domain.ParseMode(string(mode)); err != nil {
		return e.rejectLocked("start", err)
	}
	return e.startLocked(subject, mode)
}

// PlayAgain restarts the last subject and mode from the first question.
func (e *Engine) PlayAgain() (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session.subject == nil {
		return e.rejectLocked("play_again", domain.ErrNoActiveGame)
	}
	return e.startLocked(e.session.subject, e.session.mode)
}

func (e *Engine) startLocked(subject *domain.Subject, mode domain.Mode) (domain.Snapshot, error) {
	e.countdown.Stop()
	e.session = session{
		id:        e.newID(),
		subject:   subject,
		questions: subject.Filter(e.settings.Difficulty),
		settings:  e.settings,
		mode:      mode,
	}
	e.version++

	if len(e.session.questions) == 0 {
		e.session.state = domain.StateFinished
		e.session.timerRun = e.countdown.Reset(e.session.settings.TimerDuration)
		e.logger.Warn("no questions for difficulty",
			zap.String("session_id", e.session.id),
			zap.String("subject", subject.ID),
			zap.String("difficulty", string(e.session.settings.Difficulty)))
		return e.snapshotLocked(), domain.ErrNoQuestions
	}

	e.session.state = domain.StateAwaitingAnswer
	e.startClockLocked()
	e.logger.Debug("game started",
		zap.String("session_id", e.session.id),
		zap.String("subject", subject.ID),
		zap.String("mode", string(mode)),
		zap.Int("total_questions", len(e.session.questions)))
	return e.snapshotLocked(), nil
}

// AnswerQuestion submits a solo-mode answer. It is correct when it equals the
// answer key exactly; no case folding or trimming is applied.
func (e *Engine) AnswerQuestion(answer string) (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.awaitingLocked(); err != nil {
		return e.rejectLocked("answer", err)
	}
	if e.session.mode != domain.ModeSolo {
		return e.rejectLocked("answer", domain.ErrModeMismatch)
	}
	q := e.session.questions[e.session.index]
	e.revealLocked(answer, answer == q.Answer)
	return e.snapshotLocked(), nil
}

// ReportAnswer records a self-reported social-mode result.
func (e *Engine) ReportAnswer(correct bool) (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.awaitingLocked(); err != nil {
		return e.rejectLocked("report", err)
	}
	if e.session.mode != domain.ModeSocial {
		return e.rejectLocked("report", domain.ErrModeMismatch)
	}
	e.revealLocked("", correct)
	return e.snapshotLocked(), nil
}

// TimeUp resolves the current question as missed.
func (e *Engine) TimeUp() (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.awaitingLocked(); err != nil {
		return e.rejectLocked("time_up", err)
	}
	e.revealLocked("", false)
	return e.snapshotLocked(), nil
}

// onTimerZero ignores runs that belong to an earlier question.
func (e *Engine) onTimerZero(run uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if run != e.session.timerRun || e.session.state != domain.StateAwaitingAnswer {
		e.logger.Debug("stale timer expiry ignored",
			zap.String("session_id", e.session.id),
			zap.Uint64("run", run))
		return
	}
	e.revealLocked("", false)
}

// NextQuestion advances after a reveal. Past the last question the session
// finishes and the current question stays where it was.
func (e *Engine) NextQuestion() (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.session.state {
	case domain.StateAnswerRevealed:
	case domain.StateAwaitingAnswer:
		return e.rejectLocked("next", domain.ErrAnswerNotRevealed)
	default:
		return e.rejectLocked("next", domain.ErrNotPlaying)
	}

	e.clearRevealLocked()
	e.version++

	next := e.session.index + 1
	if next >= len(e.session.questions) {
		e.session.state = domain.StateFinished
		e.countdown.Stop()
		e.logger.Debug("game finished",
			zap.String("session_id", e.session.id),
			zap.Int("score", e.session.score),
			zap.Int("total_questions", len(e.session.questions)))
		return e.snapshotLocked(), nil
	}

	e.session.index = next
	e.session.state = domain.StateAwaitingAnswer
	e.startClockLocked()
	return e.snapshotLocked(), nil
}

// PauseTimer suspends the countdown while a question is open.
func (e *Engine) PauseTimer() (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.awaitingLocked(); err != nil {
		return e.rejectLocked("pause", err)
	}
	e.countdown.Pause()
	e.version++
	return e.snapshotLocked(), nil
}

// ResumeTimer continues a paused countdown.
func (e *Engine) ResumeTimer() (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.awaitingLocked(); err != nil {
		return e.rejectLocked("resume", err)
	}
	e.countdown.Resume()
	e.version++
	return e.snapshotLocked(), nil
}

// ResetGame returns to idle and drops any pending punishment.
func (e *Engine) ResetGame() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.countdown.Stop()
	e.session = idleSession()
	e.session.timerRun = e.countdown.Reset(e.settings.TimerDuration)
	e.version++
	return e.snapshotLocked()
}

// CurrentQuestion returns the question on screen, or false while idle or
// when the session has no questions.
func (e *Engine) CurrentQuestion() (domain.Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session
	if s.state == domain.StateIdle || s.index >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.index], true
}

// Snapshot returns the current read model.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Results summarizes a finished session.
func (e *Engine) Results() (domain.Results, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.session
	if s.state != domain.StateFinished {
		return domain.Results{}, domain.ErrGameNotFinished
	}
	return Summarize(s.subject.Name, s.mode, s.score, len(s.questions), s.bestStreak), nil
}

// Close stops the countdown so no expiry fires after the session is gone.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.countdown.Stop()
	e.session.timerRun = 0
}

func (e *Engine) awaitingLocked() error {
	switch e.session.state {
	case domain.StateAwaitingAnswer:
		return nil
	case domain.StateAnswerRevealed:
		return domain.ErrAnswerRevealed
	default:
		return domain.ErrNotPlaying
	}
}

func (e *Engine) startClockLocked() {
	e.session.timerRun = e.countdown.Reset(e.session.settings.TimerDuration)
	e.countdown.Start()
}

func (e *Engine) revealLocked(answer string, correct bool) {
	e.countdown.Stop()
	s := &e.session
	s.state = domain.StateAnswerRevealed
	s.lastAnswer = answer
	s.lastCorrect = correct
	if correct {
		s.score++
		s.streak++
		if s.streak > s.bestStreak {
			s.bestStreak = s.streak
		}
	} else {
		s.streak = 0
		s.punished = true
		s.punishment = e.picker.Pick()
	}
	e.version++
	e.logger.Debug("answer revealed",
		zap.String("session_id", s.id),
		zap.Int("index", s.index),
		zap.Bool("correct", correct),
		zap.Int("score", s.score),
		zap.Int("streak", s.streak))
}

func (e *Engine) clearRevealLocked() {
	s := &e.session
	s.punished = false
	s.punishment = ""
	s.lastAnswer = ""
	s.lastCorrect = false
}

func (e *Engine) rejectLocked(op string, err error) (domain.Snapshot, error) {
	e.logger.Warn("game action rejected",
		zap.String("op", op),
		zap.String("session_id", e.session.id),
		zap.String("state", string(e.session.state)),
		zap.Error(err))
	return e.snapshotLocked(), err
}

func (e *Engine) snapshotLocked() domain.Snapshot {
	s := e.session
	ts := e.countdown.State()
	revealed := s.state == domain.StateAnswerRevealed

	snap := domain.Snapshot{
		SessionID:            s.id,
		Version:              e.version,
		State:                s.state,
		Mode:                 s.mode,
		CurrentQuestionIndex: s.index,
		TotalQuestions:       len(s.questions),
		Score:                s.score,
		Streak:               s.streak,
		IsPlaying:            s.state == domain.StateAwaitingAnswer || revealed,
		ShowAnswer:           revealed,
		ShowPunishment:       revealed && s.punished,
		LastAnswer:           s.lastAnswer,
		LastCorrect:          s.lastCorrect,
		Timer: domain.TimerState{
			Remaining: ts.Remaining,
			Total:     ts.Total,
			Active:    ts.Active,
			Paused:    ts.Paused,
			Progress:  ts.Progress,
		},
	}
	if snap.ShowPunishment {
		snap.Punishment = s.punishment
	}
	if s.subject != nil {
		summary := s.subject.Summary()
		snap.Subject = &summary
	}
	if s.state != domain.StateIdle && s.index < len(s.questions) {
		q := s.questions[s.index]
		view := &domain.QuestionView{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Choices:    append([]string(nil), q.Choices...),
			Difficulty: q.Difficulty,
		}
		if s.mode == domain.ModeSocial {
			view.Choices = nil
		}
		if s.state != domain.StateAwaitingAnswer {
			view.Answer = q.Answer
			view.Explanation = q.Explanation
		}
		snap.CurrentQuestion = view
		snap.Progress = float64(s.index+1) / float64(len(s.questions))
	}
	return snap
}
