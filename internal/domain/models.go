package domain

// Difficulty tags a single question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	// DifficultyMixed is only meaningful as a filter: it keeps every question.
	DifficultyMixed Difficulty = "mixed"
)

// Mode is how a game is played.
type Mode string

const (
	// ModeSolo is single-player multiple choice; the engine checks answers.
	ModeSolo Mode = "solo"
	// ModeSocial is the group "shout it out" mode; results are self-reported.
	ModeSocial Mode = "social"
)

// ParseMode maps a raw mode string to a Mode.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeSolo, ModeSocial:
		return Mode(raw), nil
	}
	return "", ErrUnknownMode
}

// Question is immutable once loaded.
type Question struct {
	ID          string     `json:"id" yaml:"id" validate:"required"`
	Prompt      string     `json:"prompt" yaml:"prompt" validate:"required"`
	Answer      string     `json:"answer" yaml:"answer" validate:"required"`
	Choices     []string   `json:"choices,omitempty" yaml:"choices,omitempty" validate:"omitempty,min=2,dive,required"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty" validate:"required,oneof=easy medium hard"`
	Explanation string     `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// HasChoice reports whether answer is one of the question's choices.
func (q Question) HasChoice(answer string) bool {
	for _, c := range q.Choices {
		if c == answer {
			return true
		}
	}
	return false
}

// Subject is a named, ordered list of questions.
type Subject struct {
	ID        string     `json:"id" yaml:"id" validate:"required"`
	Name      string     `json:"name" yaml:"name" validate:"required"`
	Questions []Question `json:"questions" yaml:"questions" validate:"dive"`
}

// Filter returns the questions matching difficulty, in catalog order.
// DifficultyMixed (or empty) keeps all of them. The result never aliases
// the subject's own slice.
func (s Subject) Filter(difficulty Difficulty) []Question {
	out := make([]Question, 0, len(s.Questions))
	for _, q := range s.Questions {
		if difficulty == DifficultyMixed || difficulty == "" || q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out
}

// SubjectSummary is the listing view of a subject.
type SubjectSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"questionCount"`
}

// Summary builds the listing view.
func (s Subject) Summary() SubjectSummary {
	return SubjectSummary{ID: s.ID, Name: s.Name, QuestionCount: len(s.Questions)}
}

// Settings configure a game. Sound, music and dark mode are cosmetic and do
// not affect the engine.
type Settings struct {
	TimerDuration int        `json:"timerDuration" validate:"min=1"`
	Difficulty    Difficulty `json:"difficulty" validate:"oneof=easy medium hard mixed"`
	SoundEnabled  bool       `json:"soundEnabled"`
	MusicEnabled  bool       `json:"musicEnabled"`
	DarkMode      bool       `json:"darkMode"`
}

// DefaultSettings mirrors the out-of-the-box game configuration.
func DefaultSettings() Settings {
	return Settings{
		TimerDuration: 30,
		Difficulty:    DifficultyMixed,
		SoundEnabled:  true,
		MusicEnabled:  true,
	}
}

// State is the progression state of a game session.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingAnswer State = "awaiting_answer"
	StateAnswerRevealed State = "answer_revealed"
	StateFinished       State = "finished"
)

// QuestionView is what a view layer may see of a question. Answer and
// Explanation stay empty until the answer is revealed.
type QuestionView struct {
	ID          string     `json:"id"`
	Prompt      string     `json:"prompt"`
	Choices     []string   `json:"choices,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Answer      string     `json:"answer,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
}

// TimerState is the countdown as seen by a view layer.
type TimerState struct {
	Remaining int     `json:"remaining"`
	Total     int     `json:"total"`
	Active    bool    `json:"active"`
	Paused    bool    `json:"paused"`
	Progress  float64 `json:"progress"`
}

// Snapshot is a read-only projection of a game session.
type Snapshot struct {
	SessionID            string          `json:"sessionId,omitempty"`
	Version              uint64          `json:"version"`
	State                State           `json:"state"`
	Subject              *SubjectSummary `json:"subject,omitempty"`
	Mode                 Mode            `json:"mode"`
	CurrentQuestion      *QuestionView   `json:"currentQuestion,omitempty"`
	CurrentQuestionIndex int             `json:"currentQuestionIndex"`
	TotalQuestions       int             `json:"totalQuestions"`
	Score                int             `json:"score"`
	Streak               int             `json:"streak"`
	IsPlaying            bool            `json:"isPlaying"`
	ShowAnswer           bool            `json:"showAnswer"`
	ShowPunishment       bool            `json:"showPunishment"`
	Punishment           string          `json:"punishment,omitempty"`
	LastAnswer           string          `json:"lastAnswer,omitempty"`
	LastCorrect          bool            `json:"lastCorrect"`
	Progress             float64         `json:"progress"`
	Timer                TimerState      `json:"timer"`
}

// Results summarize a finished game.
type Results struct {
	SubjectName string `json:"subjectName"`
	Mode        Mode   `json:"mode"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	Percentage  int    `json:"percentage"`
	Grade       string `json:"grade"`
	Message     string `json:"message"`
	BestStreak  int    `json:"bestStreak"`
}
