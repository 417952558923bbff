package app

import (
	"context"

	"go.uber.org/zap"

	"trivia-party/internal/domain"
	"trivia-party/internal/game"
)

// SubjectRepository abstracts where the question bank comes from (memory, Redis, etc).
type SubjectRepository interface {
	GetSubject(ctx context.Context, subjectID string) (domain.Subject, error)
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
}

// GameService wires the question bank to game engines.
type GameService struct {
	subjects   SubjectRepository
	settings   domain.Settings
	logger     *zap.Logger
	engineOpts []game.Option
}

func NewGameService(subjects SubjectRepository, settings domain.Settings, logger *zap.Logger, opts ...game.Option) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		subjects:   subjects,
		settings:   settings,
		logger:     logger,
		engineOpts: opts,
	}
}

// Subjects lists the catalog in order with question counts.
func (s *GameService) Subjects(ctx context.Context) ([]domain.SubjectSummary, error) {
	subjects, err := s.subjects.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SubjectSummary, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, subject.Summary())
	}
	return out, nil
}

// Subject returns one subject by ID.
func (s *GameService) Subject(ctx context.Context, subjectID string) (domain.Subject, error) {
	return s.subjects.GetSubject(ctx, subjectID)
}

// NewEngine returns an idle engine with the service's settings. The caller
// owns it and must Close it.
func (s *GameService) NewEngine() (*game.Engine, error) {
	opts := append([]game.Option{game.WithLogger(s.logger)}, s.engineOpts...)
	return game.New(s.settings, opts...)
}

// StartGame looks up subjectID and starts it on engine.
func (s *GameService) StartGame(ctx context.Context, engine *game.Engine, subjectID string, mode domain.Mode) (domain.Snapshot, error) {
	subject, err := s.subjects.GetSubject(ctx, subjectID)
	if err != nil {
		s.logger.Warn("subject lookup failed", zap.String("subject", subjectID), zap.Error(err))
		return engine.Snapshot(), err
	}
	return engine.StartGame(&subject, mode)
}
