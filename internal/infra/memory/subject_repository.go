package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-party/internal/domain"
)

// SubjectLoader fetches the question bank from a backing store (file, Postgres).
type SubjectLoader interface {
	LoadSubject(ctx context.Context, subjectID string) (domain.Subject, error)
	LoadSubjects(ctx context.Context) ([]domain.Subject, error)
}

// SubjectRepository caches subjects with TTL to avoid repeated loads.
type SubjectRepository struct {
	loader SubjectLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu       sync.RWMutex
	subjects map[string]cachedSubject
	list     cachedList
}

type cachedSubject struct {
	subject   domain.Subject
	expiresAt time.Time
}

type cachedList struct {
	subjects  []domain.Subject
	expiresAt time.Time
}

func NewSubjectRepository(loader SubjectLoader, ttl time.Duration) *SubjectRepository {
	return &SubjectRepository{
		loader:   loader,
		ttl:      ttl,
		clock:    time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		subjects: make(map[string]cachedSubject),
	}
}

func (r *SubjectRepository) GetSubject(ctx context.Context, subjectID string) (domain.Subject, error) {
	if subject, ok := r.cachedSubject(subjectID); ok {
		return subject, nil
	}

	result, err, _ := r.sf.Do("subject:"+subjectID, func() (interface{}, error) {
		if subject, ok := r.cachedSubject(subjectID); ok {
			return subject, nil
		}

		subject, err := r.loader.LoadSubject(ctx, subjectID)
		if err != nil {
			return domain.Subject{}, err
		}

		r.mu.Lock()
		r.subjects[subjectID] = cachedSubject{
			subject:   subject,
			expiresAt: r.clock().Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return subject, nil
	})
	if err != nil {
		return domain.Subject{}, err
	}
	return result.(domain.Subject), nil
}

func (r *SubjectRepository) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	if subjects, ok := r.cachedList(); ok {
		return subjects, nil
	}

	result, err, _ := r.sf.Do("list", func() (interface{}, error) {
		if subjects, ok := r.cachedList(); ok {
			return subjects, nil
		}

		subjects, err := r.loader.LoadSubjects(ctx)
		if err != nil {
			return nil, err
		}

		expiresAt := r.clock().Add(r.ttlWithJitter())
		r.mu.Lock()
		r.list = cachedList{subjects: subjects, expiresAt: expiresAt}
		for _, s := range subjects {
			r.subjects[s.ID] = cachedSubject{subject: s, expiresAt: expiresAt}
		}
		r.mu.Unlock()
		return subjects, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Subject), nil
}

func (r *SubjectRepository) cachedSubject(subjectID string) (domain.Subject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.subjects[subjectID]
	if !ok || !entry.expiresAt.After(r.clock()) {
		return domain.Subject{}, false
	}
	return entry.subject, true
}

func (r *SubjectRepository) cachedList() ([]domain.Subject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.list.subjects == nil || !r.list.expiresAt.After(r.clock()) {
		return nil, false
	}
	return r.list.subjects, true
}

func (r *SubjectRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticSubjectLoader serves a fixed, ordered catalog (the built-in bank, tests).
type StaticSubjectLoader struct {
	subjects []domain.Subject
}

func NewStaticSubjectLoader(subjects []domain.Subject) *StaticSubjectLoader {
	return &StaticSubjectLoader{subjects: subjects}
}

func (l *StaticSubjectLoader) LoadSubject(_ context.Context, subjectID string) (domain.Subject, error) {
	for _, s := range l.subjects {
		if s.ID == subjectID {
			return s, nil
		}
	}
	return domain.Subject{}, domain.ErrSubjectNotFound
}

func (l *StaticSubjectLoader) LoadSubjects(_ context.Context) ([]domain.Subject, error) {
	return append([]domain.Subject(nil), l.subjects...), nil
}
