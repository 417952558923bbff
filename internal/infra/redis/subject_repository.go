package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"trivia-party/internal/domain"
)

// SubjectLoader fetches the question bank from a backing store (file, Postgres).
type SubjectLoader interface {
	LoadSubject(ctx context.Context, subjectID string) (domain.Subject, error)
	LoadSubjects(ctx context.Context) ([]domain.Subject, error)
}

// SubjectRepository caches subjects in Redis and falls back to a loader on miss.
// Subjects are stored as:   SET trivia:subject:{subjectID} {json}
// Catalog order is kept as: RPUSH trivia:subjects {subjectID}...
type SubjectRepository struct {
	client *redis.Client
	loader SubjectLoader
	ttl    time.Duration
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewSubjectRepository(client *redis.Client, loader SubjectLoader, ttl time.Duration) *SubjectRepository {
	return &SubjectRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *SubjectRepository) GetSubject(ctx context.Context, subjectID string) (domain.Subject, error) {
	if subject, ok := r.readSubject(ctx, subjectID); ok {
		return subject, nil
	}

	result, err, _ := r.sf.Do("subject:"+subjectID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if subject, ok := r.readSubject(ctx, subjectID); ok {
			return subject, nil
		}

		subject, err := r.loader.LoadSubject(ctx, subjectID)
		if err != nil {
			return domain.Subject{}, err
		}
		data, err := json.Marshal(subject)
		if err != nil {
			return domain.Subject{}, fmt.Errorf("marshal subject: %w", err)
		}
		_ = r.client.Set(ctx, r.subjectKey(subjectID), data, r.ttlWithJitter()).Err()
		return subject, nil
	})
	if err != nil {
		return domain.Subject{}, err
	}
	return result.(domain.Subject), nil
}

func (r *SubjectRepository) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	if subjects, ok := r.readList(ctx); ok {
		return subjects, nil
	}

	result, err, _ := r.sf.Do("list", func() (interface{}, error) {
		if subjects, ok := r.readList(ctx); ok {
			return subjects, nil
		}

		subjects, err := r.loader.LoadSubjects(ctx)
		if err != nil {
			return nil, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.TxPipeline()
		pipe.Del(ctx, r.listKey())
		for _, s := range subjects {
			data, err := json.Marshal(s)
			if err != nil {
				return nil, fmt.Errorf("marshal subject %s: %w", s.ID, err)
			}
			pipe.Set(ctx, r.subjectKey(s.ID), data, ttl)
			pipe.RPush(ctx, r.listKey(), s.ID)
		}
		if ttl > 0 {
			pipe.Expire(ctx, r.listKey(), ttl)
		}
		_, _ = pipe.Exec(ctx)

		return subjects, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Subject), nil
}

func (r *SubjectRepository) readSubject(ctx context.Context, subjectID string) (domain.Subject, bool) {
	data, err := r.client.Get(ctx, r.subjectKey(subjectID)).Bytes()
	if err != nil {
		return domain.Subject{}, false
	}
	var subject domain.Subject
	if err := json.Unmarshal(data, &subject); err != nil {
		return domain.Subject{}, false
	}
	return subject, true
}

// readList only succeeds when the order list and every subject it names are cached.
func (r *SubjectRepository) readList(ctx context.Context) ([]domain.Subject, bool) {
	ids, err := r.client.LRange(ctx, r.listKey(), 0, -1).Result()
	if err != nil || len(ids) == 0 {
		return nil, false
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.subjectKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, false
	}

	subjects := make([]domain.Subject, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			return nil, false
		}
		var subject domain.Subject
		if err := json.Unmarshal([]byte(raw), &subject); err != nil {
			return nil, false
		}
		subjects = append(subjects, subject)
	}
	return subjects, true
}

func (r *SubjectRepository) subjectKey(subjectID string) string {
	return "trivia:subject:" + subjectID
}

func (r *SubjectRepository) listKey() string {
	return "trivia:subjects"
}

func (r *SubjectRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
