package file

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"trivia-party/internal/domain"
)

type catalogFile struct {
	Subjects []domain.Subject `yaml:"subjects"`
}

// SubjectLoader reads a YAML catalog of the form:
//
//	subjects:
//	  - id: science
//	    name: Science
//	    questions:
//	      - id: "1"
//	        prompt: ...
//
// The file is read on every call; wrap it in a caching repository.
type SubjectLoader struct {
	path string
}

func NewSubjectLoader(path string) *SubjectLoader {
	return &SubjectLoader{path: path}
}

func (l *SubjectLoader) LoadSubject(ctx context.Context, subjectID string) (domain.Subject, error) {
	subjects, err := l.LoadSubjects(ctx)
	if err != nil {
		return domain.Subject{}, err
	}
	for _, s := range subjects {
		if s.ID == subjectID {
			return s, nil
		}
	}
	return domain.Subject{}, domain.ErrSubjectNotFound
}

func (l *SubjectLoader) LoadSubjects(_ context.Context) ([]domain.Subject, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) ([]domain.Subject, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	if err := domain.ValidateSubjects(f.Subjects); err != nil {
		return nil, err
	}
	return f.Subjects, nil
}
