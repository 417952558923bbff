package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trivia-party/internal/domain"
)

const sampleCatalog = `
subjects:
  - id: geography
    name: Geography
    questions:
      - id: "1"
        prompt: What is the capital of Australia?
        answer: Canberra
        choices: [Sydney, Canberra, Melbourne, Perth]
        difficulty: medium
      - id: "2"
        prompt: Which river flows through Cairo?
        answer: Nile
        difficulty: easy
        explanation: The Nile runs north through Egypt to the Mediterranean.
  - id: music
    name: Music
    questions:
      - id: "1"
        prompt: How many keys does a standard piano have?
        answer: "88"
        difficulty: hard
`

func TestLoadSubjectsFromYAML(t *testing.T) {
	loader := NewSubjectLoader(writeCatalog(t, sampleCatalog))

	subjects, err := loader.LoadSubjects(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(subjects) != 2 || subjects[0].ID != "geography" || subjects[1].ID != "music" {
		t.Fatalf("unexpected subjects: %+v", subjects)
	}
	q := subjects[0].Questions[1]
	if q.Answer != "Nile" || len(q.Choices) != 0 || q.Explanation == "" {
		t.Fatalf("unexpected question: %+v", q)
	}
	if subjects[1].Questions[0].Answer != "88" {
		t.Fatalf("expected quoted answer kept as string, got %q", subjects[1].Questions[0].Answer)
	}

	music, err := loader.LoadSubject(context.Background(), "music")
	if err != nil {
		t.Fatalf("load subject: %v", err)
	}
	if music.Questions[0].Difficulty != domain.DifficultyHard {
		t.Fatalf("unexpected difficulty %q", music.Questions[0].Difficulty)
	}
	if _, err := loader.LoadSubject(context.Background(), "art"); !errors.Is(err, domain.ErrSubjectNotFound) {
		t.Fatalf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestLoadSubjectsRejectsInvalidCatalog(t *testing.T) {
	bad := `
subjects:
  - id: geography
    name: Geography
    questions:
      - id: "1"
        prompt: What is the capital of Australia?
        answer: Canberra
        choices: [Sydney, Melbourne]
        difficulty: medium
`
	loader := NewSubjectLoader(writeCatalog(t, bad))
	if _, err := loader.LoadSubjects(context.Background()); !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}

	if _, err := Parse([]byte("subjects: [")); !errors.Is(err, domain.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog for malformed yaml, got %v", err)
	}
}

func TestLoadSubjectsMissingFile(t *testing.T) {
	loader := NewSubjectLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := loader.LoadSubjects(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
