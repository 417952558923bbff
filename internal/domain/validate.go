package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		q := sl.Current().Interface().(Question)
		if len(q.Choices) > 0 && !q.HasChoice(q.Answer) {
			sl.ReportError(q.Answer, "Answer", "answer", "in_choices", "")
		}
	}, Question{})
	return v
}

// Validate checks the settings ranges.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// ValidateSubjects checks every subject and question, and that subject IDs
// are unique and question IDs are unique within their subject.
func ValidateSubjects(subjects []Subject) error {
	seen := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("%w: subject %q: %v", ErrInvalidCatalog, s.ID, err)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate subject %q", ErrInvalidCatalog, s.ID)
		}
		seen[s.ID] = struct{}{}

		questionIDs := make(map[string]struct{}, len(s.Questions))
		for _, q := range s.Questions {
			if _, dup := questionIDs[q.ID]; dup {
				return fmt.Errorf("%w: subject %q: duplicate question %q", ErrInvalidCatalog, s.ID, q.ID)
			}
			questionIDs[q.ID] = struct{}{}
		}
	}
	return nil
}
