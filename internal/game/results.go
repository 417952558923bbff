package game

import (
	"math"

	"trivia-party/internal/domain"
)

type gradeBand struct {
	min     int
	grade   string
	message string
}

var gradeBands = []gradeBand{
	{90, "A+", "Outstanding!"},
	{80, "A", "Excellent!"},
	{70, "B", "Great job!"},
	{60, "C", "Good effort!"},
}

// Grade maps a percentage to a letter grade and a message.
func Grade(percentage int) (string, string) {
	for _, b := range gradeBands {
		if percentage >= b.min {
			return b.grade, b.message
		}
	}
	return "D", "Keep practicing!"
}

// Summarize builds the results of a session. The percentage is rounded to
// the nearest integer and is 0 for an empty session.
func Summarize(subjectName string, mode domain.Mode, score, total, bestStreak int) domain.Results {
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(float64(score) * 100 / float64(total)))
	}
	grade, message := Grade(percentage)
	return domain.Results{
		SubjectName: subjectName,
		Mode:        mode,
		Score:       score,
		Total:       total,
		Percentage:  percentage,
		Grade:       grade,
		Message:     message,
		BestStreak:  bestStreak,
	}
}
