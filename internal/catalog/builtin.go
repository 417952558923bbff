package catalog

import "trivia-party/internal/domain"

// Builtin returns the question bank that ships with the game.
func Builtin() []domain.Subject {
	return []domain.Subject{
		{
			ID:   "american-history",
			Name: "American History",
			Questions: []domain.Question{
				{
					ID:          "1",
					Prompt:      "What year was the Declaration of Independence signed?",
					Answer:      "1776",
					Choices:     []string{"1775", "1776", "1777", "1778"},
					Difficulty:  domain.DifficultyMedium,
					Explanation: "The Declaration of Independence was signed on July 4, 1776.",
				},
				{
					ID:         "2",
					Prompt:     "Who was the first President of the United States?",
					Answer:     "George Washington",
					Choices:    []string{"Thomas Jefferson", "John Adams", "George Washington", "Benjamin Franklin"},
					Difficulty: domain.DifficultyEasy,
				},
				{
					ID:         "3",
					Prompt:     "Which war was fought from 1861 to 1865?",
					Answer:     "Civil War",
					Choices:    []string{"Revolutionary War", "War of 1812", "Civil War", "Spanish-American War"},
					Difficulty: domain.DifficultyMedium,
				},
			},
		},
		{
			ID:   "pop-culture",
			Name: "Pop Culture",
			Questions: []domain.Question{
				{
					ID:         "1",
					Prompt:     "Which social media app is known for short-form videos?",
					Answer:     "TikTok",
					Choices:    []string{"Instagram", "TikTok", "Snapchat", "Twitter"},
					Difficulty: domain.DifficultyEasy,
				},
				{
					ID:         "2",
					Prompt:     "What does 'no cap' mean in Gen Z slang?",
					Answer:     "No lie/being honest",
					Choices:    []string{"No hat", "No limit", "No lie/being honest", "No problem"},
					Difficulty: domain.DifficultyMedium,
				},
				{
					ID:         "3",
					Prompt:     "Which artist released the album 'Midnights' in 2022?",
					Answer:     "Taylor Swift",
					Choices:    []string{"Ariana Grande", "Taylor Swift", "Billie Eilish", "Dua Lipa"},
					Difficulty: domain.DifficultyEasy,
				},
			},
		},
		{
			ID:   "sports",
			Name: "Sports",
			Questions: []domain.Question{
				{
					ID:         "1",
					Prompt:     "How many players are on a basketball team on the court at once?",
					Answer:     "5",
					Choices:    []string{"4", "5", "6", "7"},
					Difficulty: domain.DifficultyEasy,
				},
				{
					ID:         "2",
					Prompt:     "Which country won the 2022 FIFA World Cup?",
					Answer:     "Argentina",
					Choices:    []string{"Brazil", "France", "Argentina", "Germany"},
					Difficulty: domain.DifficultyMedium,
				},
				{
					ID:         "3",
					Prompt:     "In which sport would you perform a slam dunk?",
					Answer:     "Basketball",
					Choices:    []string{"Volleyball", "Tennis", "Basketball", "Badminton"},
					Difficulty: domain.DifficultyEasy,
				},
			},
		},
		{
			ID:   "science",
			Name: "Science",
			Questions: []domain.Question{
				{
					ID:         "1",
					Prompt:     "What is the chemical symbol for gold?",
					Answer:     "Au",
					Choices:    []string{"Go", "Au", "Ag", "Al"},
					Difficulty: domain.DifficultyMedium,
				},
				{
					ID:         "2",
					Prompt:     "How many bones are in an adult human body?",
					Answer:     "206",
					Choices:    []string{"196", "206", "216", "226"},
					Difficulty: domain.DifficultyHard,
				},
				{
					ID:         "3",
					Prompt:     "What planet is known as the 'Red Planet'?",
					Answer:     "Mars",
					Choices:    []string{"Venus", "Mars", "Jupiter", "Saturn"},
					Difficulty: domain.DifficultyEasy,
				},
			},
		},
		{
			ID:   "movies",
			Name: "Movies",
			Questions: []domain.Question{
				{
					ID:         "1",
					Prompt:     "Which movie won the Academy Award for Best Picture in 2023?",
					Answer:     "Everything Everywhere All at Once",
					Choices:    []string{"Top Gun: Maverick", "Everything Everywhere All at Once", "The Banshees of Inisherin", "Avatar: The Way of Water"},
					Difficulty: domain.DifficultyMedium,
				},
				{
					ID:         "2",
					Prompt:     "Who directed the movie 'Inception'?",
					Answer:     "Christopher Nolan",
					Choices:    []string{"Steven Spielberg", "Christopher Nolan", "Martin Scorsese", "Quentin Tarantino"},
					Difficulty: domain.DifficultyMedium,
				},
				{
					ID:         "3",
					Prompt:     "In which movie franchise would you find the character 'Luke Skywalker'?",
					Answer:     "Star Wars",
					Choices:    []string{"Star Trek", "Star Wars", "Guardians of the Galaxy", "Interstellar"},
					Difficulty: domain.DifficultyEasy,
				},
			},
		},
		{
			ID:   "brain-rot",
			Name: "Brain Rot TikTok",
			Questions: []domain.Question{
				{
					ID:         "1",
					Prompt:     "What does 'Ohio' mean in Gen Alpha slang?",
					Answer:     "Something weird or strange",
					Choices:    []string{"Cool", "Bad", "Something weird or strange", "Good"},
					Difficulty: domain.DifficultyMedium,
				},
				{
					ID:         "2",
					Prompt:     "Complete the phrase: 'Only in...'",
					Answer:     "Ohio",
					Choices:    []string{"America", "Ohio", "TikTok", "2023"},
					Difficulty: domain.DifficultyEasy,
				},
				{
					ID:         "3",
					Prompt:     "What does 'sigma' represent in internet culture?",
					Answer:     "Alpha male/dominant personality",
					Choices:    []string{"Smart person", "Alpha male/dominant personality", "Weird person", "Popular person"},
					Difficulty: domain.DifficultyMedium,
				},
			},
		},
	}
}
