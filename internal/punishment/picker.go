// Package punishment picks the forfeit shown after a wrong or missed answer.
package punishment

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrNoPhrases is returned when a picker is built from an empty list.
var ErrNoPhrases = errors.New("punishment list is empty")

// Picker draws phrases uniformly at random. The same phrase may come up
// twice in a row.
type Picker struct {
	phrases []string

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPicker copies phrases and seeds from the clock.
func NewPicker(phrases []string) (*Picker, error) {
	return NewPickerWithSource(phrases, rand.NewSource(time.Now().UnixNano()))
}

// NewPickerWithSource is for deterministic draws in tests.
func NewPickerWithSource(phrases []string, src rand.Source) (*Picker, error) {
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}
	return &Picker{
		phrases: append([]string(nil), phrases...),
		rnd:     rand.New(src),
	}, nil
}

// Pick returns one phrase.
func (p *Picker) Pick() string {
	p.mu.Lock()
	i := p.rnd.Intn(len(p.phrases))
	p.mu.Unlock()
	return p.phrases[i]
}

// Phrases returns a copy of the list.
func (p *Picker) Phrases() []string {
	return append([]string(nil), p.phrases...)
}

// Contains reports whether phrase is on the list.
func (p *Picker) Contains(phrase string) bool {
	for _, ph := range p.phrases {
		if ph == phrase {
			return true
		}
	}
	return false
}

// MustDefault returns a picker over Default.
func MustDefault() *Picker {
	p, err := NewPicker(Default)
	if err != nil {
		panic(err)
	}
	return p
}
