// Package glyph holds the symbols used to mark task state in listings.
package glyph

import (
	"fmt"
	"time"

	"tableflip.dev/studyplan/pkg/model"
)

type Glyph struct {
	Symbol  string
	Meaning string
	// Marker glyphs decorate a task next to its state glyph.
	Marker bool
}

func (g Glyph) String() string {
	return g.Symbol
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

type State int

const (
	Open State = iota
	Completed
	Overdue
	DueSoon
	GoalOpen
	GoalComplete
)

type Marker int

const (
	HighPriority Marker = iota
	LowPriority
	Reminder
	None
)

var states = []Glyph{
	Open:         {Symbol: "●", Meaning: "open task"},
	Completed:    {Symbol: "✘", Meaning: "task completed"},
	Overdue:      {Symbol: "!", Meaning: "task overdue"},
	DueSoon:      {Symbol: "◔", Meaning: "task due within the hour"},
	GoalOpen:     {Symbol: "○", Meaning: "goal in progress"},
	GoalComplete: {Symbol: "◉", Meaning: "goal reached"},
}

var markers = []Glyph{
	HighPriority: {Symbol: "✷", Meaning: "high priority", Marker: true},
	LowPriority:  {Symbol: "·", Meaning: "low priority", Marker: true},
	Reminder:     {Symbol: "⏰", Meaning: "own reminder lead", Marker: true},
	None:         {Symbol: " ", Meaning: "none", Marker: true},
}

// States lists the state glyphs in display order.
func States() []Glyph {
	out := make([]Glyph, len(states))
	copy(out, states)
	return out
}

// Markers lists the marker glyphs in display order, without None.
func Markers() []Glyph {
	out := make([]Glyph, len(markers)-1)
	copy(out, markers[:None])
	return out
}

func (s State) Glyph() Glyph {
	return states[s]
}

func (s State) String() string {
	return s.Glyph().String()
}

func (m Marker) Glyph() Glyph {
	return markers[m]
}

func (m Marker) String() string {
	return m.Glyph().String()
}

// ForTask picks the state glyph of t at now. Overdue wins over due soon.
func ForTask(t model.Task, now time.Time) State {
	switch {
	case t.Completed:
		return Completed
	case t.IsOverdue(now):
		return Overdue
	case t.IsDueSoon(now):
		return DueSoon
	}
	return Open
}

// ForPriority maps a priority to its marker; med has none.
func ForPriority(p model.Priority) Marker {
	switch p {
	case model.PriorityHigh:
		return HighPriority
	case model.PriorityLow:
		return LowPriority
	}
	return None
}
