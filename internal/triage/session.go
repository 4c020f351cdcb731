// Package triage holds the one-card-at-a-time accept/reject workflow over a
// list of candidate activities.
package triage

import (
	"fmt"
	"strings"

	"voya/internal/models/db_models"
)

type Direction int

const (
	Reject Direction = iota
	Accept
)

func (d Direction) String() string {
	if d == Accept {
		return "accept"
	}
	return "reject"
}

// ParseDirection understands accept/right/like and reject/left/dislike.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept", "right", "like", "liked":
		return Accept, nil
	case "reject", "left", "dislike", "disliked":
		return Reject, nil
	}
	return Reject, fmt.Errorf("unknown direction %q", s)
}

// Session partitions candidates into liked and disliked in order. Once the
// cursor reaches the end of the candidates it is terminal and Decide does
// nothing.
//
// A Session is not safe for concurrent use.
type Session struct {
	candidates []db_models.Activity
	cursor     int
	liked      []db_models.Activity
	disliked   []db_models.Activity
}

func NewSession(candidates []db_models.Activity) *Session {
	cp := make([]db_models.Activity, len(candidates))
	copy(cp, candidates)
	return &Session{
		candidates: cp,
		liked:      []db_models.Activity{},
		disliked:   []db_models.Activity{},
	}
}

// Current returns the activity awaiting a decision.
func (s *Session) Current() (db_models.Activity, bool) {
	if s.Done() {
		return db_models.Activity{}, false
	}
	return s.candidates[s.cursor], true
}

// Decide files the current activity and advances. It reports false when the
// session was already terminal.
func (s *Session) Decide(d Direction) bool {
	if s.Done() {
		return false
	}
	activity := s.candidates[s.cursor]
	if d == Accept {
		s.liked = append(s.liked, activity)
	} else {
		s.disliked = append(s.disliked, activity)
	}
	s.cursor++
	return true
}

func (s *Session) Done() bool {
	return s.cursor >= len(s.candidates)
}

func (s *Session) Cursor() int {
	return s.cursor
}

func (s *Session) Total() int {
	return len(s.candidates)
}

func (s *Session) Remaining() int {
	return len(s.candidates) - s.cursor
}

func (s *Session) Liked() []db_models.Activity {
	out := make([]db_models.Activity, len(s.liked))
	copy(out, s.liked)
	return out
}

func (s *Session) Disliked() []db_models.Activity {
	out := make([]db_models.Activity, len(s.disliked))
	copy(out, s.disliked)
	return out
}
