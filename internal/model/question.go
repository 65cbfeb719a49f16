package model

import (
	"fmt"
	"time"
)

// Question is a tagged union over RoundType. Only the fields belonging to
// the question's type are populated; Validate enforces the shape once at
// ingestion so the round engines never re-check field presence.
type Question struct {
	ID   string    `json:"id" bson:"_id,omitempty"`
	Type RoundType `json:"type" bson:"type"`

	// open-deur
	Hints   []string `json:"hints,omitempty" bson:"hints,omitempty"`
	Options []string `json:"options,omitempty" bson:"options,omitempty"`

	// open-deur, puzzel (legacy), woordzoeker
	Answer string `json:"answer,omitempty" bson:"answer,omitempty"`

	// puzzel
	Answer1     string   `json:"answer1,omitempty" bson:"answer1,omitempty"`
	Answer2     string   `json:"answer2,omitempty" bson:"answer2,omitempty"`
	Answer3     string   `json:"answer3,omitempty" bson:"answer3,omitempty"`
	WordOptions []string `json:"wordOptions,omitempty" bson:"wordOptions,omitempty"`

	// woordzoeker
	Question string `json:"question,omitempty" bson:"question,omitempty"`

	// wat-weet-u
	Subject     string   `json:"subject,omitempty" bson:"subject,omitempty"`
	Facts       []string `json:"facts,omitempty" bson:"facts,omitempty"`
	FactOptions []string `json:"factOptions,omitempty" bson:"factOptions,omitempty"`

	// collectief-geheugen
	Category    string   `json:"category,omitempty" bson:"category,omitempty"`
	Answers     []string `json:"answers,omitempty" bson:"answers,omitempty"`
	ItemOptions []string `json:"itemOptions,omitempty" bson:"itemOptions,omitempty"`

	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// PuzzelAnswers returns the three puzzel answers as a slice
func (q *Question) PuzzelAnswers() []string {
	return []string{q.Answer1, q.Answer2, q.Answer3}
}

// Validate checks that all fields required for the question's type are
// present. Malformed questions are filtered out before play, never shown.
func (q *Question) Validate() error {
	switch q.Type {
	case RoundOpenDeur:
		if len(q.Hints) == 0 {
			return fmt.Errorf("open-deur question needs hints")
		}
		if q.Answer == "" {
			return fmt.Errorf("open-deur question needs an answer")
		}
	case RoundPuzzel:
		if q.Answer1 == "" || q.Answer2 == "" || q.Answer3 == "" {
			return fmt.Errorf("puzzel question needs answer1, answer2 and answer3")
		}
		if len(q.WordOptions) > 0 && !containsAll(q.WordOptions, q.PuzzelAnswers()) {
			return fmt.Errorf("puzzel wordOptions must include all three answers")
		}
	case RoundWoordzoeker:
		if q.Question == "" {
			return fmt.Errorf("woordzoeker question needs a clue")
		}
		if q.Answer == "" {
			return fmt.Errorf("woordzoeker question needs an answer")
		}
	case RoundWatWeetU:
		if q.Subject == "" {
			return fmt.Errorf("wat-weet-u question needs a subject")
		}
		if len(q.Facts) == 0 {
			return fmt.Errorf("wat-weet-u question needs facts")
		}
	case RoundCollectiefGeheugen:
		if q.Category == "" {
			return fmt.Errorf("collectief-geheugen question needs a category")
		}
		if len(q.Answers) == 0 {
			return fmt.Errorf("collectief-geheugen question needs answers")
		}
	default:
		return fmt.Errorf("unknown round type %q", q.Type)
	}
	return nil
}

func containsAll(haystack, needles []string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
