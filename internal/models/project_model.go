package models

import (
	"errors"
	"fmt"
	"time"
)

type Project struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Niche     string    `db:"niche" json:"niche"`
	Audience  string    `db:"audience" json:"audience"`
	Tone      Tone      `db:"tone" json:"tone"`
	Goals     string    `db:"goals" json:"goals"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Tone string

const (
	ToneProfessional  Tone = "Professional"
	ToneWitty         Tone = "Witty"
	ToneInspirational Tone = "Inspirational"
	ToneCasual        Tone = "Casual"
)

var Tones = []Tone{ToneProfessional, ToneWitty, ToneInspirational, ToneCasual}

var ErrUnknownTone = errors.New("unknown tone")

func ParseTone(s string) (Tone, error) {
	for _, t := range Tones {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTone, s)
}
