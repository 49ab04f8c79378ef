package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the storage format of CalendarItem.Date.
const DateLayout = "2006-01-02"

type CalendarItem struct {
	ID          int64     `db:"id" json:"id"`
	ProjectID   int64     `db:"project_id" json:"project_id"`
	Date        string    `db:"date" json:"date"`
	Platform    Platform  `db:"platform" json:"platform"`
	ContentType string    `db:"content_type" json:"content_type"`
	Topic       string    `db:"topic" json:"topic"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Platform string

const (
	PlatformTwitter   Platform = "Twitter"   // social short-form
	PlatformLinkedIn  Platform = "LinkedIn"  // social professional
	PlatformBlog      Platform = "Blog"      // long-form
	PlatformInstagram Platform = "Instagram" // social visual
)

var Platforms = []Platform{PlatformTwitter, PlatformLinkedIn, PlatformBlog, PlatformInstagram}

var ErrUnknownPlatform = errors.New("unknown platform")

func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// DefaultContentType is used when an item is created without one.
func (p Platform) DefaultContentType() string {
	switch p {
	case PlatformTwitter:
		return "Thread"
	case PlatformLinkedIn:
		return "Post"
	case PlatformBlog:
		return "Article"
	case PlatformInstagram:
		return "Carousel"
	}
	return "Post"
}
