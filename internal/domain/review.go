package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinRating      = 1
	MaxRating      = 5
	MaxTitleLength = 100
	MaxBodyLength  = 500
)

type Review struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	AuthorID     string    `json:"userId"`
	Username     string    `json:"username"`
	UserAvatar   *string   `json:"userAvatar,omitempty"`
	Rating       float64   `json:"rating"` // integer on submission; older blobs may carry fractions
	Title        string    `json:"title"`
	Body         string    `json:"comment"`
	HelpfulCount int       `json:"helpful"`
	CreatedAt    time.Time `json:"createdAt"`
	Verified     bool      `json:"verified"`
}

// ReviewDraft is the only accepted submission payload.
type ReviewDraft struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Body      string `json:"comment"`
}

// Normalize trims title and body the same way the submission form does.
func (d ReviewDraft) Normalize() ReviewDraft {
	d.ProductID = strings.TrimSpace(d.ProductID)
	d.Title = strings.TrimSpace(d.Title)
	d.Body = strings.TrimSpace(d.Body)
	return d
}

// Validate checks the rating first, then the text fields. It expects a normalized draft.
func (d ReviewDraft) Validate() error {
	if !ValidRating(d.Rating) {
		return ErrInvalidRating
	}
	if d.ProductID == "" {
		return &ValidationError{Field: "productId", Reason: "is required"}
	}
	if err := checkText("title", d.Title, MaxTitleLength); err != nil {
		return err
	}
	return checkText("comment", d.Body, MaxBodyLength)
}

func checkText(field, v string, max int) error {
	if v == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(v) > max {
		return &ValidationError{Field: field, Reason: "is too long"}
	}
	return nil
}

func ValidRating(r int) bool { return r >= MinRating && r <= MaxRating }

// User is the authenticated caller as exposed by the auth collaborator.
type User struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar,omitempty"`
}

// Voter identifies whoever casts a helpful vote for the lifetime of the process.
type Voter struct {
	ID string
}
