// Package domain defines the core review entities and their lifecycle rules.
package domain

import "time"

// Status is the moderation state of a review.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusHidden   Status = "hidden"
	StatusRemoved  Status = "removed"
)

// ValidStatus reports whether s is one of the known review statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusHidden, StatusRemoved:
		return true
	}
	return false
}

// CanTransition reports whether a review may move from one status to another.
// Only pending reviews are actionable; once moderated, a review never returns
// to the queue.
func CanTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	switch to {
	case StatusApproved, StatusHidden, StatusRemoved:
		return true
	}
	return false
}

// Review is a visitor-submitted review of the agency's work.
type Review struct {
	ID            string    `json:"id"`
	CountryCode   string    `json:"country_code"`
	Category      string    `json:"category"`
	Rating        int       `json:"rating"`
	Title         string    `json:"title"`
	Comment       string    `json:"comment"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	DisplayName   string    `json:"display_name"`
	ReviewerEmail string    `json:"reviewer_email,omitempty"`
	Image         string    `json:"image,omitempty"`
}

// ReviewDraft is the unvalidated input for a new review submission.
type ReviewDraft struct {
	CountryCode   string
	Category      string
	Rating        int
	Title         string
	Comment       string
	DisplayName   string
	ReviewerEmail string
}
