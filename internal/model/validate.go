package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// twitterTextLimit is the maximum text length for a twitter post.
const twitterTextLimit = 280

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidatePost checks a Post for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the post is valid.
func ValidatePost(p *Post) error {
	var ve ValidationError

	if p.Owner == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "owner", Message: "is required"})
	}

	if !p.Platform.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "platform",
			Message: fmt.Sprintf("invalid value %q", p.Platform),
		})
	}

	if !p.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", p.Status),
		})
	}

	// A scheduled post must carry a scheduled time.
	if p.Status == StatusScheduled && p.ScheduledAt == nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "scheduled_at", Message: "is required when status is scheduled"})
	}

	text := strings.TrimSpace(p.Content.Text)
	if text == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "content.text", Message: "is required"})
	}

	switch p.Platform {
	case PlatformTwitter:
		if n := utf8.RuneCountInString(text); n > twitterTextLimit {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "content.text",
				Message: fmt.Sprintf("must be %d characters or fewer for twitter, got %d", twitterTextLimit, n),
			})
		}
	case PlatformReddit:
		if strings.TrimSpace(p.Content.Title) == "" {
			ve.Errors = append(ve.Errors, FieldError{Field: "content.title", Message: "is required for reddit"})
		}
		if strings.TrimSpace(p.Content.Subreddit) == "" {
			ve.Errors = append(ve.Errors, FieldError{Field: "content.subreddit", Message: "is required for reddit"})
		}
	case PlatformLinkedIn:
		if v := p.Content.Visibility; v != "" && v != "public" && v != "connections" {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "content.visibility",
				Message: fmt.Sprintf("must be public or connections, got %q", v),
			})
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateCampaign checks a Campaign for constraint violations.
func ValidateCampaign(c *Campaign) error {
	var ve ValidationError
	if c.Owner == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "owner", Message: "is required"})
	}
	if strings.TrimSpace(c.Name) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "name", Message: "is required"})
	}
	if c.StartsAt != nil && c.EndsAt != nil && c.EndsAt.Before(*c.StartsAt) {
		ve.Errors = append(ve.Errors, FieldError{Field: "ends_at", Message: "must not be before starts_at"})
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateBlogDraft checks a BlogDraft for constraint violations.
func ValidateBlogDraft(d *BlogDraft) error {
	var ve ValidationError
	if d.Owner == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "owner", Message: "is required"})
	}
	if strings.TrimSpace(d.Title) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}
