// Package prompts implements the prompt vault domain: anonymous prompts
// protected by per-prompt modification codes, with read-only curated
// entries loaded by the seeder.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field limits, counted in characters.
const (
	MaxTitleLength    = 150
	MaxTextLength     = 20000
	MaxUsernameLength = 80
	MaxResponseLength = 10000
)

// Prompt is a stored prompt. ModificationCode is never serialized.
type Prompt struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Text             string    `json:"text"`
	Username         *string   `json:"username"`
	Response         *string   `json:"response"`
	ModificationCode string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	ReadOnly         bool      `json:"read_only"`
}

// Created is the create response: the prompt plus its modification code,
// which is returned only this once.
type Created struct {
	Prompt
	ModificationCode string `json:"modification_code"`
}

// NewPrompt is a validated prompt ready for insertion.
type NewPrompt struct {
	Title            string
	Text             string
	Username         *string
	ModificationCode string
	ReadOnly         bool
}

// CreateCommand carries the data needed to create a prompt.
type CreateCommand struct {
	Title    string  `json:"title"`
	Text     string  `json:"text"`
	Username *string `json:"username"`
}

// UpdateCommand carries the mutable fields of a prompt. Title and Text are
// ignored when absent, null, or blank. Response distinguishes absent from null.
// BodyErr holds a body decoding failure, reported only once the caller is
// authorized to modify the prompt.
type UpdateCommand struct {
	Title    *string        `json:"title"`
	Text     *string        `json:"text"`
	Response OptionalString `json:"response"`
	BodyErr  error          `json:"-"`
}

// BatchRequest lists prompt ids to fetch in one call.
type BatchRequest struct {
	IDs []string `json:"ids"`
}

// OptionalString is a JSON string field that records whether it was present
// and whether it was null.
type OptionalString struct {
	Set   bool
	Valid bool
	Value string
}

// UnmarshalJSON accepts a string or null.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		o.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: response must be a string or null", ErrValidation)
	}

	o.Valid = true
	o.Value = s
	return nil
}

func (c CreateCommand) validate() (NewPrompt, error) {
	title := strings.TrimSpace(c.Title)
	text := strings.TrimSpace(c.Text)

	if title == "" || text == "" {
		return NewPrompt{}, fmt.Errorf("%w: title and text cannot be empty", ErrValidation)
	}
	if err := checkLength("title", title, MaxTitleLength); err != nil {
		return NewPrompt{}, err
	}
	if err := checkLength("text", text, MaxTextLength); err != nil {
		return NewPrompt{}, err
	}

	np := NewPrompt{Title: title, Text: text}

	if c.Username != nil {
		if username := strings.TrimSpace(*c.Username); username != "" {
			if err := checkLength("username", username, MaxUsernameLength); err != nil {
				return NewPrompt{}, err
			}
			np.Username = &username
		}
	}

	return np, nil
}

// apply returns p with the command's changes and whether anything changed.
func (c UpdateCommand) apply(p Prompt) (Prompt, bool, error) {
	if c.BodyErr != nil {
		return p, false, c.BodyErr
	}

	changed := false

	if c.Title != nil {
		if title := strings.TrimSpace(*c.Title); title != "" && title != p.Title {
			if err := checkLength("title", title, MaxTitleLength); err != nil {
				return p, false, err
			}
			p.Title = title
			changed = true
		}
	}

	if c.Text != nil {
		if text := strings.TrimSpace(*c.Text); text != "" && text != p.Text {
			if err := checkLength("text", text, MaxTextLength); err != nil {
				return p, false, err
			}
			p.Text = text
			changed = true
		}
	}

	if c.Response.Set {
		var next *string
		if c.Response.Valid {
			response := strings.TrimSpace(c.Response.Value)
			if err := checkLength("response", response, MaxResponseLength); err != nil {
				return p, false, err
			}
			next = &response
		}
		if !equalOptional(next, p.Response) {
			p.Response = next
			changed = true
		}
	}

	return p, changed, nil
}

func checkLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s cannot exceed %d characters", ErrValidation, field, limit)
	}
	return nil
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
