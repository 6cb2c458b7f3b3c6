package prompts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CodeLength is the number of characters in a modification code.
const CodeLength = 8

// DefaultCodeAttempts bounds code generation when no limit is configured.
const DefaultCodeAttempts = 5

// Codes generates modification codes that are unique across stored prompts.
type Codes struct {
	attempts int
	generate func() string
}

// NewCodes creates a code generator that gives up after attempts collisions.
// A nil generate uses NewCode.
func NewCodes(attempts int, generate func() string) *Codes {
	if attempts < 1 {
		attempts = DefaultCodeAttempts
	}
	if generate == nil {
		generate = NewCode
	}
	return &Codes{attempts: attempts, generate: generate}
}

// Attempts returns the collision limit.
func (c *Codes) Attempts() int {
	return c.attempts
}

// Next returns a code for which exists reports false.
func (c *Codes) Next(ctx context.Context, exists func(context.Context, string) (bool, error)) (string, error) {
	for range c.attempts {
		code := c.generate()

		taken, err := exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrExhaustedRetries, c.attempts)
}

// NewCode returns the first CodeLength characters of a random UUID.
func NewCode() string {
	return uuid.NewString()[:CodeLength]
}
