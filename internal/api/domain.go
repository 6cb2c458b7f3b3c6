package api

import (
	"github.com/JaimeStill/promptvault/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts prompts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	promptsSystem := prompts.New(
		prompts.NewRepository(runtime.Database.Connection()),
		prompts.NewCodes(runtime.CodeAttempts, nil),
		runtime.Logger,
		runtime.MaxBatchSize,
	)

	return &Domain{
		Prompts: promptsSystem,
	}
}
