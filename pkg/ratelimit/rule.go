package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var periods = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
}

// Rule allows Limit requests per fixed Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// String renders the rule in the "N/period" form accepted by ParseRule.
func (r Rule) String() string {
	for name, d := range periods {
		if d == r.Window {
			return fmt.Sprintf("%d/%s", r.Limit, name)
		}
	}
	return fmt.Sprintf("%d/%s", r.Limit, r.Window)
}

// ParseRule parses "50/hour", "200 per day", or "10/30s" into a Rule.
func ParseRule(s string) (Rule, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	count, period, ok := strings.Cut(s, "/")
	if !ok {
		count, period, ok = strings.Cut(s, " per ")
	}
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}

	limit, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || limit < 1 {
		return Rule{}, fmt.Errorf("%w: invalid count in %q", ErrInvalidRule, s)
	}

	period = strings.TrimSpace(period)
	window, known := periods[strings.TrimSuffix(period, "s")]
	if !known {
		window, err = time.ParseDuration(period)
		if err != nil || window <= 0 {
			return Rule{}, fmt.Errorf("%w: invalid period in %q", ErrInvalidRule, s)
		}
	}

	return Rule{Limit: limit, Window: window}, nil
}

// ParseRules parses each entry with ParseRule.
func ParseRules(specs []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		rule, err := ParseRule(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
