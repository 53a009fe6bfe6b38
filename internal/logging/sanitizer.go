package logging

import (
	"regexp"
)

// Sanitizer redacts access tokens from log messages. Fetch errors can echo
// request headers, so everything that reaches a handler passes through here.
type Sanitizer struct {
	patterns []*regexp.Regexp
	redacted string
}

// NewSanitizer creates a sanitizer with default patterns.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: defaultPatterns(),
		redacted: "[REDACTED]",
	}
}

func defaultPatterns() []*regexp.Regexp {
	patterns := []string{
		// GitHub PAT / OAuth / App tokens
		`ghp_[A-Za-z0-9]{36}`,
		`gho_[A-Za-z0-9]{36}`,
		`ghu_[A-Za-z0-9]{36}`,
		`ghs_[A-Za-z0-9]{36}`,
		`github_pat_[A-Za-z0-9_]{22,}`,
		// GitLab PAT
		`glpat-[A-Za-z0-9_-]{20,}`,
		// Bearer headers
		`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`,
		// git credential-helper output
		`(?i)password=[^\s]+`,
		// Generic tokens
		`(?i)token["'\s:=]+[a-zA-Z0-9_-]{20,}`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Sanitize redacts sensitive information from a string.
func (s *Sanitizer) Sanitize(input string) string {
	result := input
	for _, pattern := range s.patterns {
		result = pattern.ReplaceAllString(result, s.redacted)
	}
	return result
}

// AddPattern adds a custom pattern.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, re)
	return nil
}
