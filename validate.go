package sqlbind

import (
	"fmt"
	"strings"
)

// blockedKeywords are rejected as whole tokens, case-insensitively, in any
// raw expression text. The list covers data/definition-altering statements
// and execution/privilege escalation; SELECT itself stays permitted because
// raw fragments legitimately reference scalar subqueries.
var blockedKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "create",
	"truncate", "replace", "merge",
	"exec", "execute", "call", "grant", "revoke",
}

// ValidateIdentifier checks a bare SQL identifier: non-empty, letters,
// digits and underscores only, no leading digit.
func ValidateIdentifier(s string) error {
	if s == "" {
		return fmt.Errorf("identifier is empty")
	}
	first := s[0]
	if first >= '0' && first <= '9' {
		return fmt.Errorf("identifier %q starts with a digit", s)
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '_' {
			continue
		}
		return fmt.Errorf("identifier %q contains disallowed character %q", s, ch)
	}
	return nil
}

// ValidateExpression screens a raw SQL fragment before it is concatenated
// into statement text. It is permissive about structure but rejects
// statement terminators, comment markers, and blocked keywords as whole
// tokens. Every violated rule is reported, not just the first.
//
// This is a token-level heuristic, not a parser: it can over-block an
// identifier that happens to be a keyword and cannot catch every obfuscated
// payload. Bound values never pass through here.
func ValidateExpression(s string) error {
	if s == "" {
		return fmt.Errorf("expression is empty")
	}

	var violations []string
	if strings.Contains(s, ";") {
		violations = append(violations, "statement terminator ';'")
	}
	for _, marker := range []string{"--", "/*", "*/"} {
		if strings.Contains(s, marker) {
			violations = append(violations, fmt.Sprintf("comment marker %q", marker))
		}
	}
	for _, tok := range tokenize(s) {
		for _, kw := range blockedKeywords {
			if strings.EqualFold(tok, kw) {
				violations = append(violations, fmt.Sprintf("blocked keyword %q", tok))
			}
		}
	}

	if len(violations) > 0 {
		return fmt.Errorf("unsafe expression %q: %s", s, strings.Join(violations, ", "))
	}
	return nil
}

// validateRawText screens raw condition text after masking the positional
// value markers, so that the markers themselves never trip the check.
func validateRawText(s string) error {
	return ValidateExpression(strings.ReplaceAll(s, "?", " "))
}

// tokenize splits a fragment into identifier-shaped tokens. Everything that
// is not a letter, digit or underscore is a separator, so "1;DROP" and
// "1; DROP" produce the same token stream.
func tokenize(s string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(s); i++ {
		ch := s[i]
		word := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '_'
		if word {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, s[start:i])
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// mustIdentifier panics on an invalid identifier. Constructors use it so
// that a bad name fails at the call site, in keeping with the T/Col/With
// panic-on-misuse contract.
func mustIdentifier(s string) {
	if err := ValidateIdentifier(s); err != nil {
		panic(fmt.Errorf("sqlbind: %w", err))
	}
}

// mustExpression panics on unsafe raw expression text.
func mustExpression(s string) {
	if err := ValidateExpression(s); err != nil {
		panic(fmt.Errorf("sqlbind: %w", err))
	}
}
