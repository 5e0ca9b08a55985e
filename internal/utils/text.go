package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var turkishLower = cases.Lower(language.Turkish)

// NormalizeName collapses whitespace and lowercases with Turkish casing
// rules (dotted/dotless i), so "ACME Ltd" and "acme ltd " dedupe to the
// same customer.
func NormalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return turkishLower.String(name)
}
