// Package sql provides SQL safety checks for user-supplied search input.
package sql

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult contains the result of an injection check on a
// search term.
type InjectionCheckResult struct {
	IsSQLi      bool   // True if SQL injection pattern detected
	Fingerprint string // libinjection fingerprint of the detected pattern
	Term        string // The term that failed the check
}

// CheckTermForInjection uses libinjection to detect SQL injection patterns
// in a single search term.
//
// Search terms are always bound as query parameters, so an injection-shaped
// term cannot alter statement text. The check is advisory: it lets callers
// log and audit suspicious phrases without rejecting them.
//
// Returns nil if no injection pattern is detected.
func CheckTermForInjection(term string) *InjectionCheckResult {
	isSQLi, fingerprint := libinjection.IsSQLi(term)
	if isSQLi {
		return &InjectionCheckResult{
			IsSQLi:      true,
			Fingerprint: string(fingerprint),
			Term:        term,
		}
	}

	return nil
}

// AuditSearchTerms checks every term of a tokenized search phrase.
//
// Returns one InjectionCheckResult per suspicious term, or an empty slice
// when the phrase is clean.
func AuditSearchTerms(terms []string) []*InjectionCheckResult {
	var results []*InjectionCheckResult
	for _, term := range terms {
		if result := CheckTermForInjection(term); result != nil {
			results = append(results, result)
		}
	}
	return results
}
