package services

import (
	"fmt"
	"strings"

	"github.com/dash-inc/dash-engine/pkg/models"
	"github.com/dash-inc/dash-engine/pkg/search"
)

// Candidate source fields per profile attribute, in priority order. The
// first present-and-non-empty value wins. These names come from the ERP
// schemas this tool is pointed at; unknown schemas simply fall through to
// the defaults.
var (
	nameFields  = []string{"Contact", "Attention", "Name"}
	titleFields = []string{"Position", "Title"}
	emailFields = []string{"EmailAddress", "EMail_Address", "Email"}
	phoneFields = []string{"PhoneNumber", "Phone", "MobilePhone"}
)

// maxContactValues caps how many distinct emails and phones are reported.
const maxContactValues = 2

// ExtractProfile builds a structured profile from aggregated evidence
// using key-name heuristics. The name, title, and company come from the
// first record of the first matched table; contact fields are merged
// across all sampled records. summary is the model-written introduction.
func ExtractProfile(result *search.AggregateResult, summary string) *models.EntityProfile {
	if len(result.Matches) == 0 {
		return models.NotFoundProfile()
	}

	first := result.Matches[0].SampledRecords[0]

	tableNames := make([]string, len(result.Matches))
	for i, m := range result.Matches {
		tableNames[i] = m.TableName
	}

	return &models.EntityProfile{
		Name:         extractName(first),
		RoleTitle:    firstNonEmpty(first, titleFields, models.DefaultRoleTitle),
		Company:      firstNonEmpty(first, []string{"CustomerName"}, models.DefaultCompany),
		ContactInfo:  extractContactInfo(result),
		Relationship: fmt.Sprintf("Found in %d system(s)", len(result.Matches)),
		Summary:      summary,
		DataSources:  tableNames,
	}
}

// extractName prefers a FirstName+LastName pair, then falls through the
// single-field candidates.
func extractName(record search.Record) string {
	firstName := stringValue(record["FirstName"])
	lastName := stringValue(record["LastName"])
	if firstName != "" || lastName != "" {
		return strings.TrimSpace(firstName + " " + lastName)
	}

	return firstNonEmpty(record, nameFields, models.DefaultName)
}

// extractContactInfo merges unique emails and phones across every sampled
// record, in record order, keeping the first maxContactValues of each.
func extractContactInfo(result *search.AggregateResult) string {
	var emails, phones []string
	for _, record := range result.Records() {
		if email := firstNonEmpty(record, emailFields, ""); email != "" {
			emails = appendUnique(emails, email)
		}
		if phone := firstNonEmpty(record, phoneFields, ""); phone != "" {
			phones = appendUnique(phones, phone)
		}
	}

	return fmt.Sprintf("Email: %s, Phone: %s",
		joinOrDefault(emails), joinOrDefault(phones))
}

func joinOrDefault(values []string) string {
	if len(values) == 0 {
		return models.DefaultContact
	}
	if len(values) > maxContactValues {
		values = values[:maxContactValues]
	}
	return strings.Join(values, ", ")
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}

// firstNonEmpty returns the first non-empty value among the candidate
// fields, or fallback when none is present.
func firstNonEmpty(record search.Record, fields []string, fallback string) string {
	for _, field := range fields {
		if v := stringValue(record[field]); v != "" {
			return v
		}
	}
	return fallback
}

// stringValue renders a record value as a string. Non-string driver values
// (numbers, times) are formatted with fmt; nil yields "".
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
