package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dash-inc/dash-engine/pkg/models"
	"github.com/dash-inc/dash-engine/pkg/search"
)

func singleTableResult(records ...search.Record) *search.AggregateResult {
	return &search.AggregateResult{
		Matches: []search.TableMatch{
			{TableName: "Contacts", TotalCount: int64(len(records)), SampledRecords: records},
		},
	}
}

func TestExtractProfileNamePriority(t *testing.T) {
	tests := []struct {
		name     string
		record   search.Record
		expected string
	}{
		{
			name:     "first and last name combined",
			record:   search.Record{"FirstName": "Linda", "LastName": "Smith"},
			expected: "Linda Smith",
		},
		{
			name:     "first name only still used",
			record:   search.Record{"FirstName": "Linda"},
			expected: "Linda",
		},
		{
			name:     "split name beats contact field",
			record:   search.Record{"FirstName": "Linda", "LastName": "Smith", "Contact": "Someone Else"},
			expected: "Linda Smith",
		},
		{
			name:     "contact field",
			record:   search.Record{"Contact": "Mark Elinski"},
			expected: "Mark Elinski",
		},
		{
			name:     "attention before name",
			record:   search.Record{"Attention": "Mark Elinski", "Name": "Acme Corp"},
			expected: "Mark Elinski",
		},
		{
			name:     "name field last resort",
			record:   search.Record{"Name": "Acme Corp"},
			expected: "Acme Corp",
		},
		{
			name:     "no candidates yields default",
			record:   search.Record{"City": "Berlin"},
			expected: models.DefaultName,
		},
		{
			name:     "empty values skipped",
			record:   search.Record{"Contact": "", "Name": "Acme Corp"},
			expected: "Acme Corp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ExtractProfile(singleTableResult(tt.record), "summary")
			assert.Equal(t, tt.expected, profile.Name)
		})
	}
}

func TestExtractProfileTitleAndCompany(t *testing.T) {
	profile := ExtractProfile(singleTableResult(search.Record{
		"FirstName":    "Linda",
		"Position":     "Sales Manager",
		"Title":        "Ms",
		"CustomerName": "Acme Corp",
	}), "summary")

	assert.Equal(t, "Sales Manager", profile.RoleTitle, "Position outranks Title")
	assert.Equal(t, "Acme Corp", profile.Company)

	profile = ExtractProfile(singleTableResult(search.Record{"FirstName": "Linda"}), "summary")
	assert.Equal(t, models.DefaultRoleTitle, profile.RoleTitle)
	assert.Equal(t, models.DefaultCompany, profile.Company)
}

func TestExtractProfileContactInfo(t *testing.T) {
	t.Run("merged across tables with dedup and cap", func(t *testing.T) {
		result := &search.AggregateResult{
			Matches: []search.TableMatch{
				{
					TableName: "Contacts",
					SampledRecords: []search.Record{
						{"EmailAddress": "linda@acme.com", "PhoneNumber": "555-0100"},
						{"EmailAddress": "linda@acme.com", "Phone": "555-0101"},
					},
				},
				{
					TableName: "Customers",
					SampledRecords: []search.Record{
						{"Email": "l.smith@acme.com", "MobilePhone": "555-0102"},
						{"Email": "third@acme.com"},
					},
				},
			},
		}

		profile := ExtractProfile(result, "summary")

		assert.Equal(t, "Email: linda@acme.com, l.smith@acme.com, Phone: 555-0100, 555-0101", profile.ContactInfo)
	})

	t.Run("defaults when nothing found", func(t *testing.T) {
		profile := ExtractProfile(singleTableResult(search.Record{"FirstName": "Linda"}), "summary")
		assert.Equal(t, "Email: N/A, Phone: N/A", profile.ContactInfo)
	})

	t.Run("email field priority within a record", func(t *testing.T) {
		profile := ExtractProfile(singleTableResult(search.Record{
			"Email":        "low@acme.com",
			"EmailAddress": "high@acme.com",
		}), "summary")
		assert.Equal(t, "Email: high@acme.com, Phone: N/A", profile.ContactInfo)
	})
}

func TestExtractProfileMetadata(t *testing.T) {
	result := &search.AggregateResult{
		Matches: []search.TableMatch{
			{TableName: "Contacts", TotalCount: 2, SampledRecords: []search.Record{{"FirstName": "Linda"}}},
			{TableName: "Customers", TotalCount: 1, SampledRecords: []search.Record{{"Contact": "Linda"}}},
		},
	}

	profile := ExtractProfile(result, "a model-written summary")

	assert.Equal(t, "Found in 2 system(s)", profile.Relationship)
	assert.Equal(t, "a model-written summary", profile.Summary)
	assert.Equal(t, []string{"Contacts", "Customers"}, profile.DataSources)
}

func TestExtractProfileNoMatches(t *testing.T) {
	profile := ExtractProfile(&search.AggregateResult{}, "ignored")

	assert.Equal(t, models.DefaultName, profile.Name)
	assert.Equal(t, "Not found", profile.RoleTitle)
	assert.Equal(t, "N/A", profile.Company)
	assert.Equal(t, "Unknown", profile.Relationship)
	assert.Equal(t, "No records found", profile.ContactInfo)
	assert.Empty(t, profile.DataSources)
}

func TestExtractProfileNonStringValues(t *testing.T) {
	profile := ExtractProfile(singleTableResult(search.Record{
		"Name":        "Acme Corp",
		"PhoneNumber": 5550100,
	}), "summary")

	assert.Equal(t, "Email: N/A, Phone: 5550100", profile.ContactInfo)
}
