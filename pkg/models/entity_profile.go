// Package models holds the domain types shared across services and handlers.
package models

// Profile field defaults used when no candidate source field carries a
// value. These are part of the structured-output contract consumers rely
// on, so they are exported constants rather than inline literals.
const (
	DefaultName      = "Unknown"
	DefaultRoleTitle = "Not specified"
	DefaultCompany   = "Associated organization"
	DefaultContact   = "N/A"
)

// EntityProfile is the structured introduction of a found entity,
// extracted from aggregated records by key-name heuristics and paired
// with the model-written summary.
type EntityProfile struct {
	Name         string   `json:"name"`         // Full name of the entity
	RoleTitle    string   `json:"role_title"`   // Job title or position
	Company      string   `json:"company"`      // Associated company
	ContactInfo  string   `json:"contact_info"` // Email and/or phone
	Relationship string   `json:"relationship"` // e.g. "Found in 2 system(s)"
	Summary      string   `json:"summary"`      // 2-3 sentence introduction
	DataSources  []string `json:"data_sources"` // Tables the evidence came from
}

// NotFoundProfile is returned when a search produces no evidence at all.
func NotFoundProfile() *EntityProfile {
	return &EntityProfile{
		Name:         DefaultName,
		RoleTitle:    "Not found",
		Company:      "N/A",
		ContactInfo:  "No records found",
		Relationship: "Unknown",
		Summary:      "No records found in the database for this entity.",
		DataSources:  []string{},
	}
}
