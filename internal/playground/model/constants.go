package model

// User statuses used across the playground.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPremium  = "premium"
	StatusArchived = "archived"
	StatusVIP      = "vip"
)

// Field names as stored in the users collection.
const (
	FieldID         = "_id"
	FieldName       = "name"
	FieldAge        = "age"
	FieldEmail      = "email"
	FieldStatus     = "status"
	FieldSkills     = "skills"
	FieldJoinDate   = "joinDate"
	FieldDateJoined = "dateJoined"
	FieldDepartment = "profile.department"
	FieldCountry    = "profile.country"
	FieldCreatedAt  = "createdAt"
)

// Sort directions accepted by queries and index keys.
const (
	Ascending  = 1
	Descending = -1
)

var ValidStatuses = []string{StatusActive, StatusInactive, StatusPremium, StatusArchived, StatusVIP}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}
