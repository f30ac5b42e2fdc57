// Package patient contains the patient registry domain.
package patient

import (
	"strings"

	"simrs/internal/core/apperror"
)

// Gender of a patient.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Status of a patient within the hospital.
type Status string

const (
	StatusInPatient  Status = "In-Patient"
	StatusOutPatient Status = "Out-Patient"
	StatusDischarged Status = "Discharged"
)

// DefaultCondition is assigned to newly registered patients.
const DefaultCondition = "Pemeriksaan Baru"

// Patient is a registered hospital patient.
// Identifiers follow the medical record scheme RM-NNN.
type Patient struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    Gender `json:"gender"`
	Status    Status `json:"status"`
	Insurance string `json:"insurance"`
	LastVisit string `json:"lastVisit"`
	Condition string `json:"condition"`
	Phone     string `json:"phone,omitempty"`
}

// CreateInput holds the fields accepted when registering a patient.
type CreateInput struct {
	Name      string
	Phone     string
	Insurance string
	Gender    Gender
}

// Validate checks required fields.
func (in CreateInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return apperror.NewMissingFields(missing...)
	}
	return nil
}

// UpdateInput holds the fields that may change on an existing patient.
// Everything else is immutable through the API.
type UpdateInput struct {
	Name      string
	Insurance string
	Gender    Gender
}

// Validate checks required fields.
func (in UpdateInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.NewMissingFields("name")
	}
	return nil
}
