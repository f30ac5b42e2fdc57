package dto

import "simrs/internal/domain/patient"

// CreatePatientRequest registers a new patient.
type CreatePatientRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Insurance string `json:"insurance"`
	Gender    string `json:"gender"`
}

// ToInput converts the request to domain input.
func (r CreatePatientRequest) ToInput() patient.CreateInput {
	return patient.CreateInput{
		Name:      r.Name,
		Phone:     r.Phone,
		Insurance: r.Insurance,
		Gender:    patient.Gender(r.Gender),
	}
}

// UpdatePatientRequest edits an existing patient.
type UpdatePatientRequest struct {
	Name      string `json:"name"`
	Insurance string `json:"insurance"`
	Gender    string `json:"gender"`
}

// ToInput converts the request to domain input.
func (r UpdatePatientRequest) ToInput() patient.UpdateInput {
	return patient.UpdateInput{
		Name:      r.Name,
		Insurance: r.Insurance,
		Gender:    patient.Gender(r.Gender),
	}
}
