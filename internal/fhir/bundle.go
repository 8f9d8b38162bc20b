// Package fhir renders analysis data as FHIR R4 resources for EHR exchange.
// Only the subset of fields the export needs is modeled; this is not a full
// FHIR implementation.
package fhir

import (
	"fmt"
	"strings"
	"time"

	"github.com/medguide-server/internal/domain"
)

// Bundle is a FHIR collection bundle wrapping a Patient resource and one
// MedicationStatement per timeline event.
type Bundle struct {
	ResourceType string  `json:"resourceType"`
	Type         string  `json:"type"`
	Timestamp    string  `json:"timestamp"`
	Entry        []Entry `json:"entry"`
}

// Entry wraps a single resource inside a bundle.
type Entry struct {
	Resource interface{} `json:"resource"`
}

// Identifier is a FHIR identifier with a naming system.
type Identifier struct {
	System string `json:"system"`
	Value  string `json:"value"`
}

// HumanName carries the patient's display name.
type HumanName struct {
	Use  string `json:"use"`
	Text string `json:"text"`
}

// Patient is a minimal FHIR Patient resource.
type Patient struct {
	ResourceType string       `json:"resourceType"`
	ID           string       `json:"id"`
	Identifier   []Identifier `json:"identifier"`
	Name         []HumanName  `json:"name"`
	Gender       string       `json:"gender"`
	BirthDate    string       `json:"birthDate"`
}

// CodeableConcept carries free-text coding.
type CodeableConcept struct {
	Text string `json:"text"`
}

// Reference points at another resource in the bundle.
type Reference struct {
	Reference string `json:"reference"`
}

// Dosage is a minimal FHIR dosage element.
type Dosage struct {
	Text  string           `json:"text"`
	Route *CodeableConcept `json:"route,omitempty"`
}

// Annotation is a free-text note.
type Annotation struct {
	Text string `json:"text"`
}

// MedicationStatement is a minimal FHIR MedicationStatement resource.
type MedicationStatement struct {
	ResourceType              string            `json:"resourceType"`
	ID                        string            `json:"id,omitempty"`
	Status                    string            `json:"status"`
	StatusReason              []CodeableConcept `json:"statusReason"`
	MedicationCodeableConcept CodeableConcept   `json:"medicationCodeableConcept"`
	Subject                   Reference         `json:"subject"`
	EffectiveDateTime         string            `json:"effectiveDateTime"`
	DateAsserted              string            `json:"dateAsserted"`
	Dosage                    []Dosage          `json:"dosage"`
	Note                      []Annotation      `json:"note"`
}

const insuranceIdentifierSystem = "http://hospital.org/insurance-ids"

// NewBundle builds a FHIR collection bundle from a patient profile and their
// medication timeline. The caller supplies the assertion time so exports are
// reproducible.
//
// A STOPPED event maps to status "stopped"; every other action maps to
// "active" with the action recorded as the status reason. The birth date is
// approximated as January 1 of the year implied by the patient's age.
func NewBundle(patient *domain.PatientProfile, events []domain.MedicationEvent, now time.Time) *Bundle {
	timestamp := now.UTC().Format(time.RFC3339)

	birthYear := now.Year() - patient.Age
	fhirPatient := Patient{
		ResourceType: "Patient",
		ID:           patient.ID,
		Identifier: []Identifier{
			{System: insuranceIdentifierSystem, Value: patient.InsuranceNumber},
		},
		Name: []HumanName{
			{Use: "official", Text: patient.Name},
		},
		Gender:    strings.ToLower(patient.Gender),
		BirthDate: fmt.Sprintf("%04d-01-01", birthYear),
	}

	entries := make([]Entry, 0, len(events)+1)
	entries = append(entries, Entry{Resource: fhirPatient})

	for _, evt := range events {
		status := "active"
		if evt.Action == domain.STOPPED {
			status = "stopped"
		}

		dosage := Dosage{Text: evt.Dosage}
		if evt.Route != "" {
			dosage.Route = &CodeableConcept{Text: evt.Route}
		}

		entries = append(entries, Entry{Resource: MedicationStatement{
			ResourceType:              "MedicationStatement",
			ID:                        evt.ID,
			Status:                    status,
			StatusReason:              []CodeableConcept{{Text: evt.Action.String()}},
			MedicationCodeableConcept: CodeableConcept{Text: evt.Medication},
			Subject:                   Reference{Reference: "Patient/" + patient.ID},
			EffectiveDateTime:         evt.Date,
			DateAsserted:              timestamp,
			Dosage:                    []Dosage{dosage},
			Note:                      []Annotation{{Text: evt.Rationale}},
		}})
	}

	return &Bundle{
		ResourceType: "Bundle",
		Type:         "collection",
		Timestamp:    timestamp,
		Entry:        entries,
	}
}
