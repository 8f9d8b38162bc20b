// Package domain contains the core business entities for medication timeline
// reconstruction and deterministic clinical safety assessment (Beers Criteria,
// STOPP/START, drug-disease contraindications, drug-drug interactions, and
// therapeutic duplication).
//
// References: American Geriatrics Society 2023 Updated AGS Beers Criteria;
// O'Mahony et al. (2015) STOPP/START criteria for potentially inappropriate
// prescribing in older people, version 2. Age Ageing 44(2):213-8.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// ActionKind represents the medication action extracted from a progress note.
// This is a closed enumeration; the upstream extractor maps anything it cannot
// classify to UNCLEAR rather than inventing new kinds.
type ActionKind string

const (
	STARTED   ActionKind = "STARTED"
	STOPPED   ActionKind = "STOPPED"
	INCREASED ActionKind = "INCREASED"
	DECREASED ActionKind = "DECREASED"
	CONTINUED ActionKind = "CONTINUED"
	UNCLEAR   ActionKind = "UNCLEAR"
)

// Severity represents the clinical severity of a safety alert.
type Severity string

const (
	HIGH   Severity = "HIGH"
	MEDIUM Severity = "MEDIUM"
	LOW    Severity = "LOW"
)

// CalendarDateLayout is the only accepted grammar for event dates.
// Dates carry no time or timezone component.
const CalendarDateLayout = "2006-01-02"

// Validation errors for clinical data integrity
var (
	ErrInvalidAction   = errors.New("invalid medication action")
	ErrInvalidSeverity = errors.New("invalid alert severity")
	ErrInvalidDate     = errors.New("date must be a calendar date in YYYY-MM-DD format")
)

// IsValid validates that the ActionKind is one of the closed enumeration values.
func (a ActionKind) IsValid() bool {
	switch a {
	case STARTED, STOPPED, INCREASED, DECREASED, CONTINUED, UNCLEAR:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action.
func (a ActionKind) String() string {
	return string(a)
}

// IsValid validates the alert severity.
func (s Severity) IsValid() bool {
	switch s {
	case HIGH, MEDIUM, LOW:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseClinicalDate parses a strict YYYY-MM-DD calendar date in local time.
// Parsing at local midnight keeps "2009-04-01" on April 1 in every timezone;
// a naive timestamp parse would shift it across the UTC boundary in western
// timezones. Anything that does not match the calendar-date grammar is
// rejected rather than coerced.
func ParseClinicalDate(value string) (time.Time, error) {
	if len(value) != len(CalendarDateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	t, err := time.ParseInLocation(CalendarDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// MedicationEvent is one dated medication action extracted from a clinical
// note. Events are immutable once produced by the extractor; the safety
// engine only derives state from them.
//
// The medication name is free text, title-cased by the extractor, and is NOT
// normalized to a drug ontology. Name identity is exact and case-sensitive
// downstream of extraction.
type MedicationEvent struct {
	ID          string     `json:"id,omitempty"`
	Date        string     `json:"date"`
	StartDate   string     `json:"startDate,omitempty"`
	Medication  string     `json:"medication"`
	Dosage      string     `json:"dosage"`
	Route       string     `json:"route,omitempty"`
	Action      ActionKind `json:"action"`
	Rationale   string     `json:"rationale"`
	SourceQuote string     `json:"source_quote"`
}

// Validate ensures the event carries the fields the safety engine requires.
func (e *MedicationEvent) Validate() error {
	if e.Medication == "" {
		return NewInputError("medication", "medication name is required", e.Medication)
	}
	if !e.Action.IsValid() {
		return NewInputError("action", "unknown medication action", string(e.Action))
	}
	if _, err := ParseClinicalDate(e.Date); err != nil {
		return NewInputError("date", err.Error(), e.Date)
	}
	return nil
}

// CalendarDate returns the event date parsed at local midnight.
func (e *MedicationEvent) CalendarDate() (time.Time, error) {
	return ParseClinicalDate(e.Date)
}

// PatientProfile is the demographic and clinical context for one evaluation.
// Age and conditions gate rule applicability and do not change during a
// single evaluation. Conditions are free-text labels without code binding.
type PatientProfile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Age             int      `json:"age"`
	Gender          string   `json:"gender"`
	Conditions      []string `json:"conditions"`
	Notes           string   `json:"notes,omitempty"`
	InsuranceNumber string   `json:"insuranceNumber,omitempty"`
}

// Validate ensures the profile is usable for rule gating.
func (p *PatientProfile) Validate() error {
	if p.Age < 0 {
		return NewInputError("age", "age must be a non-negative integer", p.Age)
	}
	return nil
}

// SafetyAlert is one structured safety finding. Alerts are produced fresh per
// evaluation and never mutated; title plus description is the value identity
// used for deduplication.
type SafetyAlert struct {
	Title          string   `json:"title"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	Citation       string   `json:"citation,omitempty"`
	CitationURL    string   `json:"citationUrl,omitempty"`
}

// SafetyResult is the deduplicated alert list plus a count-based summary.
type SafetyResult struct {
	Alerts  []SafetyAlert `json:"alerts"`
	Summary string        `json:"summary"`
}

// ExtractionResult is the structured output of the upstream NER extractor.
type ExtractionResult struct {
	PatientID string            `json:"patientId"`
	Events    []MedicationEvent `json:"events"`
}
