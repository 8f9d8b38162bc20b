package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/medguide-server/internal/domain"
	"github.com/medguide-server/internal/rules"
)

// SafetyEngine evaluates a patient's reconstructed active medication list
// against the static clinical rule catalog. Evaluation is synchronous, pure
// over its inputs, and deterministic: the same patient and events always
// produce the same ordered, deduplicated alert list. The engine holds no
// mutable state, so one instance serves concurrent evaluations.
type SafetyEngine struct {
	logger  *logrus.Logger
	catalog *rules.Catalog
}

// NewSafetyEngine creates a safety engine over an immutable rule catalog.
func NewSafetyEngine(logger *logrus.Logger, catalog *rules.Catalog) *SafetyEngine {
	return &SafetyEngine{
		logger:  logger,
		catalog: catalog,
	}
}

// Evaluate runs all rule categories against the patient's active medications
// and returns the deduplicated alert list. Events need not be pre-sorted.
//
// Phases run in a fixed sequence: single-drug rules, then drug-drug
// interactions over every ordered pair of distinct active medications, then
// therapeutic duplication, then deduplication by title+description keeping
// the first occurrence. Within each phase, iteration follows active-set
// insertion order crossed with catalog declaration order.
func (e *SafetyEngine) Evaluate(patient *domain.PatientProfile, events []domain.MedicationEvent) ([]domain.SafetyAlert, error) {
	if patient == nil {
		return nil, domain.NewInputError("patient", "patient profile is required", nil)
	}
	if err := patient.Validate(); err != nil {
		return nil, err
	}

	active, err := ActiveMedications(events)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"patient_id":  patient.ID,
		"event_count": len(events),
		"active_meds": len(active),
	}).Debug("Evaluating safety rules")

	alerts := make([]domain.SafetyAlert, 0)
	alerts = append(alerts, e.evaluateSingleDrug(patient, active)...)
	alerts = append(alerts, e.evaluateInteractions(active)...)
	alerts = append(alerts, e.evaluateDuplications(active)...)
	alerts = dedupeAlerts(alerts)

	e.logger.WithFields(logrus.Fields{
		"patient_id":  patient.ID,
		"alert_count": len(alerts),
	}).Info("Completed safety evaluation")

	return alerts, nil
}

// EvaluateResult runs Evaluate and wraps the alerts with the count summary.
func (e *SafetyEngine) EvaluateResult(patient *domain.PatientProfile, events []domain.MedicationEvent) (*domain.SafetyResult, error) {
	alerts, err := e.Evaluate(patient, events)
	if err != nil {
		return nil, err
	}
	return &domain.SafetyResult{
		Alerts:  alerts,
		Summary: Summarize(alerts),
	}, nil
}

// evaluateSingleDrug applies Beers, STOPP/START, and drug-disease rules.
// The gate order is: age, drug keyword, excluded conditions (exception path),
// required conditions (clinical context).
func (e *SafetyEngine) evaluateSingleDrug(patient *domain.PatientProfile, active []domain.MedicationEvent) []domain.SafetyAlert {
	var alerts []domain.SafetyAlert
	for _, med := range active {
		for i := range e.catalog.SingleDrug() {
			rule := &e.catalog.SingleDrug()[i]
			if !ageGate(patient.Age, rule.AgeMin) {
				continue
			}
			if !matchesKeyword(med.Medication, rule.DrugKeywords) {
				continue
			}
			if len(rule.ExcludedConditions) > 0 && matchesCondition(patient.Conditions, rule.ExcludedConditions) {
				continue
			}
			if len(rule.RequiredConditions) > 0 && !matchesCondition(patient.Conditions, rule.RequiredConditions) {
				continue
			}
			alerts = append(alerts, domain.SafetyAlert{
				Title:          rule.Title,
				Severity:       rule.Severity,
				Description:    rule.Describe(med.Medication),
				Recommendation: rule.Recommendation,
				Citation:       rule.Citation,
				CitationURL:    rule.CitationURL,
			})
		}
	}
	return alerts
}

// evaluateInteractions checks every ordered pair of distinct active
// medications; the full cross product minus self-pairs. Both orderings are
// examined because the two keyword sets are directional. Any double hit is
// collapsed by the dedup pass.
func (e *SafetyEngine) evaluateInteractions(active []domain.MedicationEvent) []domain.SafetyAlert {
	var alerts []domain.SafetyAlert
	for i := range active {
		for j := range active {
			if i == j {
				continue
			}
			for k := range e.catalog.Interactions() {
				rule := &e.catalog.Interactions()[k]
				if matchesKeyword(active[i].Medication, rule.DrugKeywords) &&
					matchesKeyword(active[j].Medication, rule.InteractionDrugKeywords) {
					alerts = append(alerts, domain.SafetyAlert{
						Title:          rule.Title,
						Severity:       rule.Severity,
						Description:    rule.Describe(active[i].Medication, active[j].Medication),
						Recommendation: rule.Recommendation,
						Citation:       rule.Citation,
						CitationURL:    rule.CitationURL,
					})
				}
			}
		}
	}
	return alerts
}

// evaluateDuplications emits exactly one alert per class rule when two or
// more active medications match the class keywords.
func (e *SafetyEngine) evaluateDuplications(active []domain.MedicationEvent) []domain.SafetyAlert {
	var alerts []domain.SafetyAlert
	for i := range e.catalog.Duplications() {
		rule := &e.catalog.Duplications()[i]
		var matched []string
		for _, med := range active {
			if matchesKeyword(med.Medication, rule.ClassKeywords) {
				matched = append(matched, med.Medication)
			}
		}
		if len(matched) >= 2 {
			alerts = append(alerts, domain.SafetyAlert{
				Title:          rule.Title,
				Severity:       rule.Severity,
				Description:    rule.Describe(matched),
				Recommendation: rule.Recommendation,
				Citation:       rule.Citation,
				CitationURL:    rule.CitationURL,
			})
		}
	}
	return alerts
}

// dedupeAlerts collapses alerts sharing title and description, keeping the
// first occurrence. Idempotent: re-running it on deduplicated output is a
// no-op.
func dedupeAlerts(alerts []domain.SafetyAlert) []domain.SafetyAlert {
	seen := make(map[string]bool, len(alerts))
	out := make([]domain.SafetyAlert, 0, len(alerts))
	for _, a := range alerts {
		key := a.Title + "\x00" + a.Description
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

// Summarize produces the count-based result summary. No alert-content logic
// beyond the count.
func Summarize(alerts []domain.SafetyAlert) string {
	if len(alerts) > 0 {
		return fmt.Sprintf("Identified %d potential safety concerns based on standard clinical guidelines (Beers, STOPP/START, Drug Interactions).", len(alerts))
	}
	return "No significant safety alerts detected based on current active medications and known conditions."
}
