package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/medguide-server/internal/domain"
)

// ActiveMedications reconstructs the current medication state from an
// unordered event log. It sorts events by calendar date ascending with a
// stable sort, so same-day events keep their input order and the
// last-provided entry for a day wins: clinical notes commonly restate
// "continued" medications after a same-day dose change, and the restatement
// is authoritative. It then applies last-write-wins per exact medication-name
// string and drops every medication whose latest action is STOPPED.
//
// Name identity is exact and case-sensitive; "Amlodipine" and "amlodipine "
// are distinct medications here. Normalization is the extractor's job,
// applied before events reach this function.
//
// The returned slice preserves the order in which medication names first
// appear in the sorted log.
func ActiveMedications(events []domain.MedicationEvent) ([]domain.MedicationEvent, error) {
	type dated struct {
		event domain.MedicationEvent
		date  time.Time
	}

	sorted := make([]dated, 0, len(events))
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i, events[i].Medication, err)
		}
		// Validate guarantees the date parses.
		d, _ := events[i].CalendarDate()
		sorted = append(sorted, dated{event: events[i], date: d})
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].date.Before(sorted[j].date)
	})

	order := make([]string, 0, len(sorted))
	latest := make(map[string]domain.MedicationEvent, len(sorted))
	for _, d := range sorted {
		name := d.event.Medication
		if _, seen := latest[name]; !seen {
			order = append(order, name)
		}
		latest[name] = d.event
	}

	active := make([]domain.MedicationEvent, 0, len(order))
	for _, name := range order {
		if ev := latest[name]; ev.Action != domain.STOPPED {
			active = append(active, ev)
		}
	}
	return active, nil
}
