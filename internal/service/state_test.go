package service

import (
	"testing"

	"github.com/medguide-server/internal/domain"
)

func event(date, medication string, action domain.ActionKind) domain.MedicationEvent {
	return domain.MedicationEvent{
		Date:       date,
		Medication: medication,
		Dosage:     "test dose",
		Action:     action,
	}
}

func activeNames(t *testing.T, events []domain.MedicationEvent) []string {
	t.Helper()
	active, err := ActiveMedications(events)
	if err != nil {
		t.Fatalf("ActiveMedications failed: %v", err)
	}
	names := make([]string, len(active))
	for i, a := range active {
		names[i] = a.Medication
	}
	return names
}

func TestActiveMedicationsLastWriteWins(t *testing.T) {
	events := []domain.MedicationEvent{
		event("2024-01-01", "Warfarin", domain.STARTED),
		event("2024-02-01", "Warfarin", domain.INCREASED),
		event("2024-03-01", "Warfarin", domain.STOPPED),
	}

	names := activeNames(t, events)
	if len(names) != 0 {
		t.Errorf("Expected stopped medication to be excluded, got %v", names)
	}
}

func TestActiveMedicationsRestartAfterStop(t *testing.T) {
	events := []domain.MedicationEvent{
		event("2024-01-01", "Warfarin", domain.STARTED),
		event("2024-02-01", "Warfarin", domain.STOPPED),
		event("2024-03-01", "Warfarin", domain.STARTED),
	}

	names := activeNames(t, events)
	if len(names) != 1 || names[0] != "Warfarin" {
		t.Errorf("Expected restarted medication to be active, got %v", names)
	}
}

func TestActiveMedicationsUnorderedInput(t *testing.T) {
	// Events arrive out of chronological order; reconstruction must sort first.
	events := []domain.MedicationEvent{
		event("2024-03-01", "Omeprazole", domain.STOPPED),
		event("2024-01-01", "Omeprazole", domain.STARTED),
	}

	names := activeNames(t, events)
	if len(names) != 0 {
		t.Errorf("Expected stop dated after start to win, got %v", names)
	}
}

func TestActiveMedicationsSameDayKeepsInputOrder(t *testing.T) {
	// Two events on the same day: the later entry in the input wins.
	events := []domain.MedicationEvent{
		event("2024-01-15", "Metformin", domain.STOPPED),
		event("2024-01-15", "Metformin", domain.CONTINUED),
	}

	names := activeNames(t, events)
	if len(names) != 1 || names[0] != "Metformin" {
		t.Errorf("Expected later same-day entry to win, got %v", names)
	}

	// And reversed: STOPPED listed second wins.
	events = []domain.MedicationEvent{
		event("2024-01-15", "Metformin", domain.CONTINUED),
		event("2024-01-15", "Metformin", domain.STOPPED),
	}
	names = activeNames(t, events)
	if len(names) != 0 {
		t.Errorf("Expected later same-day STOPPED to win, got %v", names)
	}
}

func TestActiveMedicationsCaseSensitiveNames(t *testing.T) {
	// Name identity is exact; differing case yields two distinct medications.
	events := []domain.MedicationEvent{
		event("2024-01-01", "Amlodipine", domain.STARTED),
		event("2024-02-01", "amlodipine", domain.STOPPED),
	}

	names := activeNames(t, events)
	if len(names) != 1 || names[0] != "Amlodipine" {
		t.Errorf("Expected case-distinct names to track separately, got %v", names)
	}
}

func TestActiveMedicationsPreservesFirstAppearanceOrder(t *testing.T) {
	events := []domain.MedicationEvent{
		event("2024-02-01", "Lisinopril", domain.STARTED),
		event("2024-01-01", "Warfarin", domain.STARTED),
		event("2024-03-01", "Warfarin", domain.CONTINUED),
	}

	names := activeNames(t, events)
	expected := []string{"Warfarin", "Lisinopril"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, names)
			break
		}
	}
}

func TestActiveMedicationsEmptyInput(t *testing.T) {
	active, err := ActiveMedications(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("Expected empty active set, got %v", active)
	}
}

func TestActiveMedicationsUnclearKeepsActive(t *testing.T) {
	events := []domain.MedicationEvent{
		event("2024-01-01", "Digoxin", domain.STARTED),
		event("2024-02-01", "Digoxin", domain.UNCLEAR),
	}

	names := activeNames(t, events)
	if len(names) != 1 || names[0] != "Digoxin" {
		t.Errorf("Expected UNCLEAR latest action to keep medication active, got %v", names)
	}
}

func TestActiveMedicationsRejectsMalformedEvent(t *testing.T) {
	events := []domain.MedicationEvent{
		event("2024-01-01", "Warfarin", domain.STARTED),
		event("01/15/2024", "Omeprazole", domain.STARTED),
	}

	if _, err := ActiveMedications(events); err == nil {
		t.Error("Expected error for malformed event date, got nil")
	}
}
