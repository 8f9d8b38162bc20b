package rules

import (
	"strings"
	"testing"

	"github.com/medguide-server/internal/domain"
)

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("Catalog construction failed: %v", err)
	}
	if catalog.Size() == 0 {
		t.Fatal("Expected a non-empty catalog")
	}
	if len(catalog.SingleDrug()) == 0 {
		t.Error("Expected single-drug rules")
	}
	if len(catalog.Interactions()) == 0 {
		t.Error("Expected interaction rules")
	}
	if len(catalog.Duplications()) == 0 {
		t.Error("Expected duplication rules")
	}
}

func TestCatalogRuleIDsUnique(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("Catalog construction failed: %v", err)
	}

	seen := make(map[string]bool)
	record := func(id string) {
		if seen[id] {
			t.Errorf("Duplicate rule ID: %s", id)
		}
		seen[id] = true
	}
	for _, r := range catalog.SingleDrug() {
		record(r.ID)
	}
	for _, r := range catalog.Interactions() {
		record(r.ID)
	}
	for _, r := range catalog.Duplications() {
		record(r.ID)
	}
}

func TestCatalogContainsCoreRules(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("Catalog construction failed: %v", err)
	}

	singleIDs := make(map[string]bool)
	for _, r := range catalog.SingleDrug() {
		singleIDs[r.ID] = true
	}
	for _, id := range []string{
		"BEERS_PPI_ELDERLY",
		"BEERS_NSAIDS_ELDERLY",
		"BEERS_BENZOS",
		"STOPP_FALLS_RISK",
		"STOPP_LOOP_DIURETIC_HTN",
		"DD_METFORMIN_CKD",
	} {
		if !singleIDs[id] {
			t.Errorf("Expected single-drug rule %s", id)
		}
	}

	interactionIDs := make(map[string]bool)
	for _, r := range catalog.Interactions() {
		interactionIDs[r.ID] = true
	}
	if !interactionIDs["INT_WARFARIN_PPI"] {
		t.Error("Expected interaction rule INT_WARFARIN_PPI")
	}

	duplicationIDs := make(map[string]bool)
	for _, r := range catalog.Duplications() {
		duplicationIDs[r.ID] = true
	}
	if !duplicationIDs["DUP_CCB"] {
		t.Error("Expected duplication rule DUP_CCB")
	}
}

func TestBeersRulesAreAgeGated(t *testing.T) {
	for _, r := range beersRules() {
		if r.AgeMin != 65 {
			t.Errorf("Rule %s: expected age minimum 65, got %d", r.ID, r.AgeMin)
		}
		if r.Citation == "" || r.CitationURL == "" {
			t.Errorf("Rule %s: expected a citation", r.ID)
		}
	}
}

func TestInteractionDescribePairsDrugNames(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("Catalog construction failed: %v", err)
	}
	for _, r := range catalog.Interactions() {
		desc := r.Describe("Warfarin", "Omeprazole")
		if !strings.HasPrefix(desc, "Warfarin + Omeprazole: ") {
			t.Errorf("Rule %s: expected description to start with the drug pair, got %q", r.ID, desc)
		}
	}
}

func TestDuplicationDescribeJoinsDrugNames(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("Catalog construction failed: %v", err)
	}
	for _, r := range catalog.Duplications() {
		desc := r.Describe([]string{"Amlodipine", "Nifedipine"})
		if !strings.Contains(desc, "Amlodipine + Nifedipine") {
			t.Errorf("Rule %s: expected joined drug names in %q", r.ID, desc)
		}
	}
}

func TestValidateSingleRejectsMalformedRules(t *testing.T) {
	base := SingleDrugRule{
		ID:           "TEST_RULE",
		Title:        "Test rule",
		Severity:     domain.MEDIUM,
		DrugKeywords: []string{"testdrug"},
		Describe:     func(drug string) string { return drug },
	}

	tests := []struct {
		name   string
		mutate func(r *SingleDrugRule)
	}{
		{"Missing title", func(r *SingleDrugRule) { r.Title = "" }},
		{"Invalid severity", func(r *SingleDrugRule) { r.Severity = "SEVERE" }},
		{"No keywords", func(r *SingleDrugRule) { r.DrugKeywords = nil }},
		{"No description template", func(r *SingleDrugRule) { r.Describe = nil }},
		{"Negative age minimum", func(r *SingleDrugRule) { r.AgeMin = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := base
			tt.mutate(&rule)
			if err := validateSingle(&rule); err == nil {
				t.Error("Expected a rule definition error, got nil")
			}
		})
	}

	if err := validateSingle(&base); err != nil {
		t.Errorf("Unexpected error for well-formed rule: %v", err)
	}
}

func TestValidateInteractionRequiresBothKeywordSets(t *testing.T) {
	rule := InteractionRule{
		ID:           "TEST_INT",
		Title:        "Test interaction",
		Severity:     domain.HIGH,
		DrugKeywords: []string{"warfarin"},
		Describe:     func(a, b string) string { return a + " + " + b },
	}
	if err := validateInteraction(&rule); err == nil {
		t.Error("Expected error for missing interaction keyword set")
	}

	rule.InteractionDrugKeywords = []string{"omeprazole"}
	if err := validateInteraction(&rule); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
