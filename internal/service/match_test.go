package service

import "testing"

func TestMatchesKeyword(t *testing.T) {
	tests := []struct {
		name     string
		medName  string
		keywords []string
		expected bool
	}{
		{"Exact match", "warfarin", []string{"warfarin"}, true},
		{"Case insensitive", "Warfarin", []string{"warfarin"}, true},
		{"Substring in dosage form", "Warfarin 2mg", []string{"warfarin"}, true},
		{"Leading whitespace trimmed", "  Omeprazole", []string{"omeprazole"}, true},
		{"Keyword case ignored", "omeprazole", []string{"Omeprazole"}, true},
		{"No match", "Paracetamol", []string{"warfarin"}, false},
		{"Empty keywords", "Warfarin", nil, false},
		{"Second keyword matches", "Coumadin", []string{"warfarin", "coumadin"}, true},
		{"Substring over-match", "Antiwarfarinoid", []string{"warfarin"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesKeyword(tt.medName, tt.keywords); got != tt.expected {
				t.Errorf("matchesKeyword(%q, %v) = %v, want %v", tt.medName, tt.keywords, got, tt.expected)
			}
		})
	}
}

func TestMatchesCondition(t *testing.T) {
	conditions := []string{"CKD Stage 4", "Type 2 Diabetes", "Recurrent falls"}

	tests := []struct {
		name     string
		keywords []string
		expected bool
	}{
		{"Substring of condition", []string{"ckd stage 4"}, true},
		{"Partial keyword", []string{"falls"}, true},
		{"Case insensitive", []string{"type 2 diabetes"}, true},
		{"No match", []string{"heart failure"}, false},
		{"Empty conditions", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds := conditions
			if tt.name == "Empty conditions" {
				conds = nil
			}
			if got := matchesCondition(conds, tt.keywords); got != tt.expected {
				t.Errorf("matchesCondition(%v, %v) = %v, want %v", conds, tt.keywords, got, tt.expected)
			}
		})
	}
}

func TestAgeGate(t *testing.T) {
	tests := []struct {
		name       string
		patientAge int
		ruleAgeMin int
		expected   bool
	}{
		{"No age gate", 30, 0, true},
		{"Meets minimum", 65, 65, true},
		{"Above minimum", 80, 65, true},
		{"Below minimum", 64, 65, false},
		{"Zero age with gate", 0, 65, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ageGate(tt.patientAge, tt.ruleAgeMin); got != tt.expected {
				t.Errorf("ageGate(%d, %d) = %v, want %v", tt.patientAge, tt.ruleAgeMin, got, tt.expected)
			}
		})
	}
}
