package extract

import "testing"

func TestTitleCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", ""},
		{"Lowercase drug", "omeprazole", "Omeprazole"},
		{"Uppercase drug", "WARFARIN", "Warfarin"},
		{"Two words", "insulin glargine", "Insulin Glargine"},
		{"Acronym preserved", "metoprolol xl", "Metoprolol XL"},
		{"Route acronym", "aspirin po", "Aspirin PO"},
		{"Mixed acronym case", "Frusemide iv", "Frusemide IV"},
		{"Non-acronym short word", "co codamol", "Co Codamol"},
		{"Condition acronym", "copd inhaler", "COPD Inhaler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleCase(tt.input); got != tt.expected {
				t.Errorf("TitleCase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatRoute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty", "", ""},
		{"Short code uppercased", "po", "PO"},
		{"Two letter code", "iv", "IV"},
		{"Three letter code", "neb", "NEB"},
		{"Long route title-cased", "topical", "Topical"},
		{"Long route already cased", "Subcutaneous", "Subcutaneous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRoute(tt.input); got != tt.expected {
				t.Errorf("FormatRoute(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain JSON untouched", `{"a":1}`, `{"a":1}`},
		{"JSON fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"Surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
		{"Fence with whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSONResponse(tt.input); got != tt.expected {
				t.Errorf("CleanJSONResponse(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
