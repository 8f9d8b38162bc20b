package service

import "strings"

// matchesKeyword reports whether the lowercased, trimmed name contains at
// least one keyword as a substring. Substring, not token, containment: the
// name "Warfarin 2mg" matches keyword "warfarin", and so would a hypothetical
// "Antiwarfarin". This stands in for a drug ontology; the false-positive risk
// is an accepted tradeoff.
func matchesKeyword(name string, keywords []string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, kw := range keywords {
		if strings.Contains(n, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// matchesCondition applies the same substring semantics to the patient's
// free-text condition labels.
func matchesCondition(conditions []string, keywords []string) bool {
	for _, cond := range conditions {
		if matchesKeyword(cond, keywords) {
			return true
		}
	}
	return false
}

// ageGate passes when the rule has no age minimum (zero) or the patient meets
// it.
func ageGate(patientAge, ruleAgeMin int) bool {
	return ruleAgeMin == 0 || patientAge >= ruleAgeMin
}
