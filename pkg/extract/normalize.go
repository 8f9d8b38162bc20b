package extract

import (
	"regexp"
	"strings"
)

// Medical abbreviations kept uppercase during title-casing. Mostly
// administration routes, formulation suffixes, and common clinical acronyms.
var acronyms = map[string]bool{
	"QV": true, "IV": true, "IM": true, "SC": true, "PO": true, "PR": true,
	"SL": true, "NG": true, "TP": true,
	"LA": true, "XL": true, "XR": true, "SR": true, "ER": true, "CR": true,
	"IR": true, "DS": true, "SA": true, "HA": true,
	"HCT": true, "HCTZ": true, "CD": true, "EC": true, "PM": true, "AM": true,
	"OM": true, "ON": true,
	"BD": true, "TDS": true, "QDS": true, "PRN": true, "D5": true, "NS": true,
	"D5NS": true, "D5-NS": true, "COPD": true, "HIV": true,
	"RNA": true, "DNA": true, "MRI": true, "CT": true, "MRSA": true,
	"OA": true, "TKR": true, "RAI": true, "UTI": true, "AKI": true,
	"NSAID": true, "NSAIDS": true, "ACE": true, "ARB": true, "CCB": true,
}

var wordPattern = regexp.MustCompile(`\w[^\s]*`)
var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// TitleCase converts free text to title case, keeping known medical acronyms
// uppercase (e.g. "metoprolol XL" stays "Metoprolol XL", not "Metoprolol Xl").
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return wordPattern.ReplaceAllStringFunc(s, func(word string) string {
		clean := nonAlnum.ReplaceAllString(word, "")
		upper := strings.ToUpper(clean)
		if acronyms[upper] {
			return strings.Replace(word, clean, upper, 1)
		}
		return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	})
}

// FormatRoute normalizes an administration route for display. Short codes
// (PO, IV, SC) go uppercase; longer routes are title-cased.
func FormatRoute(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 3 {
		return strings.ToUpper(s)
	}
	return TitleCase(s)
}

var fenceStart = regexp.MustCompile("^```(json)?\\s*")
var fenceEnd = regexp.MustCompile("\\s*```$")

// CleanJSONResponse strips markdown code fences that language models wrap
// around JSON output despite being asked for raw JSON.
func CleanJSONResponse(s string) string {
	clean := strings.TrimSpace(s)
	if strings.HasPrefix(clean, "```") {
		clean = fenceStart.ReplaceAllString(clean, "")
	}
	if strings.HasSuffix(clean, "```") {
		clean = fenceEnd.ReplaceAllString(clean, "")
	}
	return clean
}
