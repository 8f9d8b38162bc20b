package rules

import (
	"fmt"
	"strings"

	"github.com/medguide-server/internal/domain"
)

// duplicationRules lists therapeutic classes where two or more concurrently
// active agents without documented rationale constitute duplication. The
// class keyword list defines class membership.
func duplicationRules() []DuplicationRule {
	classDesc := func(class string) func(drugs []string) string {
		return func(drugs []string) string {
			return fmt.Sprintf("Multiple %s are concurrently active: %s. Therapeutic duplication without documented rationale.", class, strings.Join(drugs, " + "))
		}
	}

	return []DuplicationRule{
		{
			ID:             "DUP_CCB",
			Title:          "Therapeutic Duplication: Calcium Channel Blockers",
			Severity:       domain.MEDIUM,
			ClassKeywords:  []string{"amlodipine", "nifedipine", "felodipine", "diltiazem", "verapamil", "lercanidipine"},
			Describe:       classDesc("calcium channel blockers"),
			Recommendation: "Consolidate to a single agent unless a dihydropyridine/non-dihydropyridine combination is deliberate and documented.",
			Citation:       "STOPP/START criteria for potentially inappropriate prescribing in older people: version 2 (2015)",
			CitationURL:    "https://academic.oup.com/ageing/article/44/2/213/2812233",
		},
		{
			ID:             "DUP_NSAID",
			Title:          "Therapeutic Duplication: NSAIDs",
			Severity:       domain.HIGH,
			ClassKeywords:  []string{"ibuprofen", "naproxen", "diclofenac", "ketorolac", "indomethacin", "meloxicam", "celecoxib", "etoricoxib"},
			Describe:       classDesc("NSAIDs"),
			Recommendation: "Stop all but one NSAID; concurrent NSAIDs add GI and renal toxicity without added analgesia.",
			Citation:       "American Geriatrics Society 2023 Updated AGS Beers Criteria",
			CitationURL:    "https://agsjournals.onlinelibrary.wiley.com/doi/10.1111/jgs.18372",
		},
		{
			ID:             "DUP_PPI",
			Title:          "Therapeutic Duplication: Proton Pump Inhibitors",
			Severity:       domain.MEDIUM,
			ClassKeywords:  []string{"omeprazole", "pantoprazole", "lansoprazole", "esomeprazole", "rabeprazole", "dexlansoprazole"},
			Describe:       classDesc("proton pump inhibitors"),
			Recommendation: "Consolidate to a single PPI at the lowest effective dose.",
			Citation:       "STOPP/START criteria for potentially inappropriate prescribing in older people: version 2 (2015)",
			CitationURL:    "https://academic.oup.com/ageing/article/44/2/213/2812233",
		},
		{
			ID:             "DUP_RAAS",
			Title:          "Therapeutic Duplication: Renin-Angiotensin Blockade",
			Severity:       domain.HIGH,
			ClassKeywords:  []string{"lisinopril", "enalapril", "perindopril", "ramipril", "captopril", "losartan", "valsartan", "telmisartan", "candesartan", "irbesartan"},
			Describe:       classDesc("renin-angiotensin system blockers"),
			Recommendation: "Dual ACE inhibitor/ARB therapy increases hyperkalemia and renal failure risk; use one agent.",
			Citation:       "ONTARGET Investigators (2008) Telmisartan, ramipril, or both. N Engl J Med 358:1547-59",
			CitationURL:    "https://www.nejm.org/doi/full/10.1056/NEJMoa0801317",
		},
		{
			ID:             "DUP_BENZO",
			Title:          "Therapeutic Duplication: Benzodiazepines",
			Severity:       domain.HIGH,
			ClassKeywords:  []string{"diazepam", "lorazepam", "alprazolam", "clonazepam", "temazepam", "midazolam", "triazolam"},
			Describe:       classDesc("benzodiazepines"),
			Recommendation: "Consolidate to a single agent and plan a taper; cumulative sedative burden drives falls and delirium.",
			Citation:       "American Geriatrics Society 2023 Updated AGS Beers Criteria",
			CitationURL:    "https://agsjournals.onlinelibrary.wiley.com/doi/10.1111/jgs.18372",
		},
		{
			ID:             "DUP_STATIN",
			Title:          "Therapeutic Duplication: Statins",
			Severity:       domain.MEDIUM,
			ClassKeywords:  []string{"atorvastatin", "simvastatin", "rosuvastatin", "pravastatin", "lovastatin", "fluvastatin"},
			Describe:       classDesc("statins"),
			Recommendation: "Stop all but one statin; duplication adds myopathy and hepatotoxicity risk.",
			Citation:       "ACC/AHA Guideline on the Management of Blood Cholesterol (2018)",
			CitationURL:    "https://www.ahajournals.org/doi/10.1161/CIR.0000000000000625",
		},
	}
}
