package rules

import (
	"fmt"

	"github.com/medguide-server/internal/domain"
)

// interactionRules lists known harmful drug-drug pairs. The description embeds
// both drug names joined as "A + B"; the evaluation loop supplies both
// orderings and the engine's dedup pass collapses any double hit.
func interactionRules() []InteractionRule {
	pair := func(template string) func(a, b string) string {
		return func(a, b string) string {
			return fmt.Sprintf("%s + %s: %s", a, b, template)
		}
	}

	return []InteractionRule{
		{
			ID:                      "INT_WARFARIN_PPI",
			Title:                   "Interaction: Warfarin + Proton Pump Inhibitor",
			Severity:                domain.HIGH,
			DrugKeywords:            []string{"warfarin", "coumadin"},
			InteractionDrugKeywords: []string{"omeprazole", "esomeprazole", "lansoprazole", "pantoprazole", "rabeprazole"},
			Describe:                pair("PPIs inhibit warfarin metabolism and can potentiate anticoagulation, raising INR and bleeding risk."),
			Recommendation:          "Monitor INR closely after starting or stopping the PPI; consider pantoprazole which has the least interaction potential.",
			Citation:                "Drug Interaction: Warfarin and Proton Pump Inhibitors (clinical pharmacology reference)",
			CitationURL:             "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC3972046/",
		},
		{
			ID:                      "INT_WARFARIN_NSAID",
			Title:                   "Interaction: Warfarin + NSAID",
			Severity:                domain.HIGH,
			DrugKeywords:            []string{"warfarin", "coumadin"},
			InteractionDrugKeywords: []string{"ibuprofen", "naproxen", "diclofenac", "ketorolac", "meloxicam", "celecoxib", "aspirin"},
			Describe:                pair("concurrent NSAID use multiplies GI bleeding risk through platelet inhibition and mucosal injury on top of anticoagulation."),
			Recommendation:          "Avoid the combination. If unavoidable, add PPI gastroprotection and monitor for bleeding.",
			Citation:                "American Geriatrics Society 2023 Updated AGS Beers Criteria",
			CitationURL:             "https://agsjournals.onlinelibrary.wiley.com/doi/10.1111/jgs.18372",
		},
		{
			ID:                      "INT_ACEI_K_SPARING",
			Title:                   "Interaction: ACE Inhibitor + Potassium-sparing Agent",
			Severity:                domain.HIGH,
			DrugKeywords:            []string{"lisinopril", "enalapril", "perindopril", "ramipril", "captopril", "losartan", "valsartan", "telmisartan"},
			InteractionDrugKeywords: []string{"spironolactone", "eplerenone", "amiloride", "potassium chloride", "span-k", "mist kcl"},
			Describe:                pair("combined renin-angiotensin blockade with potassium-sparing agents or supplements risks severe hyperkalemia."),
			Recommendation:          "Check renal function and potassium within 1-2 weeks of co-prescription and after any dose change.",
			Citation:                "STOPP/START criteria for potentially inappropriate prescribing in older people: version 2 (2015)",
			CitationURL:             "https://academic.oup.com/ageing/article/44/2/213/2812233",
		},
		{
			ID:                      "INT_SSRI_NSAID",
			Title:                   "Interaction: SSRI + NSAID",
			Severity:                domain.MEDIUM,
			DrugKeywords:            []string{"sertraline", "fluoxetine", "escitalopram", "citalopram", "paroxetine", "fluvoxamine"},
			InteractionDrugKeywords: []string{"ibuprofen", "naproxen", "diclofenac", "ketorolac", "meloxicam", "aspirin"},
			Describe:                pair("SSRIs impair platelet serotonin uptake; with an NSAID the upper GI bleeding risk rises several-fold."),
			Recommendation:          "Co-prescribe a PPI or switch the analgesic if the combination must continue.",
			Citation:                "Anglin et al. (2014) Risk of upper GI bleeding with SSRIs with and without NSAIDs. Am J Gastroenterol 109(6):811-9",
			CitationURL:             "https://pubmed.ncbi.nlm.nih.gov/24777151/",
		},
		{
			ID:                      "INT_OPIOID_BENZO",
			Title:                   "Interaction: Opioid + Benzodiazepine",
			Severity:                domain.HIGH,
			DrugKeywords:            []string{"morphine", "oxycodone", "fentanyl", "tramadol", "codeine", "hydromorphone"},
			InteractionDrugKeywords: []string{"diazepam", "lorazepam", "alprazolam", "clonazepam", "temazepam", "midazolam"},
			Describe:                pair("concurrent CNS depression raises the risk of profound sedation, respiratory depression, and death."),
			Recommendation:          "Avoid co-prescription. If both are required, use the lowest effective doses and counsel on overdose signs.",
			Citation:                "FDA Boxed Warning: Opioid and Benzodiazepine Co-prescription (2016)",
			CitationURL:             "https://www.fda.gov/drugs/drug-safety-and-availability/fda-drug-safety-communication-fda-warns-about-serious-risks-and-death-when-combining-opioid-pain-or",
		},
	}
}
