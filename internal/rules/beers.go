package rules

import (
	"fmt"

	"github.com/medguide-server/internal/domain"
)

const (
	beersCitation = "American Geriatrics Society 2023 Updated AGS Beers Criteria"
	beersURL      = "https://agsjournals.onlinelibrary.wiley.com/doi/10.1111/jgs.18372"
)

// beersRules lists medications considered potentially inappropriate for older
// adults. All entries are age-gated at 65.
func beersRules() []SingleDrugRule {
	return []SingleDrugRule{
		{
			ID:           "BEERS_PPI_ELDERLY",
			Title:        "Beers Criteria: Proton Pump Inhibitors (PPI)",
			Severity:     domain.MEDIUM,
			DrugKeywords: []string{"omeprazole", "pantoprazole", "lansoprazole", "esomeprazole", "rabeprazole", "dexlansoprazole"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return fmt.Sprintf("Long-term use of %s in older adults is associated with C. difficile infection, bone loss, and fractures.", drug)
			},
			Recommendation: "Avoid use >8 weeks unless for high-risk patients (e.g., oral corticosteroids, chronic NSAID use), erosive esophagitis, or pathological hypersecretory condition.",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
		{
			ID:           "BEERS_NSAIDS_ELDERLY",
			Title:        "Beers Criteria: NSAID Usage",
			Severity:     domain.HIGH,
			DrugKeywords: []string{"ibuprofen", "naproxen", "diclofenac", "ketorolac", "indomethacin", "meloxicam", "ketoprofen", "celecoxib", "etoricoxib"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return fmt.Sprintf("Use of %s increases risk of GI bleeding and peptic ulcer disease in older adults.", drug)
			},
			Recommendation: "Avoid chronic use. If necessary, use lowest effective dose for shortest duration and provide gastroprotection (PPI or Misoprostol).",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
		{
			ID:           "BEERS_BENZOS",
			Title:        "Beers Criteria: Benzodiazepines",
			Severity:     domain.HIGH,
			DrugKeywords: []string{"diazepam", "lorazepam", "alprazolam", "clonazepam", "temazepam", "midazolam", "triazolam"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return fmt.Sprintf("Older adults have increased sensitivity to benzodiazepines like %s and decreased metabolism of long-acting agents. Increases risk of cognitive impairment, delirium, falls, fractures.", drug)
			},
			Recommendation: "Avoid use for treatment of insomnia, agitation, or delirium.",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
		{
			ID:           "BEERS_ANTICHOLINERGIC",
			Title:        "Beers Criteria: Anticholinergics",
			Severity:     domain.MEDIUM,
			DrugKeywords: []string{"diphenhydramine", "chlorpheniramine", "hydroxyzine", "promethazine", "amitriptyline", "nortriptyline", "doxepin"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return fmt.Sprintf("%s is highly anticholinergic; risk of confusion, dry mouth, constipation, and toxicity.", drug)
			},
			Recommendation: "Avoid. Use non-anticholinergic alternatives.",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
		{
			ID:           "BEERS_SULFONYLUREAS",
			Title:        "Beers Criteria: Long-acting Sulfonylureas",
			Severity:     domain.HIGH,
			DrugKeywords: []string{"glimepiride", "glyburide", "glibenclamide", "chlorpropamide"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return fmt.Sprintf("%s has a prolonged half-life and carries a high risk of prolonged hypoglycemia in older adults.", drug)
			},
			Recommendation: "Avoid. Use shorter-acting agents like Glipizide or alternative classes (e.g., Metformin, DPP-4 inhibitors).",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
		{
			ID:           "BEERS_TRAMADOL",
			Title:        "Beers Criteria: Tramadol",
			Severity:     domain.MEDIUM,
			DrugKeywords: []string{"tramadol"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return fmt.Sprintf("%s is associated with increased risk of hyponatremia and SIADH in older adults.", drug)
			},
			Recommendation: "Monitor sodium levels closely upon initiation or dose changes.",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
		{
			ID:           "BEERS_SLIDING_SCALE",
			Title:        "Beers Criteria: Sliding Scale Insulin",
			Severity:     domain.HIGH,
			DrugKeywords: []string{"sliding scale", "insulin sliding", "actrapid", "humulin r"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return "Sliding scale insulin regimens provide reactive rather than physiologic glucose control and increase risk of hypoglycemia/hyperglycemia."
			},
			Recommendation: "Avoid. Use basal-bolus insulin regimens.",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
		{
			ID:           "BEERS_ALPHA_BLOCKERS",
			Title:        "Beers Criteria: Alpha-1 Blockers",
			Severity:     domain.MEDIUM,
			DrugKeywords: []string{"doxazosin", "prazosin", "terazosin"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return fmt.Sprintf("%s has high risk of orthostatic hypotension in older adults.", drug)
			},
			Recommendation: "Avoid use as an antihypertensive.",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
		{
			ID:           "BEERS_DIGOXIN",
			Title:        "Beers Criteria: Digoxin",
			Severity:     domain.MEDIUM,
			DrugKeywords: []string{"digoxin", "lanoxin"},
			AgeMin:       65,
			Describe: func(drug string) string {
				return "Digoxin should generally be avoided as first-line for AF/HF. Dosages > 0.125mg/day increase toxicity risk in elderly due to decreased renal clearance."
			},
			Recommendation: "Avoid dosages > 0.125mg/day. Monitor levels.",
			Citation:       beersCitation,
			CitationURL:    beersURL,
		},
	}
}
