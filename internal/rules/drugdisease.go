package rules

import (
	"fmt"

	"github.com/medguide-server/internal/domain"
)

// drugDiseaseRules lists medications inappropriate in the presence of a
// specific patient condition. They share the single-drug evaluation path;
// RequiredConditions carries the disease context.
func drugDiseaseRules() []SingleDrugRule {
	return []SingleDrugRule{
		{
			ID:                 "DD_NSAID_CKD",
			Title:              "Drug-Disease: NSAID in Chronic Kidney Disease",
			Severity:           domain.HIGH,
			DrugKeywords:       []string{"ibuprofen", "naproxen", "diclofenac", "ketorolac", "indomethacin", "meloxicam", "celecoxib", "etoricoxib", "nsaid"},
			RequiredConditions: []string{"ckd", "chronic kidney disease", "renal impairment", "renal failure", "nephropathy"},
			Describe: func(drug string) string {
				return fmt.Sprintf("%s may further reduce renal perfusion and accelerate kidney function decline in chronic kidney disease.", drug)
			},
			Recommendation: "Avoid NSAIDs in CKD stage 3 or worse. Use paracetamol or topical agents for analgesia.",
			Citation:       "KDIGO 2024 Clinical Practice Guideline for CKD",
			CitationURL:    "https://kdigo.org/guidelines/ckd-evaluation-and-management/",
		},
		{
			ID:                 "DD_METFORMIN_CKD",
			Title:              "Drug-Disease: Metformin in Advanced Renal Impairment",
			Severity:           domain.HIGH,
			DrugKeywords:       []string{"metformin", "glucophage"},
			RequiredConditions: []string{"ckd stage 4", "ckd stage 5", "egfr <30", "renal failure", "esrf", "esrd", "dialysis"},
			Describe: func(drug string) string {
				return fmt.Sprintf("%s accumulates in advanced renal impairment and increases the risk of lactic acidosis.", drug)
			},
			Recommendation: "Contraindicated when eGFR <30 mL/min/1.73m2. Switch to an agent cleared for advanced CKD (e.g., insulin, linagliptin).",
			Citation:       "FDA Drug Safety Communication: Metformin in Renal Impairment (2016)",
			CitationURL:    "https://www.fda.gov/drugs/drug-safety-and-availability/fda-drug-safety-communication-fda-revises-warnings-regarding-use-diabetes-medicine-metformin-certain",
		},
		{
			ID:                 "DD_NSAID_HF",
			Title:              "Drug-Disease: NSAID in Heart Failure",
			Severity:           domain.HIGH,
			DrugKeywords:       []string{"ibuprofen", "naproxen", "diclofenac", "ketorolac", "indomethacin", "meloxicam", "celecoxib", "etoricoxib", "nsaid"},
			RequiredConditions: []string{"heart failure", "chf", "cardiomyopathy", "reduced ejection fraction"},
			Describe: func(drug string) string {
				return fmt.Sprintf("%s promotes sodium and fluid retention and can precipitate decompensation in heart failure.", drug)
			},
			Recommendation: "Avoid. If analgesia is required, prefer paracetamol or short-course topical NSAIDs.",
			Citation:       "2022 AHA/ACC/HFSA Guideline for the Management of Heart Failure",
			CitationURL:    "https://www.ahajournals.org/doi/10.1161/CIR.0000000000001063",
		},
		{
			ID:                 "DD_ANTICHOLINERGIC_DEMENTIA",
			Title:              "Drug-Disease: Anticholinergic in Cognitive Impairment",
			Severity:           domain.MEDIUM,
			DrugKeywords:       []string{"diphenhydramine", "chlorpheniramine", "hydroxyzine", "amitriptyline", "oxybutynin", "promethazine"},
			RequiredConditions: []string{"dementia", "cognitive impairment", "delirium", "alzheimer"},
			Describe: func(drug string) string {
				return fmt.Sprintf("%s has significant anticholinergic burden and can worsen cognition and precipitate delirium in patients with dementia.", drug)
			},
			Recommendation: "Avoid. Review total anticholinergic burden and choose alternatives with minimal CNS effect.",
			Citation:       "American Geriatrics Society 2023 Updated AGS Beers Criteria",
			CitationURL:    "https://agsjournals.onlinelibrary.wiley.com/doi/10.1111/jgs.18372",
		},
	}
}
