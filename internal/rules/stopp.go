package rules

import (
	"fmt"

	"github.com/medguide-server/internal/domain"
)

const (
	stoppCitation = "STOPP/START criteria for potentially inappropriate prescribing in older people: version 2 (2015)"
	stoppURL      = "https://academic.oup.com/ageing/article/44/2/213/2812233"
)

// stoppStartRules lists STOPP screening rules. These are condition-gated: the
// rule either fires only in a specific clinical context (RequiredConditions)
// or is suppressed when a legitimate indication exists (ExcludedConditions).
func stoppStartRules() []SingleDrugRule {
	return []SingleDrugRule{
		{
			ID:                 "STOPP_FALLS_RISK",
			Title:              "STOPP Criteria: Fall Risk Medication",
			Severity:           domain.HIGH,
			DrugKeywords:       []string{"benzodiazepine", "diazepam", "lorazepam", "zopiclone", "zolpidem", "neuroleptic", "haloperidol", "quetiapine", "olanzapine", "risperidone"},
			RequiredConditions: []string{"fall", "falls", "syncope", "fracture"},
			Describe: func(drug string) string {
				return fmt.Sprintf("%s is sedating and impairs balance in a patient with a documented history of falls.", drug)
			},
			Recommendation: "Review indication and consider withdrawal. Sedatives and neuroleptics should be avoided in patients who have fallen in the past 3 months.",
			Citation:       stoppCitation,
			CitationURL:    stoppURL,
		},
		{
			ID:                 "STOPP_LOOP_DIURETIC_HTN",
			Title:              "STOPP Criteria: Loop Diuretic as First-line Antihypertensive",
			Severity:           domain.MEDIUM,
			DrugKeywords:       []string{"furosemide", "frusemide", "bumetanide", "torsemide", "torasemide"},
			RequiredConditions: []string{"hypertension"},
			ExcludedConditions: []string{"heart failure", "chf", "pulmonary edema", "pulmonary oedema", "fluid overload"},
			Describe: func(drug string) string {
				return fmt.Sprintf("%s is being used for hypertension without evidence of heart failure or fluid overload; safer, more effective antihypertensives are available.", drug)
			},
			Recommendation: "Switch to a thiazide, ACE inhibitor, ARB, or calcium channel blocker unless there is a loop diuretic indication.",
			Citation:       stoppCitation,
			CitationURL:    stoppURL,
		},
		{
			ID:                 "STOPP_VASODILATOR_POSTURAL",
			Title:              "STOPP Criteria: Vasodilator with Postural Hypotension",
			Severity:           domain.HIGH,
			DrugKeywords:       []string{"doxazosin", "prazosin", "terazosin", "hydralazine", "isosorbide", "nitrate", "gtn"},
			RequiredConditions: []string{"postural hypotension", "orthostatic hypotension", "syncope"},
			Describe: func(drug string) string {
				return fmt.Sprintf("%s can precipitate recurrent syncope in a patient with persistent postural hypotension.", drug)
			},
			Recommendation: "Avoid vasodilator drugs where postural drop is consistently >20mmHg systolic; review ongoing need.",
			Citation:       stoppCitation,
			CitationURL:    stoppURL,
		},
		{
			ID:                 "STOPP_ASPIRIN_PUD",
			Title:              "STOPP Criteria: Aspirin with Peptic Ulcer History",
			Severity:           domain.HIGH,
			DrugKeywords:       []string{"aspirin", "cardiprin"},
			RequiredConditions: []string{"peptic ulcer", "gi bleed", "gastrointestinal bleed", "gastric ulcer", "duodenal ulcer"},
			ExcludedConditions: []string{"ppi cover", "on ppi"},
			Describe: func(drug string) string {
				return fmt.Sprintf("%s in a patient with prior peptic ulcer disease or GI bleeding carries a high recurrence risk without gastroprotection.", drug)
			},
			Recommendation: "Add PPI gastroprotection or reassess the antiplatelet indication.",
			Citation:       stoppCitation,
			CitationURL:    stoppURL,
		},
	}
}
