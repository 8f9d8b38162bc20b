// Package rules holds the static clinical safety rule catalog: Beers Criteria,
// STOPP/START, drug-disease contraindications, drug-drug interactions, and
// therapeutic duplication classes. The catalog is constructed once at startup,
// validated fail-fast, and never mutated afterwards, so it is safe for
// concurrent reads from any number of evaluations.
package rules

import (
	"github.com/medguide-server/internal/domain"
)

// SingleDrugRule flags one active medication, optionally gated by patient age
// and conditions. Beers, STOPP/START, and drug-disease rules all share this
// shape and the same evaluation path.
//
// DrugKeywords are matched case-insensitively as substrings of the medication
// name. ExcludedConditions suppress the rule when any matches a patient
// condition (the exception path, e.g. loop diuretics are acceptable in heart
// failure). RequiredConditions restrict the rule to a clinical context: at
// least one must match or the rule does not fire. AgeMin of zero means no age
// gate.
type SingleDrugRule struct {
	ID                 string
	Title              string
	Severity           domain.Severity
	DrugKeywords       []string
	AgeMin             int
	RequiredConditions []string
	ExcludedConditions []string
	Describe           func(drug string) string
	Recommendation     string
	Citation           string
	CitationURL        string
}

// InteractionRule flags a pair of concurrently active medications. The first
// drug is matched against DrugKeywords, the second against
// InteractionDrugKeywords; the pairing loop supplies both orderings.
type InteractionRule struct {
	ID                      string
	Title                   string
	Severity                domain.Severity
	DrugKeywords            []string
	InteractionDrugKeywords []string
	Describe                func(drugA, drugB string) string
	Recommendation          string
	Citation                string
	CitationURL             string
}

// DuplicationRule flags two or more active medications in the same
// therapeutic class. ClassKeywords double as the class definition.
type DuplicationRule struct {
	ID             string
	Title          string
	Severity       domain.Severity
	ClassKeywords  []string
	Describe       func(drugs []string) string
	Recommendation string
	Citation       string
	CitationURL    string
}

// Catalog is the immutable rule knowledge base. Construct with NewCatalog.
type Catalog struct {
	single      []SingleDrugRule
	interaction []InteractionRule
	duplication []DuplicationRule
}

// NewCatalog assembles and validates the full rule catalog. A malformed rule
// definition fails construction with a domain.RuleDefinitionError so the
// process dies at load time, never mid-evaluation.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{}
	c.single = append(c.single, beersRules()...)
	c.single = append(c.single, stoppStartRules()...)
	c.single = append(c.single, drugDiseaseRules()...)
	c.interaction = interactionRules()
	c.duplication = duplicationRules()

	seen := make(map[string]bool, c.Size())
	check := func(id string) error {
		if id == "" {
			return domain.NewRuleDefinitionError(id, "rule id is required")
		}
		if seen[id] {
			return domain.NewRuleDefinitionError(id, "duplicate rule id")
		}
		seen[id] = true
		return nil
	}

	for i := range c.single {
		r := &c.single[i]
		if err := check(r.ID); err != nil {
			return nil, err
		}
		if err := validateSingle(r); err != nil {
			return nil, err
		}
	}
	for i := range c.interaction {
		r := &c.interaction[i]
		if err := check(r.ID); err != nil {
			return nil, err
		}
		if err := validateInteraction(r); err != nil {
			return nil, err
		}
	}
	for i := range c.duplication {
		r := &c.duplication[i]
		if err := check(r.ID); err != nil {
			return nil, err
		}
		if err := validateDuplication(r); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// SingleDrug returns the single-drug rules in declaration order.
func (c *Catalog) SingleDrug() []SingleDrugRule {
	return c.single
}

// Interactions returns the drug-drug interaction rules in declaration order.
func (c *Catalog) Interactions() []InteractionRule {
	return c.interaction
}

// Duplications returns the therapeutic duplication rules in declaration order.
func (c *Catalog) Duplications() []DuplicationRule {
	return c.duplication
}

// Size returns the total number of rules across all categories.
func (c *Catalog) Size() int {
	return len(c.single) + len(c.interaction) + len(c.duplication)
}

func validateSingle(r *SingleDrugRule) error {
	if r.Title == "" {
		return domain.NewRuleDefinitionError(r.ID, "title is required")
	}
	if !r.Severity.IsValid() {
		return domain.NewRuleDefinitionError(r.ID, "invalid severity")
	}
	if len(r.DrugKeywords) == 0 {
		return domain.NewRuleDefinitionError(r.ID, "at least one drug keyword is required")
	}
	if r.Describe == nil {
		return domain.NewRuleDefinitionError(r.ID, "description template is required")
	}
	if r.AgeMin < 0 {
		return domain.NewRuleDefinitionError(r.ID, "age minimum must not be negative")
	}
	return nil
}

func validateInteraction(r *InteractionRule) error {
	if r.Title == "" {
		return domain.NewRuleDefinitionError(r.ID, "title is required")
	}
	if !r.Severity.IsValid() {
		return domain.NewRuleDefinitionError(r.ID, "invalid severity")
	}
	if len(r.DrugKeywords) == 0 {
		return domain.NewRuleDefinitionError(r.ID, "at least one drug keyword is required")
	}
	if len(r.InteractionDrugKeywords) == 0 {
		return domain.NewRuleDefinitionError(r.ID, "interaction rules require a second drug keyword set")
	}
	if r.Describe == nil {
		return domain.NewRuleDefinitionError(r.ID, "description template is required")
	}
	return nil
}

func validateDuplication(r *DuplicationRule) error {
	if r.Title == "" {
		return domain.NewRuleDefinitionError(r.ID, "title is required")
	}
	if !r.Severity.IsValid() {
		return domain.NewRuleDefinitionError(r.ID, "invalid severity")
	}
	if len(r.ClassKeywords) == 0 {
		return domain.NewRuleDefinitionError(r.ID, "duplication rules require class keywords")
	}
	if r.Describe == nil {
		return domain.NewRuleDefinitionError(r.ID, "description template is required")
	}
	return nil
}
