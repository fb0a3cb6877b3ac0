package resolve

import (
	"gopkg.in/yaml.v3"
)

// Plan is the reviewable summary of a resolution session.
type Plan struct {
	Methods     []PlanMethod `yaml:"methods"`
	Diagnostics []string     `yaml:"diagnostics,omitempty"`
}

// PlanMethod summarizes one generated method body.
type PlanMethod struct {
	Name     string   `yaml:"name"`
	Source   string   `yaml:"source"`
	Target   string   `yaml:"target"`
	Strategy string   `yaml:"strategy"`
	Forged   bool     `yaml:"forged,omitempty"`
	Update   bool     `yaml:"update,omitempty"`
	Errors   []string `yaml:"errors,omitempty"`
	Complete bool     `yaml:"complete"`
}

// ExportPlan builds the summary of a finished session, for human review.
func ExportPlan(r *Resolver) *Plan {
	plan := &Plan{}

	for _, body := range r.Bodies() {
		pm := PlanMethod{
			Name:     body.Method.Name,
			Source:   body.Method.Source().GoString(),
			Target:   body.Method.Result.GoString(),
			Forged:   body.Method.Forged,
			Update:   body.Method.Update,
			Errors:   body.Method.Thrown(),
			Complete: body.Complete,
		}

		if body.Assignment != nil {
			pm.Strategy = body.Assignment.Kind.String()
		}

		plan.Methods = append(plan.Methods, pm)
	}

	for _, d := range r.Diags.Errors {
		plan.Diagnostics = append(plan.Diagnostics, d.String())
	}

	for _, d := range r.Diags.Warnings {
		plan.Diagnostics = append(plan.Diagnostics, d.String())
	}

	return plan
}

// ExportPlanYAML renders the session summary as YAML.
func ExportPlanYAML(r *Resolver) ([]byte, error) {
	return yaml.Marshal(ExportPlan(r))
}
