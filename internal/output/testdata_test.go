package output

import "mdcheck/internal/checks"

func passResult(object, checkID string) checks.Result {
	return checks.Result{Object: object, CheckID: checkID, Status: checks.StatusPass}
}

func failResult(object, checkID string, sev checks.Severity, messages ...string) checks.Result {
	r := checks.Result{Object: object, CheckID: checkID, Status: checks.StatusFail}
	for _, m := range messages {
		r.Issues = append(r.Issues, checks.Issue{
			CheckID:  checkID,
			Object:   object,
			Kind:     "Catalog",
			Feature:  "name",
			Message:  m,
			Severity: sev,
			Type:     checks.TypeCodeStyle,
		})
	}
	return r
}
