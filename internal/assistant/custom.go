package assistant

import "strings"

// matchCustom returns the reply text of the first custom response whose
// trigger is a case-insensitive substring of the query. The collection
// is priority-sorted, so first match is the highest-priority match.
func matchCustom(query string, responses []CustomResponse) (string, bool) {
	q := strings.ToLower(query)
	for _, cr := range responses {
		if cr.Trigger == "" {
			continue
		}
		if strings.Contains(q, strings.ToLower(cr.Trigger)) {
			return cr.Response, true
		}
	}
	return "", false
}
