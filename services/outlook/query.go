package outlook

import (
	"fmt"
	"strings"
	"time"

	"github.com/DhruvSimform/email-library/internal/models"
)

// Graph fields valid in both $filter and $orderby. Fields a $filter uses
// must lead the $orderby clause or Graph rejects the request.
var filterableFields = map[string]struct{}{
	"hasAttachments":          {},
	"receivedDateTime":        {},
	"flag/flagStatus":         {},
	"inferenceClassification": {},
}

// flaggedFilter selects flagged messages; it stands in for the starred
// folder, which Graph does not model as a folder.
const flaggedFilter = "flag/flagStatus eq 'flagged'"

// BuildQueryParams translates an EmailSearchFilter into Graph query
// parameters. Structured predicates go to $filter (joined with and),
// free-text predicates go to $search (one token per field), and $orderby is
// derived from the fields the $filter touched so the combination stays
// accepted by Graph.
func BuildQueryParams(filter *models.EmailSearchFilter, specialFilters []string) map[string]string {
	var filterParts []string
	var searchParts []string
	var activeFields []string

	for _, special := range specialFilters {
		filterParts = append(filterParts, special)
		if field, ok := fieldOfPredicate(special); ok {
			activeFields = appendUnique(activeFields, field)
		}
	}

	if filter != nil {
		if filter.FromAddress != "" {
			searchParts = append(searchParts, fmt.Sprintf("from:%s", filter.FromAddress))
		}
		for _, address := range filter.ToAddresses {
			searchParts = append(searchParts, fmt.Sprintf("recipients:%s", address))
		}

		if filter.SubjectContains != "" {
			searchParts = append(searchParts, fmt.Sprintf("subject:%s", filter.SubjectContains))
		}
		if filter.BodyContains != "" {
			searchParts = append(searchParts, filter.BodyContains)
		}
		searchParts = append(searchParts, filter.HasWords...)

		if filter.HasAttachments != nil && *filter.HasAttachments {
			filterParts = append(filterParts, "hasAttachments eq true")
			activeFields = appendUnique(activeFields, "hasAttachments")
		}

		if filter.IsRead != nil {
			if *filter.IsRead {
				filterParts = append(filterParts, "isRead eq true")
			} else {
				filterParts = append(filterParts, "isRead eq false")
			}
		}

		if filter.StartDate != nil {
			filterParts = append(filterParts, fmt.Sprintf("receivedDateTime ge %s", filter.StartDate.UTC().Format(time.RFC3339)))
			activeFields = appendUnique(activeFields, "receivedDateTime")
		}
		if filter.EndDate != nil {
			filterParts = append(filterParts, fmt.Sprintf("receivedDateTime le %s", filter.EndDate.UTC().Format(time.RFC3339)))
			activeFields = appendUnique(activeFields, "receivedDateTime")
		}
	}

	params := make(map[string]string)
	if len(filterParts) > 0 {
		params["$filter"] = strings.Join(filterParts, " and ")
	}
	if len(searchParts) > 0 {
		params["$search"] = fmt.Sprintf("%q", strings.Join(searchParts, " "))
	}
	if orderby := buildOrderBy(activeFields); orderby != "" {
		params["$orderby"] = orderby
	}

	return params
}

// fieldOfPredicate extracts the field name from an OData predicate such as
// "hasAttachments eq true", accepting only catalogued filterable fields.
func fieldOfPredicate(predicate string) (string, bool) {
	field, _, found := strings.Cut(predicate, " ")
	if !found {
		return "", false
	}
	_, ok := filterableFields[field]
	return field, ok
}

// buildOrderBy leads with the active filter fields and always ends with
// receivedDateTime desc for stable sorting. No $orderby is emitted when no
// filterable field is active.
func buildOrderBy(activeFields []string) string {
	if len(activeFields) == 0 {
		return ""
	}

	var fields []string
	for _, field := range activeFields {
		if field != "receivedDateTime" {
			fields = append(fields, field)
		}
	}
	fields = append(fields, "receivedDateTime desc")

	return strings.Join(fields, ",")
}

func appendUnique(fields []string, field string) []string {
	for _, f := range fields {
		if f == field {
			return fields
		}
	}
	return append(fields, field)
}
