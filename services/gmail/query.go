package gmail

import (
	"fmt"
	"strings"

	"github.com/DhruvSimform/email-library/internal/models"
)

// BuildQuery translates an EmailSearchFilter into Gmail search syntax. Each
// set field yields exactly one token (per recipient / keyword); Gmail joins
// tokens with implicit AND. Date bounds use epoch seconds, which Gmail's
// after:/before: operators accept at full precision.
func BuildQuery(filter *models.EmailSearchFilter) string {
	if filter.IsEmpty() {
		return ""
	}

	var query []string

	if filter.FromAddress != "" {
		query = append(query, fmt.Sprintf("from:%s", filter.FromAddress))
	}
	for _, address := range filter.ToAddresses {
		query = append(query, fmt.Sprintf("to:%s", address))
	}

	if filter.SubjectContains != "" {
		query = append(query, fmt.Sprintf("subject:%s", filter.SubjectContains))
	}
	if filter.BodyContains != "" {
		query = append(query, filter.BodyContains)
	}
	query = append(query, filter.HasWords...)

	if filter.HasAttachments != nil && *filter.HasAttachments {
		query = append(query, "has:attachment")
	}

	if filter.IsRead != nil {
		if *filter.IsRead {
			query = append(query, "is:read")
		} else {
			query = append(query, "is:unread")
		}
	}

	if filter.StartDate != nil {
		query = append(query, fmt.Sprintf("after:%d", filter.StartDate.Unix()))
	}
	if filter.EndDate != nil {
		query = append(query, fmt.Sprintf("before:%d", filter.EndDate.Unix()))
	}

	return strings.Join(query, " ")
}
