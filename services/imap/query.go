package imap

import (
	goimap "github.com/emersion/go-imap"

	"github.com/DhruvSimform/email-library/internal/models"
	"github.com/DhruvSimform/email-library/internal/utils"
)

// BuildSearchCriteria translates an EmailSearchFilter into IMAP SEARCH
// criteria. IMAP SINCE/BEFORE only carry dates, so date bounds are floored
// to whole days: SINCE is the start of the start day and BEFORE is the start
// of the day after the end day, which keeps both bounds inclusive.
//
// HasAttachments is not expressible in SEARCH; the provider post-filters
// fetched summaries instead.
func BuildSearchCriteria(filter *models.EmailSearchFilter) *goimap.SearchCriteria {
	criteria := goimap.NewSearchCriteria()
	if filter == nil || filter.IsEmpty() {
		return criteria
	}

	if filter.FromAddress != "" {
		criteria.Header.Add("From", filter.FromAddress)
	}
	for _, address := range filter.ToAddresses {
		criteria.Header.Add("To", address)
	}

	if filter.SubjectContains != "" {
		criteria.Header.Add("Subject", filter.SubjectContains)
	}
	if filter.BodyContains != "" {
		criteria.Body = append(criteria.Body, filter.BodyContains)
	}
	for _, word := range filter.HasWords {
		criteria.Text = append(criteria.Text, word)
	}

	if filter.IsRead != nil {
		if *filter.IsRead {
			criteria.WithFlags = append(criteria.WithFlags, goimap.SeenFlag)
		} else {
			criteria.WithoutFlags = append(criteria.WithoutFlags, goimap.SeenFlag)
		}
	}

	if filter.StartDate != nil {
		criteria.Since = utils.StartOfDay(*filter.StartDate)
	}
	if filter.EndDate != nil {
		criteria.Before = utils.StartOfDay(*filter.EndDate).AddDate(0, 0, 1)
	}

	return criteria
}

// withFlagged narrows criteria to flagged messages; it backs the starred
// folder, which IMAP does not model as a mailbox.
func withFlagged(criteria *goimap.SearchCriteria) *goimap.SearchCriteria {
	criteria.WithFlags = append(criteria.WithFlags, goimap.FlaggedFlag)
	return criteria
}
