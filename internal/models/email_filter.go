package models

import (
	"time"

	"github.com/customeros/mailsherpa/mailvalidate"

	er "github.com/DhruvSimform/email-library/internal/errors"
)

// EmailSearchFilter is the provider-agnostic search filter. Every field is
// optional; set fields combine conjunctively when translated into a
// provider's native query grammar. There is no way to express OR or NOT.
type EmailSearchFilter struct {
	FromAddress     string     `json:"from_address,omitempty"`
	ToAddresses     []string   `json:"to_addresses,omitempty"`
	SubjectContains string     `json:"subject_contains,omitempty"`
	BodyContains    string     `json:"body_contains,omitempty"`
	HasWords        []string   `json:"has_words,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	HasAttachments  *bool      `json:"has_attachments,omitempty"`
	IsRead          *bool      `json:"is_read,omitempty"`
}

// NewEmailSearchFilter validates the filter and returns an aliasing-safe
// copy. An inverted date range fails here, never at query time.
func NewEmailSearchFilter(filter EmailSearchFilter) (*EmailSearchFilter, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.ToAddresses = copyStrings(filter.ToAddresses)
	filter.HasWords = copyStrings(filter.HasWords)
	return &filter, nil
}

func (f *EmailSearchFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return er.InvalidFilter("start_date is after end_date")
	}
	if f.FromAddress != "" {
		if syntax := mailvalidate.ValidateEmailSyntax(f.FromAddress); !syntax.IsValid {
			return er.InvalidFilter("from_address is not a valid email address")
		}
	}
	for _, address := range f.ToAddresses {
		if syntax := mailvalidate.ValidateEmailSyntax(address); !syntax.IsValid {
			return er.InvalidFilter("to_addresses contains an invalid email address")
		}
	}
	return nil
}

// IsEmpty reports whether no field is set; an empty filter yields no query
// constraint.
func (f *EmailSearchFilter) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.FromAddress == "" &&
		len(f.ToAddresses) == 0 &&
		f.SubjectContains == "" &&
		f.BodyContains == "" &&
		len(f.HasWords) == 0 &&
		f.StartDate == nil &&
		f.EndDate == nil &&
		f.HasAttachments == nil &&
		f.IsRead == nil
}
