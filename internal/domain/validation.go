package domain

import "unicode/utf8"

// SourceSnapshot is what the store knows about a draft's text and source at
// validation time.
type SourceSnapshot struct {
	TextTaken   bool
	SourceCount int
}

// ValidateQuoteDraft applies the creation rules to a normalized draft. It
// touches no storage; the caller supplies the snapshot.
func ValidateQuoteDraft(d QuoteDraft, snap SourceSnapshot) error {
	var errs ValidationErrors

	switch {
	case d.Text == "":
		errs = append(errs, &ValidationError{Field: "text", Message: "is required"})
	case snap.TextTaken:
		errs = append(errs, &ValidationError{Field: "text", Message: "a quote with this text already exists"})
	}

	switch {
	case d.Source == "":
		errs = append(errs, &ValidationError{Field: "source", Message: "is required"})
	case utf8.RuneCountInString(d.Source) > MaxSourceLength:
		errs = append(errs, &ValidationError{
			Field:   "source",
			Message: "must be at most 255 characters",
			Value:   utf8.RuneCountInString(d.Source),
		})
	case snap.SourceCount >= MaxQuotesPerSource:
		errs = append(errs, &ValidationError{
			Field:   "source",
			Message: "source already has 3 quotes",
			Value:   d.Source,
		})
	}

	switch {
	case d.Weight < MinWeight:
		errs = append(errs, &ValidationError{Field: "weight", Message: "must be at least 1", Value: d.Weight})
	case d.Weight > MaxWeight:
		errs = append(errs, &ValidationError{Field: "weight", Message: "must be at most 10", Value: d.Weight})
	}

	return errs.ErrOrNil()
}
