package assessment

import (
	"time"

	"github.com/rotisserie/eris"
)

// Review actions mutate a record's staff section. Each action
// validates everything it needs before touching the record, so a
// rejected action leaves the record exactly as it was.

// Accept marks the record's computed result as reviewed and agreed.
func (r *Record) Accept(reviewer string) error {
	if reviewer == "" {
		return eris.New("assessment: accept requires a reviewer name")
	}

	r.StaffReviewStatus = ReviewAccepted
	r.stamp(reviewer)
	return nil
}

// OverrideFlag replaces the computed flag with the reviewer's own.
// A justification is mandatory: the override survives into reports
// and the reasoning must travel with it.
func (r *Record) OverrideFlag(reviewer, justification string, flag Flag) error {
	if reviewer == "" {
		return eris.New("assessment: flag override requires a reviewer name")
	}
	if justification == "" {
		return eris.New("assessment: flag override requires a justification")
	}
	if flag != FlagGreen && flag != FlagYellow && flag != FlagRed {
		return eris.Errorf("assessment: invalid override flag %q", flag)
	}

	r.StaffOverrideFlag = &flag
	r.StaffJustification = justification
	r.StaffReviewStatus = ReviewOverridden
	r.stamp(reviewer)
	return nil
}

// OverrideAmount replaces the recommended amount with a
// staff-approved figure. The staff amount takes precedence in every
// roll-up from then on.
func (r *Record) OverrideAmount(reviewer, justification string, amount float64) error {
	if reviewer == "" {
		return eris.New("assessment: amount override requires a reviewer name")
	}
	if justification == "" {
		return eris.New("assessment: amount override requires a justification")
	}

	r.StaffApprovedAmount = &amount
	r.StaffJustification = justification
	r.StaffReviewStatus = ReviewOverridden
	r.stamp(reviewer)
	return nil
}

// AddRemarks records reviewer remarks against the record and marks it
// accepted without disturbing the computed numbers.
func (r *Record) AddRemarks(reviewer, remarks string) error {
	if reviewer == "" {
		return eris.New("assessment: remarks require a reviewer name")
	}

	r.StaffJustification = remarks
	r.StaffReviewStatus = ReviewAccepted
	r.stamp(reviewer)
	return nil
}

func (r *Record) stamp(reviewer string) {
	now := time.Now()
	r.ReviewedBy = reviewer
	r.ReviewedAt = &now
}
