// Package lineitem groups the assessment records belonging to one ARR
// line item and derives the item-level view: the approved amount, the
// overall flag, and the review completion state. An item holds one
// record (single), several (multi), or a pass-through with no
// heuristic at all (none).
package lineitem

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/gridreg/trueup-cli/internal/assessment"
)

// Pattern describes how many heuristics feed a line item.
type Pattern string

const (
	PatternSingle Pattern = "single"
	PatternMulti  Pattern = "multi"
	PatternNone   Pattern = "none"
)

// Item is one line of the revenue requirement. Records are replaced
// wholesale on each evaluation; review state never survives a
// re-evaluation.
type Item struct {
	Key     string
	Name    string
	Pattern Pattern

	records []assessment.Record
}

// New returns an empty item. Its flag reads PENDING until the first
// evaluation.
func New(key, name string, pattern Pattern) *Item {
	return &Item{Key: key, Name: name, Pattern: pattern}
}

// Evaluate replaces the item's records with a fresh evaluation. Any
// staff review state on the incoming records is cleared so stale
// sign-offs cannot leak into the new results.
func (it *Item) Evaluate(records ...assessment.Record) {
	it.records = make([]assessment.Record, len(records))
	copy(it.records, records)
	for i := range it.records {
		it.records[i].ResetReview()
	}
}

// Records returns the current evaluation results.
func (it *Item) Records() []assessment.Record {
	return it.records
}

// Record returns a mutable reference to the record with the given
// heuristic ID, for review actions.
func (it *Item) Record(heuristicID string) (*assessment.Record, error) {
	for i := range it.records {
		if it.records[i].HeuristicID == heuristicID {
			return &it.records[i], nil
		}
	}
	return nil, eris.Errorf("lineitem: no record %q on %q", heuristicID, it.Key)
}

// Primary is the record that determines the approved amount: the first
// record marked primary, or the first record when none is marked.
func (it *Item) Primary() *assessment.Record {
	for i := range it.records {
		if it.records[i].IsPrimary {
			return &it.records[i]
		}
	}
	if len(it.records) > 0 {
		return &it.records[0]
	}
	return nil
}

// ResolvedAmount is the item's approved amount. Staff-approved amounts
// take precedence over recommendations record by record. Multi items
// sum every primary approved_amount record; when no record qualifies,
// the primary record's amount stands in.
func (it *Item) ResolvedAmount() *float64 {
	if len(it.records) == 0 {
		return nil
	}

	if it.Pattern == PatternMulti {
		total := 0.0
		hasAny := false
		for i := range it.records {
			r := &it.records[i]
			if !r.IsPrimary || r.OutputType != assessment.OutputApprovedAmount {
				continue
			}
			if v := r.ResolvedAmount(); v != nil {
				total += *v
				hasAny = true
			}
		}
		if hasAny {
			return assessment.Amount(total)
		}
	}

	primary := it.Primary()
	if primary == nil {
		return nil
	}
	return primary.ResolvedAmount()
}

// OverallFlag is the worst effective flag across the item's records,
// PENDING when nothing has been evaluated.
func (it *Item) OverallFlag() assessment.Flag {
	if len(it.records) == 0 {
		return assessment.FlagPending
	}
	overall := assessment.FlagPending
	for i := range it.records {
		overall = assessment.Worse(overall, it.records[i].EffectiveFlag())
	}
	return overall
}

// ReviewStatus summarizes where the item's records sit in the staff
// review workflow.
type ReviewStatus struct {
	Total      int  `json:"total"`
	Pending    int  `json:"pending"`
	Accepted   int  `json:"accepted"`
	Overridden int  `json:"overridden"`
	Complete   bool `json:"complete"`
}

// ReviewStatus counts records by review state. Complete means every
// record has been acted on; an empty item is never complete.
func (it *Item) ReviewStatus() ReviewStatus {
	st := ReviewStatus{Total: len(it.records)}
	for i := range it.records {
		switch it.records[i].StaffReviewStatus {
		case assessment.ReviewPending:
			st.Pending++
		case assessment.ReviewAccepted:
			st.Accepted++
		case assessment.ReviewOverridden:
			st.Overridden++
		}
	}
	st.Complete = st.Total > 0 && st.Pending == 0
	return st
}

// TransferRecord builds the pass-through record for an upstream
// transfer item: the amount approved in the source unit's own chapter
// is accepted without re-evaluation.
func TransferRecord(sourceUnit string, claimed, approved float64) assessment.Record {
	r := assessment.New(
		fmt.Sprintf("SBU-%s-TRANSFER", sourceUnit),
		fmt.Sprintf("Transfer from SBU-%s", sourceUnit),
		fmt.Sprintf("Transfer from SBU-%s", sourceUnit),
	)
	r.ClaimedValue = assessment.Amount(claimed)
	r.AllowableValue = assessment.Amount(approved)
	r.Flag = assessment.FlagGreen
	r.RecommendedAmount = assessment.Amount(approved)
	r.RecommendationText = fmt.Sprintf("Accept SBU-%s approved amount of ₹%.2f Cr.", sourceUnit, approved)
	r.CalculationSteps = []string{
		fmt.Sprintf("Transfer from SBU-%s: ₹%.2f Cr", sourceUnit, approved),
		fmt.Sprintf("(Approved in the SBU-%s chapter - not re-evaluated here)", sourceUnit),
	}
	r.IsPrimary = true
	r.OutputType = assessment.OutputPassThrough
	return r
}
