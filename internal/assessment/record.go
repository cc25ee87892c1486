package assessment

import (
	"time"
)

// Flag classifies a heuristic outcome: GREEN within tolerance, YELLOW
// needs attention or is capped, RED is a serious deviation or
// disallowance. PENDING means nothing has been evaluated yet.
type Flag string

const (
	FlagGreen   Flag = "GREEN"
	FlagYellow  Flag = "YELLOW"
	FlagRed     Flag = "RED"
	FlagPending Flag = "PENDING"
)

// severity orders flags worst-first for aggregation.
var severity = map[Flag]int{
	FlagRed:     3,
	FlagYellow:  2,
	FlagGreen:   1,
	FlagPending: 0,
}

// Worse returns the more severe of two flags.
func Worse(a, b Flag) Flag {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

// OutputType declares how a record's numbers participate in roll-ups.
// Only approved_amount records from primary heuristics are summed into
// a line item's resolved amount.
type OutputType string

const (
	OutputApprovedAmount  OutputType = "approved_amount"
	OutputAssessment      OutputType = "assessment"
	OutputCalculatedValue OutputType = "calculated_value"
	OutputPassThrough     OutputType = "pass_through"
	OutputConditional     OutputType = "conditional"
	OutputPrudenceCheck   OutputType = "prudence_check"
	OutputMixed           OutputType = "mixed"
	OutputDiscretionary   OutputType = "discretionary"
)

// ReviewStatus tracks where a record sits in the staff review workflow.
type ReviewStatus string

const (
	ReviewPending    ReviewStatus = "Pending"
	ReviewAccepted   ReviewStatus = "Accepted"
	ReviewOverridden ReviewStatus = "Overridden"
)

// Record is the standardized result every heuristic produces: the
// claimed versus allowable comparison, the flag, the recommendation,
// the full calculation trace, and the staff review state layered on
// top. Numeric fields are pointers because several heuristics
// legitimately produce no value for them (an assessment of a
// percentage has no recommended amount, an informational calculation
// has no claim).
type Record struct {
	HeuristicID   string `json:"heuristic_id"`
	HeuristicName string `json:"heuristic_name"`
	LineItem      string `json:"line_item"`

	ClaimedValue       *float64 `json:"claimed_value"`
	AllowableValue     *float64 `json:"allowable_value"`
	VarianceAbsolute   *float64 `json:"variance_absolute"`
	VariancePercentage *float64 `json:"variance_percentage"`

	Flag               Flag     `json:"flag"`
	RecommendedAmount  *float64 `json:"recommended_amount"`
	RecommendationText string   `json:"recommendation_text"`
	RegulatoryBasis    string   `json:"regulatory_basis"`

	CalculationSteps []string `json:"calculation_steps"`

	StaffOverrideFlag   *Flag        `json:"staff_override_flag"`
	StaffApprovedAmount *float64     `json:"staff_approved_amount"`
	StaffJustification  string       `json:"staff_justification"`
	StaffReviewStatus   ReviewStatus `json:"staff_review_status"`
	ReviewedBy          string       `json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time   `json:"reviewed_at,omitempty"`

	DependsOn []string `json:"depends_on"`

	IsPrimary  bool       `json:"is_primary"`
	OutputType OutputType `json:"output_type"`
	Note       string     `json:"note,omitempty"`

	// OutputValue carries an intermediate figure that downstream
	// heuristics consume (e.g. a weighted inflation rate).
	OutputValue *float64 `json:"output_value,omitempty"`

	// Details holds heuristic-specific context for drill-downs.
	Details map[string]any `json:"details,omitempty"`
}

// New returns a Record with a pending review state. Heuristics fill
// in everything else; the heuristic ID is the record's identity
// within its line item, so identical inputs always yield identical
// records.
func New(heuristicID, heuristicName, lineItem string) Record {
	return Record{
		HeuristicID:       heuristicID,
		HeuristicName:     heuristicName,
		LineItem:          lineItem,
		StaffReviewStatus: ReviewPending,
		DependsOn:         []string{},
	}
}

// Amount wraps a value for the Record's nullable numeric fields.
func Amount(v float64) *float64 {
	return &v
}

// EffectiveFlag is the staff override when one exists, otherwise the
// computed flag.
func (r *Record) EffectiveFlag() Flag {
	if r.StaffOverrideFlag != nil {
		return *r.StaffOverrideFlag
	}
	return r.Flag
}

// ResolvedAmount is the figure that participates in roll-ups: the
// staff-approved amount when one has been set, otherwise the
// recommendation. Nil means the record contributes nothing.
func (r *Record) ResolvedAmount() *float64 {
	if r.StaffApprovedAmount != nil {
		return r.StaffApprovedAmount
	}
	return r.RecommendedAmount
}

// ResetReview clears the staff review state. Called when a record's
// line item is re-evaluated, so stale sign-offs never survive a
// recomputation.
func (r *Record) ResetReview() {
	r.StaffOverrideFlag = nil
	r.StaffApprovedAmount = nil
	r.StaffJustification = ""
	r.StaffReviewStatus = ReviewPending
	r.ReviewedBy = ""
	r.ReviewedAt = nil
}
