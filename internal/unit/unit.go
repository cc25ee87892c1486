// Package unit models the three strategic business units whose revenue
// requirements are trued up separately: Generation (SBU-G),
// Transmission (SBU-T) and Distribution (SBU-D). Each unit carries an
// ordered roster of line items and rolls them up into a net revenue
// requirement, where non-tariff income is deducted rather than added.
package unit

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gridreg/trueup-cli/internal/assessment"
	"github.com/gridreg/trueup-cli/internal/lineitem"
)

// Unit is the surface every SBU exposes to the commands and the report
// writer. The concrete types add nothing to it except loss analysis,
// which only Transmission and Distribution carry.
type Unit interface {
	Code() string
	Name() string
	Items() []*lineitem.Item
	Item(key string) (*lineitem.Item, error)
	NetRequirement() float64
	Ready() bool
	Summary() Summary
	DrillDown(key string) ([]assessment.Record, error)
	PendingReviews() []PendingReview
}

// LossAnalyzer marks the units that assess network losses alongside
// their revenue requirement. Loss records sit beside the ARR and never
// enter the roll-up.
type LossAnalyzer interface {
	RecordLossAnalysis(records ...assessment.Record)
	LossRecords() []assessment.Record
}

type entry struct {
	item    *lineitem.Item
	expense bool
}

// SBU is the shared core of the three units.
type SBU struct {
	code    string
	name    string
	entries []entry
}

// Generation is SBU-G. Its roster is fuel plus the shared cost items;
// it has no loss analysis of its own.
type Generation struct {
	SBU
}

// Transmission is SBU-T. Besides its roster it assesses transmission
// losses and the T&D reward.
type Transmission struct {
	SBU
	loss []assessment.Record
}

// Distribution is SBU-D, the largest unit: upstream transfers, power
// purchase, its own seven-part interest block, and distribution loss
// analysis with gain sharing.
type Distribution struct {
	SBU
	loss []assessment.Record
}

func (t *Transmission) RecordLossAnalysis(records ...assessment.Record) {
	t.loss = append([]assessment.Record(nil), records...)
}

func (t *Transmission) LossRecords() []assessment.Record { return t.loss }

func (d *Distribution) RecordLossAnalysis(records ...assessment.Record) {
	d.loss = append([]assessment.Record(nil), records...)
}

func (d *Distribution) LossRecords() []assessment.Record { return d.loss }

func (u *SBU) Code() string { return u.code }
func (u *SBU) Name() string { return u.name }

// Items returns the roster in display order.
func (u *SBU) Items() []*lineitem.Item {
	items := make([]*lineitem.Item, len(u.entries))
	for i, e := range u.entries {
		items[i] = e.item
	}
	return items
}

func (u *SBU) Item(key string) (*lineitem.Item, error) {
	for _, e := range u.entries {
		if e.item.Key == key {
			return e.item, nil
		}
	}
	return nil, eris.Errorf("unit: SBU-%s has no line item %q", u.code, key)
}

// NetRequirement is the net ARR: expense items add, income items
// deduct. Items not yet evaluated contribute nothing.
func (u *SBU) NetRequirement() float64 {
	total := 0.0
	for _, e := range u.entries {
		amt := e.item.ResolvedAmount()
		if amt == nil {
			continue
		}
		if e.expense {
			total += *amt
		} else {
			total -= *amt
		}
	}
	return math.Round(total*100) / 100
}

// Ready reports whether the unit's requirement can be carried forward:
// every line item must have a complete staff review.
func (u *SBU) Ready() bool {
	for _, e := range u.entries {
		if !e.item.ReviewStatus().Complete {
			return false
		}
	}
	return true
}

// DrillDown returns the individual assessment records behind one line
// item.
func (u *SBU) DrillDown(key string) ([]assessment.Record, error) {
	item, err := u.Item(key)
	if err != nil {
		return nil, err
	}
	return item.Records(), nil
}

// PendingReview identifies one record still waiting on staff action.
type PendingReview struct {
	ItemKey  string            `json:"item_key"`
	ItemName string            `json:"item_name"`
	Record   assessment.Record `json:"record"`
}

// PendingReviews lists every record across the roster that staff have
// not yet acted on, in roster order.
func (u *SBU) PendingReviews() []PendingReview {
	var pending []PendingReview
	for _, e := range u.entries {
		for _, r := range e.item.Records() {
			if r.StaffReviewStatus == assessment.ReviewPending {
				pending = append(pending, PendingReview{
					ItemKey:  e.item.Key,
					ItemName: e.item.Name,
					Record:   r,
				})
			}
		}
	}
	return pending
}

// ItemSummary is one roster line in a unit summary.
type ItemSummary struct {
	Key     string                `json:"key"`
	Name    string                `json:"name"`
	Pattern lineitem.Pattern      `json:"pattern"`
	Expense bool                  `json:"is_expense"`
	Flag    assessment.Flag       `json:"flag"`
	Amount  *float64              `json:"approved_amount,omitempty"`
	Review  lineitem.ReviewStatus `json:"review"`
}

// Summary is the roll-up view of a unit: the roster with per-item
// flags and amounts, flag counts, and the net requirement.
type Summary struct {
	Code           string                  `json:"sbu_code"`
	Name           string                  `json:"sbu_name"`
	NetRequirement float64                 `json:"net_requirement_cr"`
	Ready          bool                    `json:"ready"`
	FlagCounts     map[assessment.Flag]int `json:"flag_counts"`
	Items          []ItemSummary           `json:"items"`
}

func (u *SBU) Summary() Summary {
	s := Summary{
		Code:           u.code,
		Name:           u.name,
		NetRequirement: u.NetRequirement(),
		Ready:          u.Ready(),
		FlagCounts:     map[assessment.Flag]int{},
	}
	for _, e := range u.entries {
		flag := e.item.OverallFlag()
		s.FlagCounts[flag]++
		s.Items = append(s.Items, ItemSummary{
			Key:     e.item.Key,
			Name:    e.item.Name,
			Pattern: e.item.Pattern,
			Expense: e.expense,
			Flag:    flag,
			Amount:  e.item.ResolvedAmount(),
			Review:  e.item.ReviewStatus(),
		})
	}
	return s
}

// Codes lists the unit codes in evaluation order. Distribution comes
// last because it consumes the other two units' approved transfers.
func Codes() []string { return []string{"G", "T", "D"} }

// ForCode builds a fresh unit for a code, case-insensitively.
func ForCode(code string) (Unit, error) {
	switch strings.ToUpper(code) {
	case "G":
		return NewGeneration(), nil
	case "T":
		return NewTransmission(), nil
	case "D":
		return NewDistribution(), nil
	default:
		return nil, eris.Errorf("unit: unknown SBU code %q (want G, T or D)", code)
	}
}
