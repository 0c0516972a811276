package contractimport

import (
	"strings"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractparse"
)

const (
	weightContractNumber = 15
	weightCustomerName   = 20
	weightStartDate      = 15
	weightEndDate        = 15
	weightGuards         = 20
	weightSchedules      = 15

	maxScore = 100
)

// ScoreInput lists the facts the confidence score is built from. Values the
// pipeline generated or defaulted do not count as present.
type ScoreInput struct {
	HasContractNumber bool
	HasCustomerName   bool
	HasStartDate      bool
	HasEndDate        bool
	GuardsRequired    int
	SchedulesCreated  int
}

// Score is a completeness heuristic in [0, 100]. Each present fact adds its
// weight independently.
func Score(in ScoreInput) int {
	score := 0
	if in.HasContractNumber {
		score += weightContractNumber
	}
	if in.HasCustomerName {
		score += weightCustomerName
	}
	if in.HasStartDate {
		score += weightStartDate
	}
	if in.HasEndDate {
		score += weightEndDate
	}
	if in.GuardsRequired > 0 {
		score += weightGuards
	}
	if in.SchedulesCreated > 0 {
		score += weightSchedules
	}
	return min(score, maxScore)
}

func scoreInput(f *contractparse.ExtractedFields, schedulesCreated int) ScoreInput {
	in := ScoreInput{
		HasContractNumber: f.ContractNumber != nil && strings.TrimSpace(*f.ContractNumber) != "",
		HasCustomerName:   f.Customer.Name != nil && strings.TrimSpace(*f.Customer.Name) != "",
		HasStartDate:      f.StartDate != nil,
		HasEndDate:        f.EndDate != nil,
		SchedulesCreated:  schedulesCreated,
	}
	if f.GuardsRequired != nil {
		in.GuardsRequired = *f.GuardsRequired
	}
	return in
}
