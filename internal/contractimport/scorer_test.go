package contractimport_test

import (
	"testing"

	"github.com/Vietanh2703/BASMS-BE-sub000/internal/contractimport"

	"github.com/stretchr/testify/assert"
)

func TestScore_Weights(t *testing.T) {
	tests := []struct {
		name string
		in   contractimport.ScoreInput
		want int
	}{
		{name: "nothing", want: 0},
		{name: "number", in: contractimport.ScoreInput{HasContractNumber: true}, want: 15},
		{name: "name", in: contractimport.ScoreInput{HasCustomerName: true}, want: 20},
		{name: "dates", in: contractimport.ScoreInput{HasStartDate: true, HasEndDate: true}, want: 30},
		{name: "zero guards", in: contractimport.ScoreInput{GuardsRequired: 0}, want: 0},
		{name: "guards", in: contractimport.ScoreInput{GuardsRequired: 3}, want: 20},
		{name: "schedules", in: contractimport.ScoreInput{SchedulesCreated: 2}, want: 15},
		{name: "everything", in: contractimport.ScoreInput{
			HasContractNumber: true,
			HasCustomerName:   true,
			HasStartDate:      true,
			HasEndDate:        true,
			GuardsRequired:    5,
			SchedulesCreated:  1,
		}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contractimport.Score(tt.in))
		})
	}
}

// Adding any fact never lowers the score, and it stays within [0, 100].
func TestScore_MonotoneAndBounded(t *testing.T) {
	build := func(mask int) contractimport.ScoreInput {
		in := contractimport.ScoreInput{
			HasContractNumber: mask&1 != 0,
			HasCustomerName:   mask&2 != 0,
			HasStartDate:      mask&4 != 0,
			HasEndDate:        mask&8 != 0,
		}
		if mask&16 != 0 {
			in.GuardsRequired = 1
		}
		if mask&32 != 0 {
			in.SchedulesCreated = 1
		}
		return in
	}

	for mask := 0; mask < 64; mask++ {
		base := contractimport.Score(build(mask))
		assert.GreaterOrEqual(t, base, 0)
		assert.LessOrEqual(t, base, 100)
		for bit := 0; bit < 6; bit++ {
			more := contractimport.Score(build(mask | 1<<bit))
			assert.GreaterOrEqual(t, more, base, "mask %06b bit %d", mask, bit)
		}
	}
}
