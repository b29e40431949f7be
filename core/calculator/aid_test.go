package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncomeProtection(t *testing.T) {
	tests := []struct {
		household int64
		want      int64
	}{
		{1, 17040},
		{2, 21330},
		{3, 26520},
		{4, 32710},
		{5, 38490},
		{6, 44780},
		{7, 44780},
		{12, 44780},
		{20, 44780},
		{0, 44780},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IncomeProtection(tt.household), "household %d", tt.household)
	}
}

func TestEFC(t *testing.T) {
	tests := []struct {
		name       string
		income     int64
		household  int64
		students   int64
		dependency Dependency
		want       int64
	}{
		{"income below protection", 10000, 1, 1, Dependent, 0},
		{"income equals protection", 32710, 4, 1, Independent, 0},
		{"dependent rate", 27040, 1, 1, Dependent, 4700},
		{"independent rate", 27040, 1, 1, Independent, 5000},
		{"half rounds up", 17090, 1, 1, Dependent, 24}, // 50 * 0.47 = 23.5
		{"rounds down", 17041, 1, 1, Dependent, 0},     // 0.47
		{"split by students", 50000, 3, 2, Dependent, 5518},
		{"one student is not split", 50000, 3, 1, Dependent, 11036},
		{"three students", 46780, 1, 3, Independent, 4957}, // 29740 * 0.5 / 3 = 4956.67
		{"large household uses size 6 allowance", 54780, 9, 1, Independent, 5000},
		{"max household", 54780, 20, 1, Independent, 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EFC(tt.income, tt.household, tt.students, tt.dependency))
		})
	}
}

func TestPellGrant(t *testing.T) {
	// round(7395 - efc*0.3), half away from zero, in integer tenths
	want := func(efc int64) int64 { return (73950 - 3*efc + 5) / 10 }

	for efc := int64(0); efc < PellEFCCutoff; efc++ {
		if got := PellGrant(efc); got != want(efc) {
			t.Fatalf("PellGrant(%d) = %d; want %d", efc, got, want(efc))
		}
	}
	for _, efc := range []int64{PellEFCCutoff, PellEFCCutoff + 1, 19335, 1 << 40} {
		assert.Equal(t, int64(0), PellGrant(efc), "efc %d", efc)
	}

	assert.Equal(t, int64(7395), PellGrant(0))
	assert.Equal(t, int64(7394), PellGrant(5)) // 7393.5
	assert.Equal(t, int64(5399), PellGrant(6655))
}

func TestLoanEligibility(t *testing.T) {
	for age := int64(16); age <= 100; age++ {
		assert.Equal(t, int64(IndependentLoanCap), LoanEligibility(Independent, age), "independent, age %d", age)

		want := int64(DependentLoanCap)
		if age >= IndependentAge {
			want = IndependentLoanCap
		}
		assert.Equal(t, want, LoanEligibility(Dependent, age), "dependent, age %d", age)
	}
}
