package calculator

import "github.com/shopspring/decimal"

// Simplified federal aid model. These are deliberate approximations of the
// federal methodology and must not be "corrected".
const (
	MaxPellGrant       = 7395
	PellEFCCutoff      = 6656
	IndependentLoanCap = 12500
	DependentLoanCap   = 5500
	IndependentAge     = 24

	maxIncomeProtection = 44780
)

var (
	// incomeProtection by household size; larger households use maxIncomeProtection.
	incomeProtection = map[int64]int64{
		1: 17040,
		2: 21330,
		3: 26520,
		4: 32710,
		5: 38490,
		6: maxIncomeProtection,
	}

	dependentRate   = decimal.RequireFromString("0.47")
	independentRate = decimal.RequireFromString("0.50")
	pellEFCRate     = decimal.RequireFromString("0.3")
)

// AidEstimate is the financial aid part of a calculation result.
type AidEstimate struct {
	EFC             int64 `json:"efc"`
	PellGrant       int64 `json:"pell_grant"`
	LoanEligibility int64 `json:"loan_eligibility"`
	TotalAid        int64 `json:"total_aid"`
	RemainingCost   int64 `json:"remaining_cost"`
}

// IncomeProtection returns the income protection allowance for a household size.
func IncomeProtection(householdSize int64) int64 {
	if p, ok := incomeProtection[householdSize]; ok {
		return p
	}
	return maxIncomeProtection
}

// EFC computes the Expected Family Contribution, rounded half away from zero.
func EFC(income, householdSize, collegeStudents int64, dependency Dependency) int64 {
	available := income - IncomeProtection(householdSize)
	if available < 0 {
		available = 0
	}

	rate := independentRate
	if dependency == Dependent {
		rate = dependentRate
	}
	efc := decimal.NewFromInt(available).Mul(rate)

	if collegeStudents > 1 {
		efc = efc.Div(decimal.NewFromInt(collegeStudents))
	}
	return efc.Round(0).IntPart()
}

// PellGrant computes the Pell Grant award for an EFC; zero at or above PellEFCCutoff.
func PellGrant(efc int64) int64 {
	if efc >= PellEFCCutoff {
		return 0
	}
	pell := decimal.NewFromInt(MaxPellGrant).Sub(decimal.NewFromInt(efc).Mul(pellEFCRate)).Round(0).IntPart()
	if pell < 0 {
		return 0
	}
	return pell
}

// LoanEligibility returns the federal direct loan limit for a student.
func LoanEligibility(dependency Dependency, age int64) int64 {
	if dependency == Independent || age >= IndependentAge {
		return IndependentLoanCap
	}
	return DependentLoanCap
}

// EstimateAid computes the aid estimate for validated input against a program cost.
func EstimateAid(in AidInput, totalProgramCost int64) AidEstimate {
	efc := EFC(in.Income, in.HouseholdSize, in.CollegeStudents, in.Dependency)
	pell := PellGrant(efc)
	loan := LoanEligibility(in.Dependency, in.Age)

	totalAid := pell + loan
	remaining := totalProgramCost - totalAid
	if remaining < 0 {
		remaining = 0
	}

	return AidEstimate{
		EFC:             efc,
		PellGrant:       pell,
		LoanEligibility: loan,
		TotalAid:        totalAid,
		RemainingCost:   remaining,
	}
}
