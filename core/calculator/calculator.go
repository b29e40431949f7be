// Package calculator computes program costs and simplified federal financial aid estimates.
//
// Every function is pure over the catalog snapshot it is given, so calls are
// safe to run concurrently.
package calculator

import "github.com/beautyschool/calculator/core/course"

// Result is the outcome of a calculation. The aid fields are present only
// when a financial aid estimate was requested.
type Result struct {
	CourseName       string `json:"course_name"`
	CoursePrice      int64  `json:"course_price"`
	BooksPrice       int64  `json:"books_price"`
	SuppliesPrice    int64  `json:"supplies_price"`
	OtherPrice       int64  `json:"other_price"`
	OtherLabel       string `json:"other_label"`
	TotalProgramCost int64  `json:"total_program_cost"`
	*AidEstimate
	FAFSAEnabled bool `json:"fafsa_enabled"`
}

// CalculateCosts returns the cost breakdown of the selected course.
func CalculateCosts(catalog course.Catalog, raw RawFields) (Result, error) {
	input, err := ValidateInput(catalog, raw, false)
	if err != nil {
		return Result{}, err
	}
	return costResult(input), nil
}

// CalculateFAFSA returns the cost breakdown of the selected course along with a financial aid estimate.
// Callers are responsible for checking that the FAFSA calculator is enabled.
func CalculateFAFSA(catalog course.Catalog, raw RawFields) (Result, error) {
	input, err := ValidateInput(catalog, raw, true)
	if err != nil {
		return Result{}, err
	}
	return Estimate(input), nil
}

// Estimate computes the full result for input whose aid fields were validated.
func Estimate(input Input) Result {
	res := costResult(input)
	if input.Aid == nil {
		return res
	}
	aid := EstimateAid(*input.Aid, input.TotalProgramCost)
	res.AidEstimate = &aid
	res.FAFSAEnabled = true
	return res
}

func costResult(input Input) Result {
	return Result{
		CourseName:       input.Course.Name,
		CoursePrice:      input.Course.Price,
		BooksPrice:       input.Course.BooksPrice,
		SuppliesPrice:    input.Course.SuppliesPrice,
		OtherPrice:       input.Course.OtherPrice,
		OtherLabel:       input.Course.OtherLabel,
		TotalProgramCost: input.TotalProgramCost,
	}
}
