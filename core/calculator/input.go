package calculator

import (
	"strconv"

	"github.com/beautyschool/calculator/core"
	"github.com/beautyschool/calculator/core/course"
)

// Raw field names, as sent by the calculator form.
const (
	FieldCourse          = "course"
	FieldAge             = "age"
	FieldIncome          = "income"
	FieldHouseholdSize   = "household_size"
	FieldCollegeStudents = "college_students"
	FieldDependency      = "dependency"
)

// validation bounds
const (
	minAge           = 16
	maxAge           = 100
	minHouseholdSize = 1
	maxHouseholdSize = 20
	minStudents      = 1
)

type Dependency string

const (
	Dependent   Dependency = "dependent"
	Independent Dependency = "independent"
)

func (d Dependency) Valid() bool {
	return d == Dependent || d == Independent
}

// RawFields holds untyped form values keyed by field name.
// Values are strings (form posts) or JSON scalars.
type RawFields map[string]interface{}

// String returns the value of key as text; missing values are "".
func (r RawFields) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// AbsInt returns the value of key coerced to a non-negative integer.
func (r RawFields) AbsInt(key string) int64 {
	return core.AbsInt(r[key])
}

// AidInput holds the household facts needed for a financial aid estimate.
type AidInput struct {
	Age             int64      `json:"age"`
	Income          int64      `json:"income"`
	HouseholdSize   int64      `json:"household_size"`
	CollegeStudents int64      `json:"college_students"`
	Dependency      Dependency `json:"dependency"`
}

// Input is validated calculation input merged with the selected Course.
type Input struct {
	Course           course.Course
	TotalProgramCost int64
	Aid              *AidInput // set only when financial aid fields were validated
}

// ValidateInput resolves the course from catalog and, if includeAid, validates the
// financial aid fields. The first failing rule wins; bad input is never a panic.
func ValidateInput(catalog course.Catalog, raw RawFields, includeAid bool) (Input, error) {
	key := core.SanitizeKey(raw.String(FieldCourse))
	if key == "" {
		return Input{}, newError(InvalidCourse)
	}
	crs, ok := catalog.Get(key)
	if !ok {
		return Input{}, newError(InvalidCourse)
	}

	input := Input{
		Course:           crs,
		TotalProgramCost: crs.TotalProgramCost(),
	}
	if !includeAid {
		return input, nil
	}

	aid := AidInput{
		Age:             raw.AbsInt(FieldAge),
		Income:          raw.AbsInt(FieldIncome),
		HouseholdSize:   raw.AbsInt(FieldHouseholdSize),
		CollegeStudents: raw.AbsInt(FieldCollegeStudents),
		Dependency:      Dependency(core.SanitizeText(raw.String(FieldDependency))),
	}
	if aid.Age < minAge || aid.Age > maxAge {
		return Input{}, newError(InvalidAge)
	}
	if aid.HouseholdSize < minHouseholdSize || aid.HouseholdSize > maxHouseholdSize {
		return Input{}, newError(InvalidHousehold)
	}
	if aid.CollegeStudents < minStudents || aid.CollegeStudents > aid.HouseholdSize {
		return Input{}, newError(InvalidStudents)
	}
	if !aid.Dependency.Valid() {
		return Input{}, newError(InvalidDependency)
	}

	input.Aid = &aid
	return input, nil
}
