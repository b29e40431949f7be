package calculator

// ErrorKind identifies why a calculation input was rejected.
type ErrorKind string

const (
	InvalidCourse     ErrorKind = "invalid_course"
	InvalidAge        ErrorKind = "invalid_age"
	InvalidHousehold  ErrorKind = "invalid_household"
	InvalidStudents   ErrorKind = "invalid_students"
	InvalidDependency ErrorKind = "invalid_dependency"
)

var messages = map[ErrorKind]string{
	InvalidCourse:     "Invalid course selected.",
	InvalidAge:        "Please enter a valid age between 16 and 100.",
	InvalidHousehold:  "Please enter a valid household size.",
	InvalidStudents:   "Number of college students cannot exceed household size.",
	InvalidDependency: "Invalid dependency status.",
}

// Error is a validation failure of calculation input.
type Error struct {
	Kind    ErrorKind
	Message string
}

func newError(kind ErrorKind) *Error {
	return &Error{Kind: kind, Message: messages[kind]}
}

func (err *Error) Error() string {
	return err.Message
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	cErr, ok := err.(*Error)
	return ok && cErr.Kind == kind
}
