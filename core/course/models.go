package course

import (
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/beautyschool/calculator/core"
)

// DefaultOtherLabel is the label used for a course's miscellaneous fees when none is configured.
const DefaultOtherLabel = "Other Fees"

var errDuplicateKey = errors.New("duplicate course key")

// Course is a configured tuition program. Amounts are whole currency units.
type Course struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	Hours         int64  `json:"hours"`
	BooksPrice    int64  `json:"books_price"`
	SuppliesPrice int64  `json:"supplies_price"`
	OtherPrice    int64  `json:"other_price"`
	OtherLabel    string `json:"other_label"`
}

// TotalProgramCost is the tuition plus books, supplies and other fees.
func (c Course) TotalProgramCost() int64 {
	return c.Price + c.BooksPrice + c.SuppliesPrice + c.OtherPrice
}

// Catalog maps course keys to their Course.
type Catalog map[string]Course

func (cat Catalog) Get(key string) (Course, bool) {
	c, ok := cat[key]
	return c, ok
}

// Keys returns the catalog keys in ascending order.
func (cat Catalog) Keys() []string {
	keys := make([]string, 0, len(cat))
	for k := range cat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns the courses ordered by key.
func (cat Catalog) List() []Course {
	courses := make([]Course, 0, len(cat))
	for _, k := range cat.Keys() {
		courses = append(courses, cat[k])
	}
	return courses
}

func (cat Catalog) Clone() Catalog {
	if cat == nil {
		return nil
	}
	clone := make(Catalog, len(cat))
	for k, c := range cat {
		clone[k] = c
	}
	return clone
}

// NewCatalog builds a Catalog from courses; later duplicates win.
func NewCatalog(courses ...Course) Catalog {
	cat := make(Catalog, len(courses))
	for _, c := range courses {
		cat[c.Key] = c
	}
	return cat
}

// Settings is the persisted calculator configuration.
// Version is the application build that first activated the settings; saving never changes it.
type Settings struct {
	Courses      Catalog `json:"courses"`
	FAFSAEnabled bool    `json:"fafsa_enabled"`
	Version      string  `json:"version,omitempty"`
}

func (s Settings) Clone() Settings {
	return Settings{Courses: s.Courses.Clone(), FAFSAEnabled: s.FAFSAEnabled, Version: s.Version}
}

// UpdateSettings contains information needed to replace the calculator Settings.
type UpdateSettings struct {
	Courses      []UpdateCourse `json:"courses" validate:"dive"`
	FAFSAEnabled bool           `json:"fafsa_enabled"`
}

type UpdateCourse struct {
	Key           string `json:"key" validate:"required,slug,max=64"`
	Name          string `json:"name" validate:"required,notblank,max=200"`
	Price         int64  `json:"price" validate:"min=0,max=1000000000"`
	Hours         int64  `json:"hours" validate:"min=0"`
	BooksPrice    int64  `json:"books_price" validate:"min=0,max=1000000000"`
	SuppliesPrice int64  `json:"supplies_price" validate:"min=0,max=1000000000"`
	OtherPrice    int64  `json:"other_price" validate:"min=0,max=1000000000"`
	OtherLabel    string `json:"other_label" validate:"max=100"`
}

// Clean sanitizes user input in place: keys become slugs, texts are stripped
// and a missing other label falls back to DefaultOtherLabel.
func (us *UpdateSettings) Clean() {
	for i := range us.Courses {
		c := &us.Courses[i]
		c.Key = core.SanitizeKey(c.Key)
		c.Name = core.SanitizeText(c.Name)
		c.OtherLabel = core.SanitizeText(c.OtherLabel)
		if c.OtherLabel == "" {
			c.OtherLabel = DefaultOtherLabel
		}
	}
}

// Validate cleans then validates the update; course keys must be unique.
func (us *UpdateSettings) Validate(validate *validator.Validate) error {
	us.Clean()
	if err := validate.Struct(us); err != nil {
		return err
	}

	seen := make(map[string]bool, len(us.Courses))
	for i, c := range us.Courses {
		if seen[c.Key] {
			return core.NewValidationError(errDuplicateKey, core.FieldError{
				Field: coursesFieldName(i, "key"),
				Error: errDuplicateKey.Error(),
			})
		}
		seen[c.Key] = true
	}
	return nil
}

// Settings converts the update into Settings.
func (us UpdateSettings) Settings() Settings {
	courses := make([]Course, 0, len(us.Courses))
	for _, c := range us.Courses {
		courses = append(courses, Course(c))
	}
	return Settings{
		Courses:      NewCatalog(courses...),
		FAFSAEnabled: us.FAFSAEnabled,
	}
}

// NewUpdateSettings is the inverse of UpdateSettings.Settings.
func NewUpdateSettings(s Settings) UpdateSettings {
	us := UpdateSettings{
		Courses:      make([]UpdateCourse, 0, len(s.Courses)),
		FAFSAEnabled: s.FAFSAEnabled,
	}
	for _, c := range s.Courses.List() {
		us.Courses = append(us.Courses, UpdateCourse(c))
	}
	return us
}

func coursesFieldName(i int, field string) string {
	return "courses[" + strconv.Itoa(i) + "]." + field
}
