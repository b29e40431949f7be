package course

// DefaultCourses is the catalog seeded on activation.
func DefaultCourses() Catalog {
	return NewCatalog(
		Course{
			Key:           "cosmetology",
			Name:          "Cosmetology",
			Price:         15000,
			Hours:         1500,
			BooksPrice:    500,
			SuppliesPrice: 750,
			OtherLabel:    DefaultOtherLabel,
		},
		Course{
			Key:           "barbering",
			Name:          "Barbering",
			Price:         12000,
			Hours:         1200,
			BooksPrice:    400,
			SuppliesPrice: 600,
			OtherLabel:    DefaultOtherLabel,
		},
		Course{
			Key:           "esthetics",
			Name:          "Esthetics (Skincare)",
			Price:         8000,
			Hours:         600,
			BooksPrice:    300,
			SuppliesPrice: 400,
			OtherLabel:    DefaultOtherLabel,
		},
		Course{
			Key:           "massage",
			Name:          "Massage Therapy",
			Price:         10000,
			Hours:         750,
			BooksPrice:    350,
			SuppliesPrice: 300,
			OtherLabel:    DefaultOtherLabel,
		},
	)
}

// DefaultSettings are the settings seeded on activation: the default catalog with FAFSA enabled.
func DefaultSettings() Settings {
	return Settings{Courses: DefaultCourses(), FAFSAEnabled: true}
}
