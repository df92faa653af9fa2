package domain

// sampleLessons builds a small tree with a three-level multi-step exercise.
func sampleLessons() []*Lesson {
	return []*Lesson{
		{
			ID:    1,
			Title: "Foundations",
			SubLessons: []*SubLesson{
				{
					ID:    "1.1",
					Title: "Goals",
					Exercises: []*Exercise{
						{ID: "goal", Type: ExerciseText, Label: "Your goal"},
						{ID: "tools", Type: ExerciseCheckbox, Label: "Tools", Options: []string{"chat", "search", "code"}},
						{ID: "level", Type: ExerciseRadioWithText, Label: "Level", Options: []string{"new", "some", "expert"}},
					},
				},
				{ID: "1.2", Title: "Reflection", Exercises: []*Exercise{
					{ID: "notes", Type: ExerciseTextarea, Label: "Notes"},
				}},
			},
		},
		{
			ID:    2,
			Title: "Prompting",
			SubLessons: []*SubLesson{
				{
					ID:    "2.1",
					Title: "Drafting",
					Exercises: []*Exercise{
						{
							ID:   "draft",
							Type: ExerciseMultiStep,
							Steps: []*Exercise{
								{ID: "a", Type: ExerciseText, Label: "A"},
								{
									ID:   "b",
									Type: ExerciseMultiStep,
									Steps: []*Exercise{
										{ID: "b1", Type: ExerciseText, Label: "B1"},
										{
											ID:   "b2",
											Type: ExerciseMultiStep,
											Steps: []*Exercise{
												{ID: "b2x", Type: ExerciseTextarea, Label: "B2X"},
												{ID: "b2y", Type: ExerciseText, Label: "B2Y"},
											},
										},
									},
								},
								{ID: "c", Type: ExerciseText, Label: "C"},
							},
						},
					},
				},
			},
		},
	}
}
