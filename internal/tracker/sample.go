package tracker

// Sample returns the bundled dataset used for "load sample data" and as
// the fallback when extraction fails. Every call returns a fresh copy with
// all sub-questions not done.
func Sample() Tree {
	return Tree{
		{
			ID:    "sem-s25",
			Title: "S25",
			Questions: []Question{
				{
					ID:     "q-1",
					Number: "5",
					SubQuestions: []SubQuestion{
						{ID: "sq-1a", Label: "(a)", Text: "Explain the concept of object-oriented programming with suitable examples.", Marks: "8"},
						{ID: "sq-1b", Label: "(b)", Text: "Write a program to implement inheritance in Java.", Marks: "7"},
					},
				},
				{
					ID:     "q-2",
					Number: "6",
					SubQuestions: []SubQuestion{
						{ID: "sq-2a", Label: "(a)", Text: "Describe the differences between abstract classes and interfaces.", Marks: "8"},
						{ID: "sq-2b", Label: "(b)", Text: "Implement a simple calculator using polymorphism.", Marks: "7"},
					},
				},
			},
		},
		{
			ID:    "sem-w24",
			Title: "W24",
			Questions: []Question{
				{
					ID:     "q-3",
					Number: "7",
					SubQuestions: []SubQuestion{
						{ID: "sq-3a", Label: "(a)", Text: "What is exception handling? Explain with try-catch blocks.", Marks: "8"},
						{ID: "sq-3b", Label: "(b)", Text: "Write a program to demonstrate custom exception handling.", Marks: "7"},
					},
				},
				{
					ID:     "q-4",
					Number: "8",
					SubQuestions: []SubQuestion{
						{ID: "sq-4a", Label: "(a)", Text: "Explain the concept of multithreading in Java.", Marks: "8"},
						{ID: "sq-4b", Label: "(b)", Text: "Implement a simple thread synchronization example.", Marks: "7"},
					},
				},
			},
		},
	}
}
