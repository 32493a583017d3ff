package tracker

// SubQuestion is the smallest trackable unit of work.
type SubQuestion struct {
	ID     string `json:"id"`
	Label  string `json:"label"` // e.g. "(a)"
	Text   string `json:"text"`
	Marks  string `json:"marks"` // e.g. "7"
	IsDone bool   `json:"isDone"`
}

// Question groups sub-questions under a display number. Order of
// SubQuestions is meaningful: "OR" alternatives render in sequence.
type Question struct {
	ID           string        `json:"id"`
	Number       string        `json:"number"` // e.g. "5"
	SubQuestions []SubQuestion `json:"subQuestions"`
}

// SemesterGroup is one exam sitting, e.g. "S25".
type SemesterGroup struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Tree is the ordered list of semesters, in input order.
type Tree []SemesterGroup

// Progress is the done/total sub-question count.
type Progress struct {
	Done  int
	Total int
}

// Percent returns the completion percentage in [0, 100]. An empty tree is 0%.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total) * 100
}

// Ref locates a sub-question within the tree.
type Ref struct {
	Semester int
	Question int
	Sub      int
}
