package domain

// TestCase is one input/expected-output pair of a problem.
type TestCase struct {
	ID         *int64 `json:"id" db:"id"`
	InputText  string `json:"input_text" db:"input_text"`
	OutputText string `json:"output_text" db:"output_text"`
	IsSample   bool   `json:"is_sample" db:"is_sample"`
	Order      int    `json:"order" db:"order"`
}

type testCaseTable struct {
	ID         string
	ProblemID  string
	InputText  string
	OutputText string
	IsSample   string
	Order      string
}

func (t testCaseTable) GetTableName() string {
	return "problem_test_cases"
}

func GetTestCaseTable() testCaseTable {
	return testCaseTable{
		ID:         "id",
		ProblemID:  "problem_id",
		InputText:  "input_text",
		OutputText: "output_text",
		IsSample:   "is_sample",
		Order:      `"order"`,
	}
}
