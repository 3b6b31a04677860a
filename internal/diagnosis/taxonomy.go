package diagnosis

// Tip is learner-facing advice for one mistake category.
type Tip struct {
	Category ErrorCategory
	Label    string
	Advice   string
}

var tips = []Tip{
	{
		Category: CategorySyntax,
		Label:    "Syntax error",
		Advice:   "Check keyword spelling and order (SELECT ... FROM ... WHERE ... ORDER BY), commas between columns, and quotes around text values.",
	},
	{
		Category: CategoryUnknownTable,
		Label:    "Unknown table",
		Advice:   "The table name is not in this lesson's schema. Compare it letter by letter with the schema shown above the editor.",
	},
	{
		Category: CategoryUnknownColumn,
		Label:    "Unknown column",
		Advice:   "A column name is misspelled or belongs to another table. Text values need single quotes, or SQLite reads them as column names.",
	},
	{
		Category: CategoryColumnMismatch,
		Label:    "Different columns",
		Advice:   "Select exactly the columns the question asks for, in the order it lists them. Use AS to rename a computed column.",
	},
	{
		Category: CategoryRowCount,
		Label:    "Wrong number of rows",
		Advice:   "Revisit the filter: check each WHERE condition, AND versus OR, and any LIMIT. For UPDATE and DELETE, a missing WHERE touches every row.",
	},
	{
		Category: CategoryOrderOnly,
		Label:    "Order differs",
		Advice:   "The rows are right but the order is not. Check the ORDER BY column and whether it should be ASC or DESC.",
	},
	{
		Category: CategoryWrongValues,
		Label:    "Different values",
		Advice:   "The shape is right but some values differ. Look at comparison operators, boundary values, and which rows your statement changed.",
	},
	{
		Category: CategoryUnclassified,
		Label:    "Not quite",
		Advice:   "Run your query in the sandbox and compare its output with what the question asks for.",
	},
}

// registry is the package-level tip registry, keyed by category.
var registry map[ErrorCategory]*Tip

func init() {
	registry = make(map[ErrorCategory]*Tip, len(tips))
	for i := range tips {
		registry[tips[i].Category] = &tips[i]
	}
}

// GetTip returns the tip for a category, or nil if there is none.
func GetTip(cat ErrorCategory) *Tip {
	return registry[cat]
}

// AllTips returns every tip in display order.
func AllTips() []Tip {
	out := make([]Tip, len(tips))
	copy(out, tips)
	return out
}

func adviceFor(cat ErrorCategory) string {
	if t := GetTip(cat); t != nil {
		return t.Advice
	}
	return ""
}
