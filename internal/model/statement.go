package model

// Page holds the extracted plain text of one statement PDF page.
// Numbers are 1-based and follow document order.
type Page struct {
	Text   string
	Number int
}

// LineClassification is one row of the classification report: a statement
// line together with the category and pattern that matched it.
type LineClassification struct {
	Line     string
	Category string
	Pattern  string
	Page     int
}
