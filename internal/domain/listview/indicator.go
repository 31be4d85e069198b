// Package listview holds the per-doctype list-view settings registry. Each
// document type registers the fields its list rows should load and a resolver
// that maps a row's status to the colored indicator badge and quick filter
// shown in the list UI.
package listview

// Color is an enumerated indicator color token understood by the list UI.
type Color string

const (
	ColorGreen    Color = "green"
	ColorRed      Color = "red"
	ColorOrange   Color = "orange"
	ColorPurple   Color = "purple"
	ColorBlue     Color = "blue"
	ColorYellow   Color = "yellow"
	ColorDarkgrey Color = "darkgrey"
)

// Filter is the quick-filter triple attached to an indicator. Clicking the
// badge filters the list by Field Operator Value.
type Filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// Indicator is the (label, color, filter) triple rendered as a status badge.
type Indicator struct {
	Label  string `json:"label"`
	Color  Color  `json:"color"`
	Filter Filter `json:"filter"`
}

// StatusHolder is the single capability a record must expose for indicator
// resolution. Resolvers never mutate the record.
type StatusHolder interface {
	GetStatus() string
}
