package contacts

// Column field identifiers.
const (
	FieldName     = "Name"
	FieldAccount  = "AccountName"
	FieldEmail    = "Email"
	FieldPhone    = "Phone"
	FieldState    = "AccountStateCode"
	FieldDistance = "DistanceFromCase"
)

// Column describes one visible result column.
type Column struct {
	Label string
	Field string
	// Width is a preferred minimum width in cells.
	Width int
}

var baseColumns = []Column{
	{Label: "Name", Field: FieldName, Width: 18},
	{Label: "Account", Field: FieldAccount, Width: 18},
	{Label: "Email", Field: FieldEmail, Width: 22},
	{Label: "Phone", Field: FieldPhone, Width: 14},
	{Label: "State", Field: FieldState, Width: 5},
}

var distanceColumn = Column{Label: "Distance (mi)", Field: FieldDistance, Width: 13}

// ColumnsFor returns the visible columns for mode. Distance mode appends the
// distance column to the base set.
func ColumnsFor(mode SearchMode) []Column {
	cols := make([]Column, len(baseColumns), len(baseColumns)+1)
	copy(cols, baseColumns)
	switch mode {
	case ModeDistance:
		cols = append(cols, distanceColumn)
	case ModeName, ModeState:
	}
	return cols
}
