package domain

// Logical table names understood by every Backend.
const (
	TableHotel   = "hotel"
	TableReview  = "review"
	TableBooking = "booking"
	TableUser    = "user"
)

// FieldID is the backend's primary identifier column.
const FieldID = "Id"

// FieldName is the backend's display-name system column. Records that have
// their own name column write both.
const FieldName = "Name"

type Operator string

const (
	OpEqualTo              Operator = "EqualTo"
	OpNotEqualTo           Operator = "NotEqualTo"
	OpGreaterThanOrEqualTo Operator = "GreaterThanOrEqualTo"
	OpLessThanOrEqualTo    Operator = "LessThanOrEqualTo"
	OpContains             Operator = "Contains"
)

// Condition is a single predicate. Several Values on EqualTo mean "any of".
type Condition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Values   []any    `json:"values"`
}

// Group is a disjunction: it matches when any of its conditions matches.
type Group struct {
	Conditions []Condition `json:"conditions"`
}

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type Order struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

type Paging struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Query is the backend-neutral fetch request.
// Where is ANDed; every Group is ANDed with Where and with other groups.
type Query struct {
	Fields  []string    `json:"fields,omitempty"`
	Where   []Condition `json:"where,omitempty"`
	Groups  []Group     `json:"groups,omitempty"`
	OrderBy []Order     `json:"orderBy,omitempty"`
	Paging  *Paging     `json:"paging,omitempty"`
}

// Record is one row as the backend returns it.
type Record map[string]any

// Result is the per-record outcome of a create/update/delete call.
type Result struct {
	Success bool
	Message string
	Data    Record
}
