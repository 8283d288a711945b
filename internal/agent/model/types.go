package model

// AmbiguityCategory names the reason a query was judged too vague to answer.
type AmbiguityCategory string

const (
	AmbiguityPrice   AmbiguityCategory = "price"
	AmbiguityQuality AmbiguityCategory = "quality"
	AmbiguityGeneric AmbiguityCategory = "generic"
	AmbiguityNone    AmbiguityCategory = "none"
)

// AmbiguityResult is the outcome of classifying a single user query.
type AmbiguityResult struct {
	IsAmbiguous bool
	Category    AmbiguityCategory
}

// ProductContext carries the product a user is actively viewing; required for
// price negotiation.
type ProductContext struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Name      string  `json:"name,omitempty"`
}

// QueryInput represents one incoming user turn.
type QueryInput struct {
	UserID  string          `json:"user_id"`
	Query   string          `json:"query"`
	Product *ProductContext `json:"context,omitempty"`
}

// Reply is the assembled outcome of one turn.
type Reply struct {
	Response           string          `json:"response"`
	NeedsClarification bool            `json:"needs_clarification"`
	IsNegotiating      bool            `json:"is_negotiating"`
	Cached             bool            `json:"cached"`
	Product            *ProductContext `json:"context,omitempty"`
}
