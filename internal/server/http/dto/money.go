package dto

import "github.com/shopspring/decimal"

// Money fields are written as JSON numbers, matching how clients send them.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
