package types

import "github.com/shopspring/decimal"

func init() {
	// The ledger file and the gateway API both carry amounts as bare JSON
	// numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Customer is captured once at payment creation and never mutated.
type Customer struct {
	Name     string `json:"name" mapstructure:"name"`
	Document string `json:"document" mapstructure:"document"`
	Email    string `json:"email" mapstructure:"email"`
	Phone    string `json:"phone" mapstructure:"phone"`
}

// DocumentType returns the Brazilian tax-id kind for the customer's
// document: CPF for 11 digits, CNPJ otherwise.
func (c Customer) DocumentType() string {
	if len(c.Document) == 11 {
		return "CPF"
	}
	return "CNPJ"
}
