// Package request holds the contract implemented by generated request types
// and the input normalizers their PrepareForValidation methods call.
//
// The rule tokens follow the Laravel validation vocabulary (required,
// max:255, exists:users,id, in:a,b ...). Checking them is left to the
// host application.
package request

// FieldRules is the ordered rule list of one input field.
type FieldRules struct {
	Field string
	Rules []string
}

// Request is implemented by every generated <Model>Request type.
type Request interface {
	// Rules returns the rules of each field in table column order.
	Rules() []FieldRules
	// Messages returns the failure messages keyed by "field.rule".
	Messages() map[string]string
	// PrepareForValidation normalizes input in place.
	PrepareForValidation(input map[string]any)
}

// RulesOf returns the rules of field, or nil.
func RulesOf(r Request, field string) []string {
	for _, fr := range r.Rules() {
		if fr.Field == field {
			return fr.Rules
		}
	}
	return nil
}
