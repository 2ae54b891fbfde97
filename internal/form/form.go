package form

import "fmt"

// InquiryForm is the mutable record of visitor input backing the inquiry
// workflow. Name and email are required before submission; the remaining
// fields are optional and stay verbatim as typed — placeholder substitution
// happens at composition time, never here.
type InquiryForm struct {
	Name     string
	Email    string
	Company  string
	Product  string
	Quantity string
	Message  string
}

// Field names accepted by Store.SetField.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldCompany  = "company"
	FieldProduct  = "product"
	FieldQuantity = "quantity"
	FieldMessage  = "message"
)

// IsEmpty reports whether every field holds its zero value.
func (f InquiryForm) IsEmpty() bool {
	return f == InquiryForm{}
}

// Store holds the current inquiry form values for one controller instance.
// It performs no validation; a single logical owner mutates it, so no
// locking is involved.
type Store struct {
	form InquiryForm
}

// NewStore returns a store holding an empty form.
func NewStore() *Store {
	return &Store{}
}

// Get returns a snapshot of the current form values.
func (s *Store) Get() InquiryForm {
	return s.form
}

// SetField overwrites exactly one named field, leaving all others untouched.
// An unknown field name is a programming error and panics.
func (s *Store) SetField(name, value string) {
	switch name {
	case FieldName:
		s.form.Name = value
	case FieldEmail:
		s.form.Email = value
	case FieldCompany:
		s.form.Company = value
	case FieldProduct:
		s.form.Product = value
	case FieldQuantity:
		s.form.Quantity = value
	case FieldMessage:
		s.form.Message = value
	default:
		panic(fmt.Sprintf("form: unknown field %q", name))
	}
}

// Replace swaps the whole form in one step, the bulk equivalent of replaying
// every field-change event from a parsed request.
func (s *Store) Replace(f InquiryForm) {
	s.form = f
}

// Reset restores every field to its empty default.
func (s *Store) Reset() {
	s.form = InquiryForm{}
}
