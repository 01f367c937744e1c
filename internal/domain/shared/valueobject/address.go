package valueobject

import (
	"fmt"
	"strings"

	"github.com/salesorder/backend/internal/domain/shared"
)

// Column limits for address fields
const (
	MaxAddressLineLength = 500
	MaxStateLength       = 100
	MaxPostCodeLength    = 20
)

// Address is a postal address snapshot as stored on clients and sales orders.
// All fields are optional; it is immutable once built.
type Address struct {
	address1 string
	address2 string
	address3 string
	state    string
	postCode string
}

// NewAddress builds an Address, trimming surrounding whitespace from every field
func NewAddress(address1, address2, address3, state, postCode string) Address {
	return Address{
		address1: strings.TrimSpace(address1),
		address2: strings.TrimSpace(address2),
		address3: strings.TrimSpace(address3),
		state:    strings.TrimSpace(state),
		postCode: strings.TrimSpace(postCode),
	}
}

// EmptyAddress returns an address with no fields set
func EmptyAddress() Address {
	return Address{}
}

func (a Address) Address1() string { return a.address1 }
func (a Address) Address2() string { return a.address2 }
func (a Address) Address3() string { return a.address3 }
func (a Address) State() string    { return a.state }
func (a Address) PostCode() string { return a.postCode }

// IsEmpty reports whether no field of the address is set
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Equals compares two addresses field by field
func (a Address) Equals(other Address) bool {
	return a == other
}

// Lines returns the non-empty street lines in order
func (a Address) Lines() []string {
	lines := make([]string, 0, 3)
	for _, l := range []string{a.address1, a.address2, a.address3} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// String renders the address on a single line, e.g. "123 Main St, Suite 100, NY 10001"
func (a Address) String() string {
	parts := a.Lines()
	region := strings.TrimSpace(a.state + " " + a.postCode)
	if region != "" {
		parts = append(parts, region)
	}
	return strings.Join(parts, ", ")
}

// Or returns a when it has any field set, otherwise fallback
func (a Address) Or(fallback Address) Address {
	if a.IsEmpty() {
		return fallback
	}
	return a
}

// Validate checks the field length limits
func (a Address) Validate() error {
	for i, line := range []string{a.address1, a.address2, a.address3} {
		if len(line) > MaxAddressLineLength {
			return shared.NewValidationError(fmt.Sprintf("address line %d cannot exceed %d characters", i+1, MaxAddressLineLength))
		}
	}
	if len(a.state) > MaxStateLength {
		return shared.NewValidationError(fmt.Sprintf("state cannot exceed %d characters", MaxStateLength))
	}
	if len(a.postCode) > MaxPostCodeLength {
		return shared.NewValidationError(fmt.Sprintf("post code cannot exceed %d characters", MaxPostCodeLength))
	}
	return nil
}
