package order

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// ErrStreetAddressIsNotConstructed is returned when attempting to use an
// improperly initialized StreetAddress.
var ErrStreetAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"street address must be created via NewStreetAddress constructor")

// StreetAddress is the delivery destination of an order.
// It is an immutable value object; the zero value is invalid and will fail
// validation - use NewStreetAddress to create instances.
type StreetAddress struct { //nolint:recvcheck //using for validation
	street     string
	postalCode string
	city       string

	guard guard.ConstructorGuard
}

// NewStreetAddress creates a delivery address.
// Street, postal code, and city must all be non-empty.
func NewStreetAddress(street, postalCode, city string) (StreetAddress, error) {
	address := StreetAddress{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setStreet(street),
		address.setPostalCode(postalCode),
		address.setCity(city),
	); err != nil {
		return StreetAddress{}, err
	}

	return address, nil
}

// Street returns the street line of the address.
func (a StreetAddress) Street() string {
	return a.street
}

// PostalCode returns the postal code of the address.
func (a StreetAddress) PostalCode() string {
	return a.postalCode
}

// City returns the city of the address.
func (a StreetAddress) City() string {
	return a.city
}

// String returns the address as a single display line.
func (a StreetAddress) String() string {
	return fmt.Sprintf("%s, %s %s", a.street, a.postalCode, a.city)
}

// Validate checks if the StreetAddress was properly constructed.
func (a StreetAddress) Validate() error {
	return a.guard.Validate(ErrStreetAddressIsNotConstructed)
}

func (a *StreetAddress) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	a.street = street
	return nil
}

func (a *StreetAddress) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *StreetAddress) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}
