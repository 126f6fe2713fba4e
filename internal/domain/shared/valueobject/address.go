package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a shipping address
// It is immutable - all operations return new Address instances
type Address struct {
	fullName   string
	street     string
	city       string
	postalCode string
	province   string
	country    string
	phone      string
}

// NewAddress creates a new Address. All fields are required.
func NewAddress(fullName, street, city, postalCode, province, country, phone string) (Address, error) {
	fullName = strings.TrimSpace(fullName)
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	postalCode = strings.TrimSpace(postalCode)
	province = strings.TrimSpace(province)
	country = strings.TrimSpace(country)
	phone = strings.TrimSpace(phone)

	for _, f := range []struct {
		name, value string
		max         int
	}{
		{"full name", fullName, 200},
		{"street", street, 500},
		{"city", city, 100},
		{"postal code", postalCode, 20},
		{"province", province, 100},
		{"country", country, 100},
		{"phone", phone, 30},
	} {
		if f.value == "" {
			return Address{}, fmt.Errorf("%s cannot be empty", f.name)
		}
		if len(f.value) > f.max {
			return Address{}, fmt.Errorf("%s cannot exceed %d characters", f.name, f.max)
		}
	}

	return Address{
		fullName:   fullName,
		street:     street,
		city:       city,
		postalCode: postalCode,
		province:   province,
		country:    country,
		phone:      phone,
	}, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(fullName, street, city, postalCode, province, country, phone string) Address {
	addr, err := NewAddress(fullName, street, city, postalCode, province, country, phone)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// FullName returns the recipient's full name
func (a Address) FullName() string {
	return a.fullName
}

// Street returns the street address
func (a Address) Street() string {
	return a.street
}

// City returns the city
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code
func (a Address) PostalCode() string {
	return a.postalCode
}

// Province returns the province (wilaya)
func (a Address) Province() string {
	return a.province
}

// Country returns the country
func (a Address) Country() string {
	return a.country
}

// Phone returns the contact phone number
func (a Address) Phone() string {
	return a.phone
}

// IsEmpty returns true if the address is empty (all fields are blank)
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// FullAddress returns the complete formatted address string
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	parts := make([]string, 0, 6)
	for _, p := range []string{a.fullName, a.street, a.city, a.postalCode, a.province, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		FullName:   a.fullName,
		Street:     a.street,
		City:       a.city,
		PostalCode: a.postalCode,
		Province:   a.province,
		Country:    a.country,
		Phone:      a.phone,
	})
}

// UnmarshalJSON implements json.Unmarshaler
// Delegates to the NewAddress factory so validation rules apply consistently
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	// Allow empty addresses from JSON
	if (v == addressJSON{}) {
		*a = EmptyAddress()
		return nil
	}

	addr, err := NewAddress(v.FullName, v.Street, v.City, v.PostalCode, v.Province, v.Country, v.Phone)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage
// Stores as JSON string
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}
