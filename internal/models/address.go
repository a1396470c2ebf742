package models

// AddressRecord represents one stored row whose raw address fields still need resolving.
type AddressRecord struct {
	ID         int    // ID is the unique identifier for the row.
	Street     string // Street is the street-level part of the address.
	Settlement string // Settlement is the city, town or village.
	Region     string // Region is the state, county or oblast.
	Postcode   string // Postcode is the postal code, if known.
}

// Fields returns the raw address parts in composition order.
func (a AddressRecord) Fields() []string {
	return []string{a.Street, a.Settlement, a.Region, a.Postcode}
}
