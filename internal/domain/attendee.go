package domain

// Attendee is one registrant's ticket record for an event as reported by the
// registration provider. Records are read-only here and produced fresh per fetch.
type Attendee struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	OrderID         string    `json:"order_id"`
	TicketClassID   string    `json:"ticket_class_id"`
	TicketClassName string    `json:"ticket_class_name"`
	Status          string    `json:"status,omitempty"`
	CheckedIn       bool      `json:"checked_in"`
	Cancelled       bool      `json:"cancelled"`
	Refunded        bool      `json:"refunded"`
	Created         string    `json:"created,omitempty"`
	Changed         string    `json:"changed,omitempty"`
	Profile         Profile   `json:"profile"`
	Barcodes        []Barcode `json:"barcodes"`
}

// Profile carries personal information. Pass-through only.
type Profile struct {
	Name      string             `json:"name,omitempty"`
	FirstName string             `json:"first_name,omitempty"`
	LastName  string             `json:"last_name,omitempty"`
	Email     string             `json:"email,omitempty"`
	CellPhone string             `json:"cell_phone,omitempty"`
	Company   string             `json:"company,omitempty"`
	JobTitle  string             `json:"job_title,omitempty"`
	Addresses map[string]Address `json:"addresses,omitempty"`
}

// Address is a postal address attached to a profile.
type Address struct {
	Address1   string `json:"address_1,omitempty"`
	Address2   string `json:"address_2,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Barcode is a single scan record.
type Barcode struct {
	Barcode       string `json:"barcode,omitempty"`
	Status        string `json:"status,omitempty"`
	Created       string `json:"created,omitempty"`
	Changed       string `json:"changed,omitempty"`
	CheckinType   int    `json:"checkin_type,omitempty"`
	CheckinMethod string `json:"checkin_method,omitempty"`
}

// Pagination mirrors the provider's paging envelope.
type Pagination struct {
	ObjectCount  int    `json:"object_count"`
	PageNumber   int    `json:"page_number"`
	PageSize     int    `json:"page_size"`
	PageCount    int    `json:"page_count"`
	Continuation string `json:"continuation,omitempty"`
	HasMoreItems bool   `json:"has_more_items"`
}

// AttendeePage is one page of the provider's attendee listing.
type AttendeePage struct {
	Pagination Pagination `json:"pagination"`
	Attendees  []Attendee `json:"attendees"`
}
