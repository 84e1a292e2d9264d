package models

// Document is the whole local fallback database, one collection per key.
// Records are stored in the application-facing naming convention.
type Document struct {
	Items        []Item        `json:"items"`
	Packages     []Package     `json:"packages"`
	Bookings     []Booking     `json:"bookings"`
	Messages     []Message     `json:"messages"`
	Testimonials []Testimonial `json:"testimonials"`
	Users        []User        `json:"users"`
	Settings     Settings      `json:"settings"`
}

func EmptyDocument() *Document {
	doc := &Document{}
	doc.Normalize()
	return doc
}

// Normalize replaces nil collections so the document always serializes with
// every key present.
func (d *Document) Normalize() {
	if d.Items == nil {
		d.Items = []Item{}
	}
	if d.Packages == nil {
		d.Packages = []Package{}
	}
	if d.Bookings == nil {
		d.Bookings = []Booking{}
	}
	if d.Messages == nil {
		d.Messages = []Message{}
	}
	if d.Testimonials == nil {
		d.Testimonials = []Testimonial{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Settings == nil {
		d.Settings = Settings{}
	}
}
