package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/joshua-takyi/eventrentals/internal/apperrors"
)

// LocalRepo persists the whole database as one JSON document on disk. Every
// mutation is a read-modify-write of the full document, serialized by mu.
type LocalRepo struct {
	path string
	mu   sync.Mutex
}

func LocalNewRepo(path string) *LocalRepo {
	return &LocalRepo{path: path}
}

func (l *LocalRepo) Name() string {
	return "local"
}

func (l *LocalRepo) Path() string {
	return l.path
}

// Read returns the persisted document, or an empty one if the file does not
// exist yet.
func (l *LocalRepo) Read() (*Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

// Write overwrites the persisted document wholesale.
func (l *LocalRepo) Write(doc *Document) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.write(doc)
}

func (l *LocalRepo) read() (*Document, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return EmptyDocument(), nil
	}
	if err != nil {
		return nil, apperrors.Backend(l.Name(), fmt.Errorf("failed to read %s: %w", l.path, err))
	}
	doc := &Document{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, apperrors.Backend(l.Name(), fmt.Errorf("failed to decode %s: %w", l.path, err))
		}
	}
	doc.Normalize()
	return doc, nil
}

func (l *LocalRepo) write(doc *Document) error {
	doc.Normalize()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.Internal("failed to encode local document", err)
	}
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.Backend(l.Name(), err)
	}
	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return apperrors.Backend(l.Name(), err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Backend(l.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Backend(l.Name(), err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return apperrors.Backend(l.Name(), err)
	}
	return nil
}

func (l *LocalRepo) view(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Backend(l.Name(), err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	doc, err := l.read()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs fn against the current document and persists the result unless
// fn fails.
func (l *LocalRepo) update(ctx context.Context, fn func(doc *Document) error) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Backend(l.Name(), err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	doc, err := l.read()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return l.write(doc)
}

func indexByID[T any](records []T, id string, idOf func(T) string) int {
	for i, rec := range records {
		if idOf(rec) == id {
			return i
		}
	}
	return -1
}

func prepend[T any](records []T, rec T) []T {
	return append([]T{rec}, records...)
}

func removeAt[T any](records []T, i int) []T {
	return append(records[:i], records[i+1:]...)
}

func itemID(i Item) string               { return i.ID }
func packageID(p Package) string         { return p.ID }
func bookingID(b Booking) string         { return b.ID }
func messageID(m Message) string         { return m.ID }
func testimonialID(t Testimonial) string { return t.ID }
func userID(u User) string               { return u.ID }

// Items

func (l *LocalRepo) ListItems(ctx context.Context) ([]Item, error) {
	var out []Item
	err := l.view(ctx, func(doc *Document) error {
		out = append([]Item{}, doc.Items...)
		return nil
	})
	return out, err
}

func (l *LocalRepo) GetItem(ctx context.Context, id string) (*Item, error) {
	var out *Item
	err := l.view(ctx, func(doc *Document) error {
		i := indexByID(doc.Items, id, itemID)
		if i < 0 {
			return apperrors.NotFound("Item")
		}
		item := doc.Items[i]
		out = &item
		return nil
	})
	return out, err
}

func (l *LocalRepo) GetItemsByIDs(ctx context.Context, ids []string) ([]Item, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []Item{}
	err := l.view(ctx, func(doc *Document) error {
		for _, item := range doc.Items {
			if wanted[item.ID] {
				out = append(out, item)
			}
		}
		return nil
	})
	return out, err
}

func (l *LocalRepo) CreateItem(ctx context.Context, item *Item) (*Item, error) {
	created := *item
	err := l.update(ctx, func(doc *Document) error {
		doc.Items = prepend(doc.Items, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (l *LocalRepo) UpdateItem(ctx context.Context, id string, fields map[string]any) (*Item, error) {
	var out *Item
	err := l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Items, id, itemID)
		if i < 0 {
			return apperrors.NotFound("Item")
		}
		updated, err := applyFields(doc.Items[i], fields)
		if err != nil {
			return apperrors.Internal("failed to apply item update", err)
		}
		updated.ID = id
		doc.Items[i] = updated
		out = &updated
		return nil
	})
	return out, err
}

func (l *LocalRepo) DeleteItem(ctx context.Context, id string) error {
	return l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Items, id, itemID)
		if i < 0 {
			return apperrors.NotFound("Item")
		}
		doc.Items = removeAt(doc.Items, i)
		return nil
	})
}

func (l *LocalRepo) CompareAndSetItemQuantity(ctx context.Context, id string, expected, next int) (bool, error) {
	swapped := false
	err := l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Items, id, itemID)
		if i < 0 || doc.Items[i].Quantity != expected {
			return nil
		}
		doc.Items[i].Quantity = next
		swapped = true
		return nil
	})
	return swapped, err
}

// Packages

func (l *LocalRepo) ListPackages(ctx context.Context) ([]Package, error) {
	var out []Package
	err := l.view(ctx, func(doc *Document) error {
		out = append([]Package{}, doc.Packages...)
		return nil
	})
	return out, err
}

func (l *LocalRepo) GetPackage(ctx context.Context, id string) (*Package, error) {
	var out *Package
	err := l.view(ctx, func(doc *Document) error {
		i := indexByID(doc.Packages, id, packageID)
		if i < 0 {
			return apperrors.NotFound("Package")
		}
		pkg := doc.Packages[i]
		out = &pkg
		return nil
	})
	return out, err
}

func (l *LocalRepo) CreatePackage(ctx context.Context, pkg *Package) (*Package, error) {
	created := *pkg
	err := l.update(ctx, func(doc *Document) error {
		doc.Packages = prepend(doc.Packages, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (l *LocalRepo) UpdatePackage(ctx context.Context, id string, fields map[string]any) (*Package, error) {
	var out *Package
	err := l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Packages, id, packageID)
		if i < 0 {
			return apperrors.NotFound("Package")
		}
		updated, err := applyFields(doc.Packages[i], fields)
		if err != nil {
			return apperrors.Internal("failed to apply package update", err)
		}
		updated.ID = id
		doc.Packages[i] = updated
		out = &updated
		return nil
	})
	return out, err
}

func (l *LocalRepo) DeletePackage(ctx context.Context, id string) error {
	return l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Packages, id, packageID)
		if i < 0 {
			return apperrors.NotFound("Package")
		}
		doc.Packages = removeAt(doc.Packages, i)
		return nil
	})
}

// Bookings

func (l *LocalRepo) ListBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	err := l.view(ctx, func(doc *Document) error {
		out = append([]Booking{}, doc.Bookings...)
		return nil
	})
	return out, err
}

func (l *LocalRepo) GetBooking(ctx context.Context, id string) (*Booking, error) {
	var out *Booking
	err := l.view(ctx, func(doc *Document) error {
		i := indexByID(doc.Bookings, id, bookingID)
		if i < 0 {
			return apperrors.NotFound("Booking")
		}
		b := doc.Bookings[i]
		out = &b
		return nil
	})
	return out, err
}

func (l *LocalRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	created := *booking
	err := l.update(ctx, func(doc *Document) error {
		doc.Bookings = prepend(doc.Bookings, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (l *LocalRepo) UpdateBooking(ctx context.Context, id string, fields map[string]any) (*Booking, error) {
	var out *Booking
	err := l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Bookings, id, bookingID)
		if i < 0 {
			return apperrors.NotFound("Booking")
		}
		updated, err := applyFields(doc.Bookings[i], fields)
		if err != nil {
			return apperrors.Internal("failed to apply booking update", err)
		}
		updated.ID = id
		doc.Bookings[i] = updated
		out = &updated
		return nil
	})
	return out, err
}

// CancelBooking applies fields and moves the booking to Cancelled under the
// document lock. cancelled is true only for the call that made the move.
func (l *LocalRepo) CancelBooking(ctx context.Context, id string, fields map[string]any) (*Booking, bool, error) {
	var (
		out       *Booking
		cancelled bool
	)
	err := l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Bookings, id, bookingID)
		if i < 0 {
			return apperrors.NotFound("Booking")
		}
		cancelled = doc.Bookings[i].Status != StatusCancelled
		updated, err := applyFields(doc.Bookings[i], fields)
		if err != nil {
			return apperrors.Internal("failed to apply booking update", err)
		}
		updated.ID = id
		updated.Status = StatusCancelled
		doc.Bookings[i] = updated
		out = &updated
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, cancelled, nil
}

func (l *LocalRepo) DeleteBooking(ctx context.Context, id string) error {
	return l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Bookings, id, bookingID)
		if i < 0 {
			return apperrors.NotFound("Booking")
		}
		doc.Bookings = removeAt(doc.Bookings, i)
		return nil
	})
}

func (l *LocalRepo) ClearBookings(ctx context.Context) error {
	return l.update(ctx, func(doc *Document) error {
		doc.Bookings = []Booking{}
		return nil
	})
}

// Messages

func (l *LocalRepo) ListMessages(ctx context.Context) ([]Message, error) {
	var out []Message
	err := l.view(ctx, func(doc *Document) error {
		out = append([]Message{}, doc.Messages...)
		return nil
	})
	return out, err
}

func (l *LocalRepo) CreateMessage(ctx context.Context, msg *Message) (*Message, error) {
	created := *msg
	err := l.update(ctx, func(doc *Document) error {
		doc.Messages = prepend(doc.Messages, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (l *LocalRepo) SetMessageRead(ctx context.Context, id string, isRead bool) (*Message, error) {
	var out *Message
	err := l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Messages, id, messageID)
		if i < 0 {
			return apperrors.NotFound("Message")
		}
		doc.Messages[i].IsRead = isRead
		msg := doc.Messages[i]
		out = &msg
		return nil
	})
	return out, err
}

func (l *LocalRepo) DeleteMessage(ctx context.Context, id string) error {
	return l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Messages, id, messageID)
		if i < 0 {
			return apperrors.NotFound("Message")
		}
		doc.Messages = removeAt(doc.Messages, i)
		return nil
	})
}

// Testimonials

func (l *LocalRepo) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	var out []Testimonial
	err := l.view(ctx, func(doc *Document) error {
		out = append([]Testimonial{}, doc.Testimonials...)
		return nil
	})
	return out, err
}

func (l *LocalRepo) CreateTestimonial(ctx context.Context, t *Testimonial) (*Testimonial, error) {
	created := *t
	err := l.update(ctx, func(doc *Document) error {
		doc.Testimonials = prepend(doc.Testimonials, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (l *LocalRepo) DeleteTestimonial(ctx context.Context, id string) error {
	return l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Testimonials, id, testimonialID)
		if i < 0 {
			return apperrors.NotFound("Testimonial")
		}
		doc.Testimonials = removeAt(doc.Testimonials, i)
		return nil
	})
}

// Users

func (l *LocalRepo) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := l.view(ctx, func(doc *Document) error {
		out = append([]User{}, doc.Users...)
		return nil
	})
	return out, err
}

func (l *LocalRepo) GetUser(ctx context.Context, id string) (*User, error) {
	var out *User
	err := l.view(ctx, func(doc *Document) error {
		i := indexByID(doc.Users, id, userID)
		if i < 0 {
			return apperrors.NotFound("User")
		}
		u := doc.Users[i]
		out = &u
		return nil
	})
	return out, err
}

func (l *LocalRepo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	email = NormalizeEmail(email)
	var out *User
	err := l.view(ctx, func(doc *Document) error {
		for _, u := range doc.Users {
			if NormalizeEmail(u.Email) == email {
				found := u
				out = &found
				return nil
			}
		}
		return apperrors.NotFound("User")
	})
	return out, err
}

func (l *LocalRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	created := *user
	err := l.update(ctx, func(doc *Document) error {
		for _, u := range doc.Users {
			if NormalizeEmail(u.Email) == NormalizeEmail(created.Email) {
				return apperrors.Conflict("record already exists")
			}
		}
		doc.Users = append(doc.Users, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (l *LocalRepo) UpdateUser(ctx context.Context, id string, fields map[string]any) (*User, error) {
	var out *User
	err := l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Users, id, userID)
		if i < 0 {
			return apperrors.NotFound("User")
		}
		updated, err := applyFields(doc.Users[i], fields)
		if err != nil {
			return apperrors.Internal("failed to apply user update", err)
		}
		updated.ID = id
		doc.Users[i] = updated
		out = &updated
		return nil
	})
	return out, err
}

func (l *LocalRepo) DeleteUser(ctx context.Context, id string) error {
	return l.update(ctx, func(doc *Document) error {
		i := indexByID(doc.Users, id, userID)
		if i < 0 {
			return apperrors.NotFound("User")
		}
		doc.Users = removeAt(doc.Users, i)
		return nil
	})
}

// Settings

func (l *LocalRepo) GetSettings(ctx context.Context) (Settings, error) {
	out := Settings{}
	err := l.view(ctx, func(doc *Document) error {
		for k, v := range doc.Settings {
			out[k] = v
		}
		return nil
	})
	return out, err
}

func (l *LocalRepo) SaveSettings(ctx context.Context, settings Settings) (Settings, error) {
	err := l.update(ctx, func(doc *Document) error {
		doc.Settings = Settings{}
		for k, v := range settings {
			doc.Settings[k] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (l *LocalRepo) ReplaceAll(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Backend(l.Name(), err)
	}
	return l.Write(doc)
}
