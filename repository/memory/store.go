// Package memory keeps every repository in process memory. It backs the
// STORE_DRIVER=memory mode and the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type db struct {
	mu            sync.RWMutex
	tables        map[primitive.ObjectID]models.Table
	bookings      map[primitive.ObjectID]models.Booking
	bookingDishes map[primitive.ObjectID]models.BookingDish
	guests        map[primitive.ObjectID]models.Guest
	dishes        map[primitive.ObjectID]models.Dish
	users         map[primitive.ObjectID]models.User
	orders        map[primitive.ObjectID]models.Order
}

// NewStore returns an empty store.
func NewStore() *repository.Store {
	d := &db{
		tables:        make(map[primitive.ObjectID]models.Table),
		bookings:      make(map[primitive.ObjectID]models.Booking),
		bookingDishes: make(map[primitive.ObjectID]models.BookingDish),
		guests:        make(map[primitive.ObjectID]models.Guest),
		dishes:        make(map[primitive.ObjectID]models.Dish),
		users:         make(map[primitive.ObjectID]models.User),
		orders:        make(map[primitive.ObjectID]models.Order),
	}
	return &repository.Store{
		Tables:        tables{d},
		Bookings:      bookings{d},
		BookingDishes: bookingDishes{d},
		Guests:        guests{d},
		Dishes:        dishes{d},
		Users:         users{d},
		Orders:        orders{d},
	}
}

func idSet(ids []primitive.ObjectID) map[primitive.ObjectID]bool {
	set := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type tables struct{ d *db }

func (r tables) Create(_ context.Context, table *models.Table) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, t := range r.d.tables {
		if t.TableNumber == table.TableNumber {
			return repository.ErrDuplicate
		}
	}
	if table.ID.IsZero() {
		table.ID = primitive.NewObjectID()
	}
	r.d.tables[table.ID] = *table
	return nil
}

func (r tables) GetByID(_ context.Context, id primitive.ObjectID) (*models.Table, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	t, ok := r.d.tables[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r tables) GetByNumber(_ context.Context, number string) (*models.Table, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, t := range r.d.tables {
		if t.TableNumber == number {
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r tables) List(_ context.Context, filter repository.TableFilter) ([]models.Table, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	out := make([]models.Table, 0, len(r.d.tables))
	for _, t := range r.d.tables {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	return out, nil
}

func (r tables) Update(_ context.Context, table *models.Table) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	current, ok := r.d.tables[table.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, t := range r.d.tables {
		if id != table.ID && t.TableNumber == table.TableNumber {
			return repository.ErrDuplicate
		}
	}
	current.TableNumber = table.TableNumber
	current.Capacity = table.Capacity
	current.Status = table.Status
	current.Updated_at = table.Updated_at
	r.d.tables[table.ID] = current
	return nil
}

func (r tables) SetStatus(_ context.Context, id primitive.ObjectID, status models.TableStatus, window *repository.TableWindow) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	t, ok := r.d.tables[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Status = status
	t.Updated_at = time.Now().UTC()
	if window != nil {
		start, end := window.Start, window.End
		t.LastBookedAt, t.LastBookedEndTime = &start, &end
	} else {
		t.LastBookedAt, t.LastBookedEndTime = nil, nil
	}
	r.d.tables[id] = t
	return nil
}

func (r tables) Delete(_ context.Context, id primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.tables[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.tables, id)
	return nil
}

type bookings struct{ d *db }

func cloneBooking(b models.Booking) models.Booking {
	b.BookingDishes = append([]primitive.ObjectID(nil), b.BookingDishes...)
	return b
}

func (r bookings) Create(_ context.Context, booking *models.Booking) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	r.d.bookings[booking.ID] = cloneBooking(*booking)
	return nil
}

func (r bookings) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	b, ok := r.d.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	b = cloneBooking(b)
	return &b, nil
}

func (r bookings) Update(_ context.Context, booking *models.Booking) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	current, ok := r.d.bookings[booking.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := cloneBooking(*booking)
	updated.CreatedAt = current.CreatedAt
	r.d.bookings[booking.ID] = updated
	return nil
}

func (r bookings) Delete(_ context.Context, id primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if _, ok := r.d.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.d.bookings, id)
	return nil
}

func (r bookings) collect(match func(models.Booking) bool) []models.Booking {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.d.bookings {
		if match(b) {
			out = append(out, cloneBooking(b))
		}
	}
	return out
}

func onDates(dates []time.Time) func(time.Time) bool {
	return func(d time.Time) bool {
		for _, candidate := range dates {
			if candidate.Equal(d) {
				return true
			}
		}
		return false
	}
}

func (r bookings) ListByTableAndDates(_ context.Context, tableID primitive.ObjectID, dates []time.Time) ([]models.Booking, error) {
	in := onDates(dates)
	return r.collect(func(b models.Booking) bool { return b.TableID == tableID && in(b.BookingDate) }), nil
}

func (r bookings) ListByDates(_ context.Context, dates []time.Time) ([]models.Booking, error) {
	in := onDates(dates)
	return r.collect(func(b models.Booking) bool { return in(b.BookingDate) }), nil
}

func (r bookings) ListByTableFrom(_ context.Context, tableID primitive.ObjectID, from time.Time) ([]models.Booking, error) {
	return r.collect(func(b models.Booking) bool { return b.TableID == tableID && !b.BookingDate.Before(from) }), nil
}

func (r bookings) Find(_ context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	var users, ids map[primitive.ObjectID]bool
	if filter.Owners != nil {
		users, ids = idSet(filter.Owners.UserIDs), idSet(filter.Owners.BookingIDs)
	}
	out := r.collect(func(b models.Booking) bool {
		if filter.From != nil && b.BookingDate.Before(*filter.From) {
			return false
		}
		if filter.To != nil && b.BookingDate.After(*filter.To) {
			return false
		}
		if filter.OrderType != "" && b.OrderType != filter.OrderType {
			return false
		}
		if len(filter.Statuses) > 0 {
			matched := false
			for _, s := range filter.Statuses {
				if s == b.Status {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		if filter.Owners != nil {
			owned := b.UserID != nil && users[*b.UserID]
			if !owned && !ids[b.ID] {
				return false
			}
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type bookingDishes struct{ d *db }

func (r bookingDishes) ReplaceForBooking(_ context.Context, bookingID primitive.ObjectID, items []models.BookingDish) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for id, item := range r.d.bookingDishes {
		if item.BookingID == bookingID {
			delete(r.d.bookingDishes, id)
		}
	}
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		items[i].BookingID = bookingID
		r.d.bookingDishes[items[i].ID] = items[i]
	}
	return nil
}

func (r bookingDishes) ListByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]models.BookingDish, error) {
	return r.ListByBookings(ctx, []primitive.ObjectID{bookingID})
}

func (r bookingDishes) ListByBookings(_ context.Context, bookingIDs []primitive.ObjectID) ([]models.BookingDish, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	wanted := idSet(bookingIDs)
	var out []models.BookingDish
	for _, item := range r.d.bookingDishes {
		if wanted[item.BookingID] {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (r bookingDishes) DeleteByBooking(_ context.Context, bookingID primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for id, item := range r.d.bookingDishes {
		if item.BookingID == bookingID {
			delete(r.d.bookingDishes, id)
		}
	}
	return nil
}

type guests struct{ d *db }

func (r guests) Create(_ context.Context, guest *models.Guest) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, g := range r.d.guests {
		if g.BookingID == guest.BookingID {
			return repository.ErrDuplicate
		}
	}
	if guest.ID.IsZero() {
		guest.ID = primitive.NewObjectID()
	}
	r.d.guests[guest.ID] = *guest
	return nil
}

func (r guests) FindByBooking(_ context.Context, bookingID primitive.ObjectID) (*models.Guest, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, g := range r.d.guests {
		if g.BookingID == bookingID {
			return &g, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r guests) Update(_ context.Context, guest *models.Guest) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	current, ok := r.d.guests[guest.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Name, current.Email, current.ContactPhone = guest.Name, guest.Email, guest.ContactPhone
	r.d.guests[guest.ID] = current
	return nil
}

func (r guests) DeleteByBooking(_ context.Context, bookingID primitive.ObjectID) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for id, g := range r.d.guests {
		if g.BookingID == bookingID {
			delete(r.d.guests, id)
		}
	}
	return nil
}

func (r guests) ListByBookings(_ context.Context, bookingIDs []primitive.ObjectID) ([]models.Guest, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	wanted := idSet(bookingIDs)
	var out []models.Guest
	for _, g := range r.d.guests {
		if wanted[g.BookingID] {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r guests) SearchByName(_ context.Context, text string) ([]models.Guest, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var out []models.Guest
	for _, g := range r.d.guests {
		if containsFold(g.Name, text) {
			out = append(out, g)
		}
	}
	return out, nil
}

type dishes struct{ d *db }

func (r dishes) Create(_ context.Context, dish *models.Dish) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if dish.ID.IsZero() {
		dish.ID = primitive.NewObjectID()
	}
	r.d.dishes[dish.ID] = *dish
	return nil
}

func (r dishes) GetByID(_ context.Context, id primitive.ObjectID) (*models.Dish, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	dish, ok := r.d.dishes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &dish, nil
}

func (r dishes) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Dish, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var out []models.Dish
	for id := range idSet(ids) {
		if dish, ok := r.d.dishes[id]; ok {
			out = append(out, dish)
		}
	}
	return out, nil
}

func (r dishes) List(_ context.Context, filter repository.DishFilter) ([]models.Dish, int64, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var matched []models.Dish
	for _, dish := range r.d.dishes {
		if filter.Category != "" && dish.Category != filter.Category {
			continue
		}
		if filter.IsAvailable != nil && dish.IsAvailable != *filter.IsAvailable {
			continue
		}
		matched = append(matched, dish)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

type users struct{ d *db }

func (r users) Create(_ context.Context, user *models.User) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	for _, u := range r.d.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.d.users[user.ID] = *user
	return nil
}

func (r users) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	u, ok := r.d.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	for _, u := range r.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r users) UpdateTokens(_ context.Context, id primitive.ObjectID, token, refreshToken string) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	u, ok := r.d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Token, u.Refresh_Token, u.Updated_at = token, refreshToken, time.Now().UTC()
	r.d.users[id] = u
	return nil
}

func (r users) SearchByName(_ context.Context, text string) ([]models.User, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var out []models.User
	for _, u := range r.d.users {
		if containsFold(u.Fullname, text) {
			out = append(out, u)
		}
	}
	return out, nil
}

type orders struct{ d *db }

func (r orders) Create(_ context.Context, order *models.Order) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.d.orders[order.ID] = *order
	return nil
}

func (r orders) GetByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	o, ok := r.d.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (r orders) FindByBooking(_ context.Context, bookingID primitive.ObjectID) (*models.Order, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var found *models.Order
	for _, o := range r.d.orders {
		if o.BookingID == nil || *o.BookingID != bookingID {
			continue
		}
		if found == nil || o.CreatedAt.After(found.CreatedAt) {
			o := o
			found = &o
		}
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	return found, nil
}

func (r orders) ListPendingBefore(_ context.Context, cutoff time.Time) ([]models.Order, error) {
	r.d.mu.RLock()
	defer r.d.mu.RUnlock()
	var out []models.Order
	for _, o := range r.d.orders {
		if o.PaymentStatus == models.PaymentPending && o.CreatedAt.Before(cutoff) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r orders) TransitionPaymentStatus(_ context.Context, id primitive.ObjectID, from, to models.PaymentStatus) error {
	return r.transition(id, from, func(o *models.Order) { o.PaymentStatus = to })
}

func (r orders) RecordPayment(_ context.Context, id primitive.ObjectID, from, to models.PaymentStatus, prepaid float64) error {
	return r.transition(id, from, func(o *models.Order) {
		o.PaymentStatus = to
		o.PrepaidAmount = prepaid
	})
}

func (r orders) transition(id primitive.ObjectID, from models.PaymentStatus, apply func(*models.Order)) error {
	r.d.mu.Lock()
	defer r.d.mu.Unlock()
	o, ok := r.d.orders[id]
	if !ok || o.PaymentStatus != from {
		return repository.ErrNotFound
	}
	apply(&o)
	r.d.orders[id] = o
	return nil
}
