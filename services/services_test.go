package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go-restaurant-booking/helpers"
	"go-restaurant-booking/models"
	"go-restaurant-booking/repository"
	"go-restaurant-booking/repository/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sentMail struct {
	to           string
	confirmation models.Confirmation
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) SendBookingConfirmation(_ context.Context, to string, c models.Confirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, confirmation: c})
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []string
}

func (e *fakeEvents) Publish(_ context.Context, event string, _ interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

type fixture struct {
	svc    *Services
	store  *repository.Store
	mailer *fakeMailer
	events *fakeEvents
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  memory.NewStore(),
		mailer: &fakeMailer{},
		events: &fakeEvents{},
		now:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.svc = New(f.store, helpers.NewTokenHelper("test-secret", time.Hour), Options{
		Confirmations: f.mailer,
		Events:        f.events,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:           func() time.Time { return f.now },
	})
	return f
}

func (f *fixture) table(t *testing.T, number string) *models.Table {
	t.Helper()
	table, err := f.svc.Tables.Create(context.Background(), CreateTableInput{TableNumber: number, Capacity: 4})
	if err != nil {
		t.Fatalf("create table %s: %v", number, err)
	}
	return table
}

func (f *fixture) dish(t *testing.T, name string, price float64) *models.Dish {
	t.Helper()
	dish := &models.Dish{Name: name, Category: "main", Price: price, IsAvailable: true}
	if err := f.store.Dishes.Create(context.Background(), dish); err != nil {
		t.Fatalf("create dish: %v", err)
	}
	return dish
}

func (f *fixture) user(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Fullname: name, Email: email, PhoneNumber: "0900000000", Role: "CUSTOMER"}
	if err := f.store.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func guestBooking(tableID primitive.ObjectID, date, start string) CreateBookingInput {
	return CreateBookingInput{
		TableID:      tableID.Hex(),
		BookingDate:  date,
		StartTime:    start,
		Name:         "Guest",
		Email:        "guest@example.com",
		ContactPhone: "0911111111",
	}
}

func (f *fixture) book(t *testing.T, in CreateBookingInput) *models.Booking {
	t.Helper()
	b, err := f.svc.Bookings.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create booking %s %s: %v", in.BookingDate, in.StartTime, err)
	}
	return b
}

func expectKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s (%v)", want, got, err)
	}
}
