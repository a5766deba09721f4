package models

// Customer is the resolved contact of a booking, from the identity store or the guest record.
type Customer struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	ContactPhone string `json:"contactPhone"`
}

// DishLine is a line item joined with the live catalog entry.
type DishLine struct {
	DishID      string  `json:"dishId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageUrl    string  `json:"imageUrl,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
	Quantity    int     `json:"quantity"`
}

// BookingDetails is the denormalised booking view returned to clients.
type BookingDetails struct {
	ID              string        `json:"_id"`
	UserID          string        `json:"userId,omitempty"`
	Table           *Table        `json:"tableId"`
	OrderType       OrderType     `json:"orderType"`
	BookingDate     string        `json:"bookingDate"`
	StartTime       string        `json:"startTime"`
	EndTime         string        `json:"endTime"`
	Status          BookingStatus `json:"status"`
	Notes           string        `json:"notes"`
	ContactPhone    string        `json:"contactPhone"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty"`
	TotalBill       float64       `json:"totalBill"`
	CreatedAt       string        `json:"createdAt"`
	Dishes          []DishLine    `json:"dishes"`
	Customer        *Customer     `json:"customer,omitempty"`
	Guest           *Guest        `json:"guest,omitempty"`
}

// OrderAtRestaurant replaces the dish list of a confirmation without line items.
const OrderAtRestaurant = "Order at the restaurant"

// Confirmation is the payload of a confirmed booking, also used to render the invoice mail.
type Confirmation struct {
	BookingDetails
	DishSummary   string `json:"dishSummary,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`
}

type UserSummary struct {
	ID          string `json:"_id"`
	Fullname    string `json:"fullname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type TableSummary struct {
	ID          string `json:"_id"`
	TableNumber string `json:"tableNumber"`
	Capacity    int    `json:"capacity"`
}

// Reservation is one row of the staff reservation list.
type Reservation struct {
	Booking
	User   *UserSummary  `json:"user"`
	Table  *TableSummary `json:"table"`
	Dishes []DishLine    `json:"dishes"`
	Guest  *Guest        `json:"guest"`
}
