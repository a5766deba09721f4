// Package notification renders booking confirmations and hands them to a Mailer.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"go-restaurant-booking/models"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	QRContentID     = "qr_code_image"
	qrFilename      = "booking_qr.png"
	qrSize          = 256
	confirmSubject  = "Reservation Confirmation at Our Restaurant"
	noDishesMessage = "The customer will order at the restaurant."
)

type Dispatcher struct {
	mailer      Mailer
	from        string
	scanBaseURL string
	tmpl        *template.Template
}

func NewDispatcher(mailer Mailer, from, scanBaseURL string) *Dispatcher {
	return &Dispatcher{
		mailer:      mailer,
		from:        from,
		scanBaseURL: strings.TrimRight(scanBaseURL, "/"),
		tmpl:        template.Must(template.New("confirmation").Funcs(template.FuncMap{"vnd": formatAmount}).Parse(confirmationTemplate)),
	}
}

// ScanURL is the staff check-in link encoded in the QR code.
func (d *Dispatcher) ScanURL(bookingID string) string {
	return fmt.Sprintf("%s/staff/scan/%s", d.scanBaseURL, bookingID)
}

type confirmationView struct {
	models.Confirmation
	CustomerName  string
	CustomerPhone string
	TableNumber   string
	HasDishes     bool
	NoDishes      string
}

func (d *Dispatcher) SendBookingConfirmation(ctx context.Context, to string, c models.Confirmation) error {
	png, err := qrcode.Encode(d.ScanURL(c.ID), qrcode.Medium, qrSize)
	if err != nil {
		return fmt.Errorf("encode qr code: %w", err)
	}
	html, err := d.Render(c)
	if err != nil {
		return err
	}
	return d.mailer.Send(ctx, Message{
		From:    d.from,
		To:      to,
		Subject: confirmSubject,
		HTML:    html,
		Inline:  []Attachment{{Filename: qrFilename, ContentID: QRContentID, Data: png}},
	})
}

// Render produces the HTML body of the confirmation mail.
func (d *Dispatcher) Render(c models.Confirmation) (string, error) {
	view := confirmationView{
		Confirmation:  c,
		CustomerName:  "Customer",
		CustomerPhone: "No phone number",
		HasDishes:     len(c.Dishes) > 0,
		NoDishes:      noDishesMessage,
	}
	if c.Customer != nil {
		if c.Customer.Name != "" {
			view.CustomerName = c.Customer.Name
		}
		if c.Customer.ContactPhone != "" {
			view.CustomerPhone = c.Customer.ContactPhone
		}
	}
	if c.Table != nil {
		view.TableNumber = c.Table.TableNumber
	}
	if view.PaymentMethod == "" {
		view.PaymentMethod = "N/A"
	}
	if view.PaymentStatus == "" {
		view.PaymentStatus = "N/A"
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}

// formatAmount renders 130000 as "130,000".
func formatAmount(v float64) string {
	digits := strconv.FormatInt(int64(math.Round(v)), 10)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

const confirmationTemplate = `<div style="max-width: 600px; margin: 0 auto; font-family: Arial, sans-serif; padding: 20px; border: 1px solid #ddd; border-radius: 10px; text-align: center;">
  <h1 style="color: #2c3e50; font-size: 27px;">Thank you for your reservation!</h1>
  <p style="font-size: 16px; color: #555;">Below is the information for your reservation:</p>
  <table style="width: 100%; border-collapse: collapse; margin-top: 20px; font-size: 15px;">
    <tr><td style="text-align: left; padding: 10px;"><b>Customer:</b></td><td style="text-align: right; padding: 10px;">{{.CustomerName}}</td></tr>
    <tr><td style="text-align: left; padding: 10px;"><b>Phone number:</b></td><td style="text-align: right; padding: 10px;">{{.CustomerPhone}}</td></tr>
    <tr><td style="text-align: left; padding: 10px;"><b>Booking date:</b></td><td style="text-align: right; padding: 10px;">{{.BookingDate}}</td></tr>
    <tr><td style="text-align: left; padding: 10px;"><b>Time:</b></td><td style="text-align: right; padding: 10px;">{{.StartTime}}</td></tr>
    <tr><td style="text-align: left; padding: 10px;"><b>Table number:</b></td><td style="text-align: right; padding: 10px;">{{.TableNumber}}</td></tr>
    {{- if .HasDishes}}
    <tr><td style="text-align: left; padding: 10px;"><b>Payment Method:</b></td><td style="text-align: right; padding: 10px;">{{.PaymentMethod}}</td></tr>
    <tr><td style="text-align: left; padding: 10px;"><b>Payment Status:</b></td><td style="text-align: right; padding: 10px;">{{.PaymentStatus}}</td></tr>
    {{- end}}
  </table>
  {{- if .Notes}}
  <div style="margin-top: 20px; padding: 15px; background-color: #fff3cd; border-left: 5px solid #ff9900;">
    <h4 style="margin: 0; color: #d35400;">Notes from the customer:</h4>
    <p style="margin: 5px 0; color: #333; font-size: 16px;">"{{.Notes}}"</p>
  </div>
  {{- end}}
  <table style="width: 100%; border-collapse: collapse; margin-top: 16px; font-size: 15px; color: #333;">
    <thead>
      <tr style="text-align: left; background-color: #f1f1f1;">
        <th style="padding: 10px;">Dish</th><th style="padding: 10px; text-align: center;">Quantity</th><th style="padding: 10px; text-align: right;">Price (VND)</th>
      </tr>
    </thead>
    <tbody>
    {{- range .Dishes}}
      <tr><td style="padding: 10px; text-align: left;">{{.Name}}</td><td style="padding: 10px; text-align: center;">x{{.Quantity}}</td><td style="padding: 10px; text-align: right;">{{vnd .Price}} VND</td></tr>
    {{- else}}
      <tr><td colspan="3" style="text-align: center; padding: 12px; font-weight: bold; color: #888;">{{.NoDishes}}</td></tr>
    {{- end}}
      <tr><td colspan="2" style="padding: 10px; font-weight: bold; text-align: left;">Total (Excluding tax):</td><td style="padding: 10px; font-weight: bold; color: #27ae60; text-align: right;">{{vnd .TotalBill}} VND</td></tr>
    </tbody>
  </table>
  <h3 style="color: #2c3e50; font-size: 22px; margin-top: 33px;">QR Code for Booking Verification</h3>
  <p style="color: #666; font-size: 14px;">Please present this QR code when arriving at the restaurant</p>
  <img src="cid:qr_code_image" alt="Booking QR Code" style="width: 180px; height: auto;" />
</div>`
