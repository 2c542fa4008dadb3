package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyline-air/booking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s about %s for flight %d seat(s) %s\n",
		event.Email, event.Type, event.FlightID, strings.Join(event.Seats, ", "))
	return nil
}
