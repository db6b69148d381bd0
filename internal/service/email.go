package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendRouteAssignmentNotification(ctx context.Context, driverEmail, driverName, date string, stopCount int) error {
	subject := fmt.Sprintf("Route assignment for %s", date)
	body := fmt.Sprintf("Hello %s,\n\nYou have been assigned a new route for %s with %d stops.\n\nPlease review your route sheet before heading out.\n\nDispatch", driverName, date, stopCount)
	return s.send(driverEmail, subject, body)
}

func (s *emailService) SendReturnReminderNotification(ctx context.Context, driverEmail, driverName, date string, rentalIDs []int32) error {
	ids := make([]string, len(rentalIDs))
	for i, id := range rentalIDs {
		ids[i] = fmt.Sprintf("#%d", id)
	}
	subject := fmt.Sprintf("Collections due %s", date)
	body := fmt.Sprintf("Hello %s,\n\nThe following rentals are due for collection on %s: %s.\n\nDispatch", driverName, date, strings.Join(ids, ", "))
	return s.send(driverEmail, subject, body)
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
