package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/TheCosmicVibe/Tallie-App/config"
	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

// Notifier delivers customer-facing messages. Every method is fire-and-forget:
// implementations log failures and never return them, because a booking must
// not fail on a broken mail gateway.
type Notifier interface {
	SendReservationConfirmation(reservation *models.Reservation, restaurantName, tableNumber string)
	SendReservationModification(reservation *models.Reservation, restaurantName, tableNumber string)
	SendReservationCancellation(reservation *models.Reservation, restaurantName string)
	SendWaitlistJoined(entry *models.Waitlist, restaurantName string)
	SendWaitlistTableAvailable(entry *models.Waitlist, restaurantName, availableTime, tableNumber string)
}

// NotificationService sends email through SendGrid and SMS through Twilio.
// With no credentials configured it degrades to logging the payloads, which
// is what local development runs on.
type NotificationService struct {
	cfg          *config.Config
	twilioClient *twilio.RestClient
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	svc := &NotificationService{cfg: cfg}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		svc.twilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	return svc
}

func (s *NotificationService) SendReservationConfirmation(reservation *models.Reservation, restaurantName, tableNumber string) {
	subject := "Reservation Confirmation"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour reservation has been confirmed!\n\nDetails:\n- Date: %s\n- Time: %s\n- Party Size: %d\n- Table: %s\n- Confirmation Code: %s\n\nWe look forward to serving you!\n\nBest regards,\n%s",
		reservation.CustomerName, reservation.ReservationDate, reservation.StartTime,
		reservation.PartySize, tableNumber, reservation.ConfirmationCode, restaurantName,
	)
	sms := fmt.Sprintf(
		"Hi %s! Your reservation at %s is confirmed for %s at %s. Code: %s",
		reservation.CustomerName, restaurantName, reservation.ReservationDate,
		reservation.StartTime, reservation.ConfirmationCode,
	)
	s.deliver("confirmation", reservation.CustomerName, emailOrEmpty(reservation.CustomerEmail), reservation.CustomerPhone, subject, body, sms)
}

func (s *NotificationService) SendReservationModification(reservation *models.Reservation, restaurantName, tableNumber string) {
	subject := "Reservation Modified"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour reservation has been updated.\n\nNew Details:\n- Date: %s\n- Time: %s\n- Party Size: %d\n- Table: %s\n\nBest regards,\n%s",
		reservation.CustomerName, reservation.ReservationDate, reservation.StartTime,
		reservation.PartySize, tableNumber, restaurantName,
	)
	sms := fmt.Sprintf(
		"Hi %s! Your reservation at %s has been updated to %s at %s.",
		reservation.CustomerName, restaurantName, reservation.ReservationDate, reservation.StartTime,
	)
	s.deliver("modification", reservation.CustomerName, emailOrEmpty(reservation.CustomerEmail), reservation.CustomerPhone, subject, body, sms)
}

func (s *NotificationService) SendReservationCancellation(reservation *models.Reservation, restaurantName string) {
	subject := "Reservation Cancelled"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour reservation has been cancelled.\n\nDetails:\n- Date: %s\n- Time: %s\n- Confirmation Code: %s\n\nWe hope to see you again soon!\n\nBest regards,\n%s",
		reservation.CustomerName, reservation.ReservationDate, reservation.StartTime,
		reservation.ConfirmationCode, restaurantName,
	)
	sms := fmt.Sprintf(
		"Hi %s! Your reservation at %s for %s has been cancelled.",
		reservation.CustomerName, restaurantName, reservation.ReservationDate,
	)
	s.deliver("cancellation", reservation.CustomerName, emailOrEmpty(reservation.CustomerEmail), reservation.CustomerPhone, subject, body, sms)
}

func (s *NotificationService) SendWaitlistJoined(entry *models.Waitlist, restaurantName string) {
	subject := "Added to Waitlist"
	body := fmt.Sprintf(
		"Dear %s,\n\nYou've been added to our waitlist.\n\nDetails:\n- Date: %s\n- Party Size: %d\n- Position: %d\n\nWe'll notify you when a table becomes available.\n\nBest regards,\n%s",
		entry.CustomerName, entry.WaitlistDate, entry.PartySize, entry.Position, restaurantName,
	)
	sms := fmt.Sprintf(
		"Hi %s! You're #%d on the waitlist for %s on %s.",
		entry.CustomerName, entry.Position, restaurantName, entry.WaitlistDate,
	)
	s.deliver("waitlist", entry.CustomerName, emailOrEmpty(entry.CustomerEmail), entry.CustomerPhone, subject, body, sms)
}

func (s *NotificationService) SendWaitlistTableAvailable(entry *models.Waitlist, restaurantName, availableTime, tableNumber string) {
	subject := "Table Available!"
	body := fmt.Sprintf(
		"Dear %s,\n\nGood news! Table %s at %s is now available at %s for your party of %d.\n\nPlease respond promptly to claim it.\n\nBest regards,\n%s",
		entry.CustomerName, tableNumber, restaurantName, availableTime, entry.PartySize, restaurantName,
	)
	sms := fmt.Sprintf(
		"Hi %s! Table %s at %s is available at %s for your party of %d. Reply to claim it.",
		entry.CustomerName, tableNumber, restaurantName, availableTime, entry.PartySize,
	)
	s.deliver("waitlist availability", entry.CustomerName, emailOrEmpty(entry.CustomerEmail), entry.CustomerPhone, subject, body, sms)
}

func (s *NotificationService) deliver(kind, customerName, email, phone, subject, body, sms string) {
	if !s.cfg.EnableNotifications {
		utils.InfoLogger.Printf("Notifications disabled, skipping %s for %s", kind, customerName)
		return
	}

	if email != "" {
		if err := s.sendEmail(email, customerName, subject, body); err != nil {
			utils.ErrorLogger.Printf("Failed to send %s email to %s: %v", kind, email, err)
		}
	}
	if phone != "" {
		if err := s.sendSMS(phone, sms); err != nil {
			utils.ErrorLogger.Printf("Failed to send %s SMS to %s: %v", kind, phone, err)
		}
	}

	utils.InfoLogger.Printf("%s notification sent to %s", kind, customerName)
}

func (s *NotificationService) sendEmail(toEmail, toName, subject, body string) error {
	if s.cfg.SendGridAPIKey == "" {
		utils.InfoLogger.Printf("Email (mock) to %s: %s", toEmail, subject)
		return nil
	}

	from := sgmail.NewEmail(s.cfg.NotificationFromName, s.cfg.NotificationFromEmail)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	return nil
}

func (s *NotificationService) sendSMS(toPhone, body string) error {
	if s.twilioClient == nil || s.cfg.NotificationFromPhone == "" {
		utils.InfoLogger.Printf("SMS (mock) to %s: %s", toPhone, body)
		return nil
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(s.cfg.NotificationFromPhone)
	params.SetBody(body)

	_, err := s.twilioClient.Api.CreateMessage(params)
	return err
}

func emailOrEmpty(email *string) string {
	if email == nil {
		return ""
	}
	return *email
}
