package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"fitboks/internal/logger"
	"fitboks/internal/metrics"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type Job struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	length, err := s.redis.LPush(ctx, queueKey, data).Result()
	if err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		return err
	}

	metrics.SetEmailQueueLength(length)
	metrics.RecordEmail(job.Type, "queued")
	logger.Infof("Email queued: %s to %s", job.Subject, job.To)
	return nil
}

// Start runs the delivery loop until ctx is cancelled. Run it in its own
// goroutine from main.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}
	metrics.SetEmailQueueLength(s.QueueLength(ctx))

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendBookingConfirmation(ctx context.Context, email, name string, boxID int, date time.Time, startHour, endHour int, code string) error {
	subject := fmt.Sprintf("Booking Confirmed - Box %d", boxID)
	body := fmt.Sprintf(`Hi %s,

Your box is booked!

Box: %d
Date: %s
Time: %02d:00 - %02d:00
Booking code: %s

See you at the center!

- Fitboks`, name, boxID, date.Format("Monday, Jan 2 2006"), startHour, endHour, code)

	return s.enqueue(ctx, Job{
		To:      email,
		Name:    name,
		Type:    "booking_confirmation",
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendBookingCancellation(ctx context.Context, email, name string, boxID int, date time.Time, startHour int) error {
	subject := fmt.Sprintf("Booking Cancelled - Box %d", boxID)
	body := fmt.Sprintf(`Hi %s,

Your booking has been cancelled:

Box: %d
Date: %s
Time: %02d:00

- Fitboks`, name, boxID, date.Format("Monday, Jan 2 2006"), startHour)

	return s.enqueue(ctx, Job{
		To:      email,
		Name:    name,
		Type:    "booking_cancellation",
		Subject: subject,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendWelcome(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(`Hi %s,

Welcome to Fitboks! Your account is ready.

Log in to book a box at your fitness center.

- Fitboks`, name)

	return s.enqueue(ctx, Job{
		To:      email,
		Name:    name,
		Type:    "welcome",
		Subject: "Welcome to Fitboks",
		Body:    body,
		Created: time.Now(),
	})
}
