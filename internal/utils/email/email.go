package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/finquest/finquest-api/internal/config"
	"github.com/finquest/finquest-api/internal/utils"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendGoalReminder notifies a user that a goal is running behind the pace
// required to hit its target by the deadline.
func (s *Sender) SendGoalReminder(to, username, goalTitle string, deadline time.Time, requiredMonthly, actualMonthly float64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your goal %q is falling behind", goalTitle)

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your goal %q (deadline %s) needs %s per month to stay on track, "+
			"but your current plan invests %s per month.\n"+
			"Consider raising your monthly contribution or adjusting the deadline.\n"+
			"\nBest regards,\nFinQuest",
		username, goalTitle, deadline.Format("2006-01-02"),
		utils.FormatINR(requiredMonthly), utils.FormatINR(actualMonthly),
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send goal reminder to %s: %v", to, err)
		return fmt.Errorf("failed to send goal reminder: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
