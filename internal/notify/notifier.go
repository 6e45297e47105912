// Package notify delivers best-effort booking notifications. Delivery runs
// after a state transition has committed; failures are logged and swallowed,
// never surfaced to the booking caller.
package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"lesson-booking/internal/data/entity"
	"lesson-booking/pkg/utils"

	"go.uber.org/zap"
)

type EventKind string

const (
	EventBooked      EventKind = "lesson_booked"
	EventConfirmed   EventKind = "lesson_confirmed"
	EventRescheduled EventKind = "lesson_rescheduled"
	EventCancelled   EventKind = "lesson_cancelled"
	EventCompleted   EventKind = "lesson_completed"
)

type Notifier interface {
	Notify(ctx context.Context, kind EventKind, recipient string, lesson *entity.Lesson)
}

// New returns the SMTP notifier when a host is configured, otherwise the
// log-only notifier used in development.
func New(cfg utils.EmailConfig, log *zap.Logger) Notifier {
	if cfg.Host == "" {
		return &logNotifier{log: log.With(zap.String("notifier", "log"))}
	}
	return &smtpNotifier{cfg: cfg, log: log.With(zap.String("notifier", "smtp"))}
}

type logNotifier struct {
	log *zap.Logger
}

func (n *logNotifier) Notify(ctx context.Context, kind EventKind, recipient string, lesson *entity.Lesson) {
	n.log.Info("Notification",
		zap.String("event", string(kind)),
		zap.String("recipient", recipient),
		zap.String("lesson_id", lesson.ID.String()),
		zap.Time("start_time", lesson.StartTime),
	)
}

type smtpNotifier struct {
	cfg utils.EmailConfig
	log *zap.Logger
}

func (n *smtpNotifier) Notify(ctx context.Context, kind EventKind, recipient string, lesson *entity.Lesson) {
	subject := subjectFor(kind)
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\nLesson %q on %s (%d min).\r\n",
		n.cfg.From, recipient, subject,
		lesson.Title, lesson.StartTime.Format("2006-01-02 15:04 MST"), lesson.DurationMinutes)

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)

	if err := smtp.SendMail(addr, auth, n.cfg.From, []string{recipient}, []byte(body)); err != nil {
		// Best effort only. The transition already committed.
		n.log.Warn("Failed to send notification email",
			zap.Error(err),
			zap.String("event", string(kind)),
			zap.String("recipient", recipient),
			zap.String("lesson_id", lesson.ID.String()),
		)
		return
	}

	n.log.Info("Notification email sent",
		zap.String("event", string(kind)),
		zap.String("recipient", recipient),
		zap.String("lesson_id", lesson.ID.String()),
	)
}

func subjectFor(kind EventKind) string {
	switch kind {
	case EventBooked:
		return "Your lesson has been booked"
	case EventConfirmed:
		return "Your lesson is confirmed"
	case EventRescheduled:
		return "Your lesson has been rescheduled"
	case EventCancelled:
		return "Your lesson has been cancelled"
	case EventCompleted:
		return "Your lesson is complete"
	default:
		return "Lesson update"
	}
}
