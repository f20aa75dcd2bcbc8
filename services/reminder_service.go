// services/reminder_service.go
package services

import (
	"time"

	"gympro-backend/notify"
	"gympro-backend/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderService nudges customers whose membership is about to lapse. It
// runs daily and sends the payment-reminder template to everyone inside the
// expiring-soon horizon; each attempt lands in the notification log.
type ReminderService struct {
	customers  *repository.CustomerRepository
	dispatcher *notify.Dispatcher
	log        *logrus.Logger
	cron       *cron.Cron
}

func NewReminderService(customers *repository.CustomerRepository, dispatcher *notify.Dispatcher, log *logrus.Logger) *ReminderService {
	return &ReminderService{
		customers:  customers,
		dispatcher: dispatcher,
		log:        log,
	}
}

// StartScheduler begins the daily 9 AM reminder run.
func (s *ReminderService) StartScheduler() error {
	c := cron.New()
	if _, err := c.AddFunc("0 9 * * *", s.SendPaymentReminders); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	s.log.Info("payment reminder scheduler started")
	return nil
}

// Stop halts the scheduler; pending runs finish on their own.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// SendPaymentReminders runs one reminder sweep.
func (s *ReminderService) SendPaymentReminders() {
	s.log.Info("starting payment reminder run")

	customers, err := s.customers.ExpiringSoon(time.Now())
	if err != nil {
		s.log.WithError(err).Error("failed to fetch expiring customers")
		return
	}

	sent := 0
	for i := range customers {
		if customers[i].Phone == nil {
			continue
		}
		if err := s.dispatcher.Send(&customers[i], notify.TypePaymentReminder); err != nil {
			// Already logged and recorded by the dispatcher.
			continue
		}
		sent++
	}

	s.log.WithFields(logrus.Fields{
		"candidates": len(customers),
		"sent":       sent,
	}).Info("payment reminder run completed")
}
