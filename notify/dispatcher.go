package notify

import (
	"time"

	"gympro-backend/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dispatcher picks a channel, sends, and records every attempt in the
// notification log. Delivery is best-effort by contract: callers that just
// renewed a customer report a failure as a warning and move on.
type Dispatcher struct {
	db       *gorm.DB
	whatsapp *WhatsAppClient
	sms      *SMSClient
	log      *logrus.Logger
}

func NewDispatcher(db *gorm.DB, whatsapp *WhatsAppClient, sms *SMSClient, log *logrus.Logger) *Dispatcher {
	return &Dispatcher{db: db, whatsapp: whatsapp, sms: sms, log: log}
}

// Send formats the template for the customer and delivers it. Returns a
// *DispatchError on any failure, including a customer with no phone.
func (d *Dispatcher) Send(customer *models.Customer, msgType MessageType) error {
	phone := customer.PhoneNumber()
	if phone == "" {
		return &DispatchError{Channel: "none", Err: errNoPhone}
	}

	data := TemplateData{
		Name:         customer.Name,
		Gender:       customer.Gender,
		Fee:          customer.Fee,
		RegisterDate: customer.RegisterDate.Format("2006-01-02"),
	}
	if customer.ExpireDate != nil {
		data.ExpireDate = customer.ExpireDate.Format("2006-01-02")
	}

	message, err := BuildMessage(msgType, data)
	if err != nil {
		return &DispatchError{Channel: "none", Err: err}
	}

	channel := "whatsapp"
	var sendErr error
	switch {
	case d.whatsapp != nil && d.whatsapp.Configured():
		_, sendErr = d.whatsapp.Send(phone, message)
	case d.sms != nil && d.sms.Configured():
		channel = "sms"
		sendErr = d.sms.Send(phone, message)
	default:
		channel = "none"
		sendErr = &DispatchError{Channel: "none", Err: errNoChannel}
	}

	d.record(customer.ID, msgType, message, channel, sendErr)

	if sendErr != nil {
		d.log.WithFields(logrus.Fields{
			"customer_id": customer.ID,
			"type":        msgType,
			"channel":     channel,
		}).WithError(sendErr).Warn("message dispatch failed")
		if _, ok := sendErr.(*DispatchError); ok {
			return sendErr
		}
		return &DispatchError{Channel: channel, Err: sendErr}
	}

	d.log.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"type":        msgType,
		"channel":     channel,
	}).Info("message sent")
	return nil
}

// SendAsync fires the dispatch on its own goroutine so message latency never
// sits on the request path.
func (d *Dispatcher) SendAsync(customer *models.Customer, msgType MessageType) {
	snapshot := *customer
	go func() {
		// Send logs its own failures; nothing to do with the error here.
		_ = d.Send(&snapshot, msgType)
	}()
}

func (d *Dispatcher) record(customerID uint, msgType MessageType, message, channel string, sendErr error) {
	if d.db == nil {
		return
	}
	entry := models.NotificationLog{
		CustomerID: customerID,
		Type:       string(msgType),
		Message:    message,
		Status:     "sent",
		Channel:    channel,
		SentAt:     time.Now(),
	}
	if sendErr != nil {
		entry.Status = "failed"
		entry.ErrorMessage = sendErr.Error()
	}
	if err := d.db.Create(&entry).Error; err != nil {
		d.log.WithError(err).Error("failed to write notification log")
	}
}
