package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSClient is the fallback channel for deployments without a WhatsApp
// gateway instance.
type SMSClient struct {
	client *twilio.RestClient
	from   string
}

func NewSMSClient(accountSid, authToken, from string) *SMSClient {
	return &SMSClient{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *SMSClient) Configured() bool {
	return s.from != ""
}

func (s *SMSClient) Send(phone, message string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo("+" + NormalizePhone(phone))
	params.SetFrom(s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return &DispatchError{Channel: "sms", Err: err}
	}
	if resp.Sid == nil {
		return &DispatchError{Channel: "sms", Err: fmt.Errorf("no message SID returned")}
	}
	return nil
}
