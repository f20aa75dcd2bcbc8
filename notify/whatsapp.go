package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultGatewayURL = "https://bawa.app/api/v1/send-text"

// DispatchError wraps any delivery failure. Callers treat it as a soft
// warning: a failed message never rolls back the operation that produced it.
type DispatchError struct {
	Channel string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch over %s failed: %v", e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// WhatsAppClient talks to the send-text gateway. The gateway is a plain GET
// endpoint taking the token, instance id, JID and message as query
// parameters and answering JSON on a good day.
type WhatsAppClient struct {
	baseURL    string
	token      string
	instanceID string
	httpClient *http.Client
}

func NewWhatsAppClient(baseURL, token, instanceID string) *WhatsAppClient {
	if baseURL == "" {
		baseURL = defaultGatewayURL
	}
	return &WhatsAppClient{
		baseURL:    baseURL,
		token:      token,
		instanceID: instanceID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *WhatsAppClient) Configured() bool {
	return c.token != "" && c.instanceID != ""
}

// Send delivers one message. The provider's response body is returned for
// logging; some deployments answer plain text instead of JSON, which is
// tolerated as long as the HTTP status is good.
func (c *WhatsAppClient) Send(phone, message string) (map[string]interface{}, error) {
	jid := NormalizePhone(phone) + "@s.whatsapp.net"

	params := url.Values{}
	params.Set("token", c.token)
	params.Set("instance_id", c.instanceID)
	params.Set("jid", jid)
	params.Set("msg", message)

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &DispatchError{Channel: "whatsapp", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "GymPro/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &DispatchError{Channel: "whatsapp", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DispatchError{Channel: "whatsapp", Err: err}
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		data = map[string]interface{}{
			"rawResponse": string(body),
			"statusCode":  resp.StatusCode,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return data, &DispatchError{
			Channel: "whatsapp",
			Err:     fmt.Errorf("gateway returned HTTP %d", resp.StatusCode),
		}
	}

	if status, ok := data["status"].(string); ok && status != "success" {
		return data, &DispatchError{
			Channel: "whatsapp",
			Err:     fmt.Errorf("gateway status %q", status),
		}
	}

	return data, nil
}
