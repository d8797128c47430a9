package login

import (
	"encoding/json"
	"fmt"
)

// Message - сообщение очереди, Body содержит Event в JSON
type Message struct {
	ID            string
	ReceiptHandle string
	Body          string
}

// Event - вход пользователя в том виде, в котором его публикует приложение: ip и device_id открытые
type Event struct {
	UserID     *string `json:"user_id"`
	AppVersion string  `json:"app_version"`
	DeviceType *string `json:"device_type"`
	IP         *string `json:"ip"`
	Locale     string  `json:"locale"`
	DeviceID   *string `json:"device_id"`
}

func ParseEvent(body string) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (e Event) Validate() error {
	switch {
	case e.UserID == nil:
		return fmt.Errorf("%w: user_id", ErrInvalidEvent)
	case e.DeviceType == nil:
		return fmt.Errorf("%w: device_type", ErrInvalidEvent)
	case e.IP == nil:
		return fmt.Errorf("%w: ip", ErrInvalidEvent)
	case e.DeviceID == nil:
		return fmt.Errorf("%w: device_id", ErrInvalidEvent)
	}
	return nil
}

// Mask шифрует ip и device_id. Шифрование детерминированное, поэтому повторный вход
// с того же ip и устройства дает ту же пару masked_ip/masked_device_id.
func (e Event) Mask(c *Cipher) Login {
	ip := c.Encrypt(*e.IP)
	deviceID := c.Encrypt(*e.DeviceID)
	return Login{
		UserID:     e.UserID,
		AppVersion: e.AppVersion,
		DeviceType: e.DeviceType,
		IP:         &ip,
		Locale:     e.Locale,
		DeviceID:   &deviceID,
	}
}
