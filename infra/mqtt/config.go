package mqtt

import "fmt"

// Config defines the connection parameters for the Paho MQTT listener.
type Config struct {
	Enabled       bool   `json:"enabled"`
	Broker        string `json:"broker"`
	ClientID      string `json:"client_id"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	RequestTopic  string `json:"request_topic"`
	ResponseTopic string `json:"response_topic"`
	QoS           byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "pitwall"
	}
	if c.RequestTopic == "" {
		c.RequestTopic = "pitwall/situation"
	}
	if c.ResponseTopic == "" {
		c.ResponseTopic = "pitwall/recommendation"
	}
}

// Validate checks mandatory fields when the listener is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2")
	}
	return nil
}
