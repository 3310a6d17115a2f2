package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// Timeout bounds connect and publish.
const Timeout = 5 * time.Second

// Broker holds connection settings.
type Broker struct {
	URL      string
	ClientID string
	Username string
	Password string
}

// Summary is the run report announced after a tint batch.
type Summary struct {
	Tinted  int `json:"tinted"`
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Announce publishes s as JSON to topic with QoS 1, not retained.
func Announce(b Broker, topic string, s Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("mqtt: encode summary: %w", err)
	}
	return Publish(b, topic, data, 1, false)
}

// Publish connects to an MQTT broker, publishes a message to the given
// topic, and disconnects. Each invocation creates a fresh connection.
func Publish(b Broker, topic string, payload []byte, qos byte, retain bool) error {
	clientID := b.ClientID
	if clientID == "" {
		clientID = "flavoricons"
	}
	opts := pahomqtt.NewClientOptions().
		AddBroker(b.URL).
		SetClientID(clientID).
		SetConnectTimeout(Timeout).
		SetAutoReconnect(false)

	if b.Username != "" {
		opts.SetUsername(b.Username)
	}
	if b.Password != "" {
		opts.SetPassword(b.Password)
	}

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(Timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(topic, qos, retain, payload)
	if !pub.WaitTimeout(Timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}
