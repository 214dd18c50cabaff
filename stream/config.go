package stream

import (
	"errors"
	"time"
)

// Config is the mqtt section of the configuration file.
type Config struct {
	URL      string `yaml:"url"`
	ClientID string `yaml:"clientId"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      byte   `yaml:"qos"`
	// Realtime paces publishing at the composition frame rate.
	Realtime bool          `yaml:"realtime"`
	Timeout  time.Duration `yaml:"timeout"`
	Topics   struct {
		Frames   string `yaml:"frames"`
		Contract string `yaml:"contract"`
	} `yaml:"topics"`
}

// DefaultConfig returns the settings used when the file leaves them out.
func DefaultConfig() Config {
	var c Config
	c.URL = "tcp://localhost:1883"
	c.ClientID = "framecast"
	c.QoS = 1
	c.Realtime = true
	c.Timeout = 5 * time.Second
	c.Topics.Frames = "framecast/frames"
	c.Topics.Contract = "framecast/contract"
	return c
}

func (c Config) Validate() error {
	switch {
	case c.URL == "":
		return errors.New("mqtt: url is required")
	case c.QoS > 2:
		return errors.New("mqtt: qos must be 0, 1 or 2")
	case c.Topics.Frames == "":
		return errors.New("mqtt: frames topic is required")
	}
	return nil
}
