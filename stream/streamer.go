// Package stream publishes rendered frames over MQTT for live playback.
package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/framecast/scene"
)

// Publisher is the part of mqtt.Client a Streamer uses.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Announcement is published, retained, on the contract topic at the start
// and end of a stream.
type Announcement struct {
	Contract scene.Contract `json:"contract"`
	State    string         `json:"state"`
}

// Streamer is a render backend that publishes each frame's primitive list.
type Streamer struct {
	config Config
	client Publisher
	logger *slog.Logger

	contract scene.Contract
	ticker   *time.Ticker
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client Publisher, logger *slog.Logger) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.logger = logger
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *Streamer) publish(topic string, retained bool, payload []byte) error {
	token := s.client.Publish(topic, s.config.QoS, retained, payload)
	timeout := s.config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publish to %s timed out after %s", topic, timeout)
	}
	return token.Error()
}

func (s *Streamer) announce(state string) error {
	if s.config.Topics.Contract == "" {
		return nil
	}
	b, err := json.Marshal(Announcement{Contract: s.contract, State: state})
	if err != nil {
		return err
	}
	return s.publish(s.config.Topics.Contract, true, b)
}

func (s *Streamer) Begin(c scene.Contract) error {
	s.contract = c
	if s.config.Realtime {
		s.ticker = time.NewTicker(c.FrameInterval())
	}
	s.logger.Info("streaming", "topic", s.config.Topics.Frames, "realtime", s.config.Realtime)
	return s.announce("playing")
}

// WriteFrame sends a frame, waiting for its slot first when paced.
func (s *Streamer) WriteFrame(index int, prims []scene.Primitive) error {
	if s.ticker != nil && index > 0 {
		<-s.ticker.C
	}
	b, err := NewFrame(s.contract, index, prims).MarshalBinary()
	if err != nil {
		return err
	}
	return s.publish(s.config.Topics.Frames, false, b)
}

func (s *Streamer) End() error {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	return s.announce("stopped")
}
