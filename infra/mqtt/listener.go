// Package mqtt provides an optional situation source over MQTT. Each request
// message carries exactly one race-situation snapshot; the advisor's
// recommendation (or error) is published back on the response topic. This is
// request/response plumbing, not a streaming telemetry feed.
package mqtt

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/pitlane-analytics/pitwall/core/advisor"
	"github.com/pitlane-analytics/pitwall/core/logger"
	"github.com/pitlane-analytics/pitwall/core/model"
	infralogger "github.com/pitlane-analytics/pitwall/infra/logger"
)

// situationRequest is the wire format of one snapshot.
type situationRequest struct {
	RequestID        string  `json:"request_id,omitempty"`
	Track            string  `json:"track"`
	Compound         string  `json:"compound"`
	CurrentLap       int     `json:"current_lap"`
	LapsRemaining    int     `json:"laps_remaining"`
	TireAge          int     `json:"tire_age"`
	DegradationLevel float64 `json:"degradation_level"`
	TrackTemp        float64 `json:"track_temp"`
	AirTemp          float64 `json:"air_temp"`
	Humidity         float64 `json:"humidity"`
	Position         int     `json:"position"`
}

// recommendationResponse is published for every request, success or not.
type recommendationResponse struct {
	RequestID string                  `json:"request_id"`
	Result    *model.PredictionResult `json:"result,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// Listener subscribes to situation requests and answers with
// recommendations.
type Listener struct {
	cli paho.Client
	cfg Config
	adv *advisor.Advisor
	log logger.Logger
}

// NewListener connects to the broker and returns a ready Listener.
func NewListener(cfg Config, adv *advisor.Advisor) (*Listener, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	cli := paho.NewClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &Listener{cli: cli, cfg: cfg, adv: adv, log: infralogger.New("mqtt-listener")}, nil
}

// Start subscribes to the request topic. It returns once the subscription is
// active; message handling continues until Close.
func (l *Listener) Start() error {
	tok := l.cli.Subscribe(l.cfg.RequestTopic, l.cfg.QoS, l.handle)
	if tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", l.cfg.RequestTopic, tok.Error())
	}
	l.log.Infof("listening for situations on %s", l.cfg.RequestTopic)
	return nil
}

func (l *Listener) handle(_ paho.Client, msg paho.Message) {
	l.respond(l.process(msg.Payload()))
}

// process turns one request payload into the response to publish.
func (l *Listener) process(payload []byte) recommendationResponse {
	var req situationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		l.log.Errorf("decode situation request: %v", err)
		return recommendationResponse{RequestID: uuid.NewString(), Error: "malformed request"}
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	s := model.RaceSituation{
		CurrentLap:       req.CurrentLap,
		LapsRemaining:    req.LapsRemaining,
		TireAge:          req.TireAge,
		DegradationLevel: req.DegradationLevel,
		TrackTemp:        req.TrackTemp,
		AirTemp:          req.AirTemp,
		Humidity:         req.Humidity,
		Position:         req.Position,
	}
	res, err := l.adv.Recommend(s, req.Track, req.Compound)
	if err != nil {
		l.log.Warnf("request %s: %v", req.RequestID, err)
		return recommendationResponse{RequestID: req.RequestID, Error: err.Error()}
	}
	return recommendationResponse{RequestID: req.RequestID, Result: &res}
}

func (l *Listener) respond(resp recommendationResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		l.log.Errorf("encode response: %v", err)
		return
	}
	tok := l.cli.Publish(l.cfg.ResponseTopic, l.cfg.QoS, false, payload)
	if tok.Wait() && tok.Error() != nil {
		l.log.Errorf("publish response: %v", tok.Error())
	}
}

// Close disconnects from the broker.
func (l *Listener) Close() {
	l.cli.Disconnect(250)
}
