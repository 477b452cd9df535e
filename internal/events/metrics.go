package events

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	forwardedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainmate",
		Subsystem: "bridge",
		Name:      "messages_forwarded_total",
		Help:      "Local refresh events written to Kafka, by outcome.",
	}, []string{"event_type", "outcome"})

	relayedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trainmate",
		Subsystem: "bridge",
		Name:      "messages_relayed_total",
		Help:      "Kafka messages consumed by the relay, by outcome.",
	}, []string{"event_type", "outcome"})

	lastMessageGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "trainmate",
		Subsystem: "bridge",
		Name:      "last_message_timestamp_seconds",
		Help:      "Timestamp of the most recent Kafka message relayed.",
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(forwardedCounter, relayedCounter, lastMessageGauge)
}

func recordForwarded(eventType, outcome string) {
	forwardedCounter.WithLabelValues(eventType, outcome).Inc()
}

func recordRelayed(eventType, outcome string) {
	relayedCounter.WithLabelValues(eventType, outcome).Inc()
}

func recordLastMessage(msg Message) {
	if !msg.Timestamp.IsZero() {
		lastMessageGauge.WithLabelValues(msg.Topic).Set(float64(msg.Timestamp.Unix()))
	}
}
