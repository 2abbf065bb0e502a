package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var deliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notify_deliveries_total",
		Help: "Celebration messages delivered, by channel",
	},
	[]string{"channel"},
)

func recordDelivery(channel string) {
	deliveriesTotal.WithLabelValues(channel).Inc()
}
