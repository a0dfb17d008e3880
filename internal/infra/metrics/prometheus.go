package metrics

import (
	"strconv"

	"wellness-booking/internal/domain/checkout"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wellness"

type Recorder struct {
	selectionsRejected *prometheus.CounterVec
	checkoutsFinished  *prometheus.CounterVec
	redemptions        prometheus.Counter
	refunds            *prometheus.CounterVec

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimited     prometheus.Counter
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		selectionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_rejected_total",
			Help:      "Cart selections rejected before staging, by reason",
		}, []string{"reason"}),
		checkoutsFinished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_finished_total",
			Help:      "Checkouts that reached a terminal state",
		}, []string{"state"}),
		redemptions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "point_redemptions_total",
			Help:      "Confirmed loyalty point redemptions",
		}),
		refunds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "point_refunds_total",
			Help:      "Loyalty point refund attempts by outcome",
		}, []string{"ok"}),
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		rateLimited: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_exceeded_total",
			Help:      "Requests rejected by the rate limiter",
		}),
	}
}

func (r *Recorder) SelectionRejected(reason string) {
	r.selectionsRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) CheckoutFinished(state checkout.State) {
	r.checkoutsFinished.WithLabelValues(string(state)).Inc()
}

func (r *Recorder) RedemptionConfirmed() {
	r.redemptions.Inc()
}

func (r *Recorder) RefundAttempted(ok bool) {
	r.refunds.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

func (r *Recorder) ObserveRequest(route, method string, code int, seconds float64) {
	r.requestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	r.requestDuration.WithLabelValues(route, method).Observe(seconds)
}

func (r *Recorder) RateLimited() {
	r.rateLimited.Inc()
}
