// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// HTTPリクエストとチェックアウトの両方を記録する。
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    prometheus.Histogram
	checkoutSuccess prometheus.Counter
	checkoutFail    prometheus.Counter
	itemsSold       prometheus.Counter
	signups         prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ecofinds_http_requests_total",
			Help: "メソッド・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "status_code"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecofinds_http_request_duration_seconds",
			Help:    "HTTPリクエストの処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		checkoutSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecofinds_checkout_success_total",
			Help: "チェックアウト成功の合計数",
		}),
		checkoutFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecofinds_checkout_fail_total",
			Help: "チェックアウト失敗の合計数",
		}),
		itemsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecofinds_items_sold_total",
			Help: "チェックアウトで売れた商品行の合計数",
		}),
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecofinds_signups_total",
			Help: "ユーザー登録の合計数",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.checkoutSuccess,
		c.checkoutFail,
		c.itemsSold,
		c.signups,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエストの完了を記録する。
func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

// RecordCheckoutSuccess はチェックアウト成功と売れた商品行数を記録する。
func (c *Collector) RecordCheckoutSuccess(itemCount int) {
	c.checkoutSuccess.Inc()
	c.itemsSold.Add(float64(itemCount))
}

// RecordCheckoutFailure はチェックアウト失敗を記録する。
func (c *Collector) RecordCheckoutFailure() {
	c.checkoutFail.Inc()
}

// RecordSignup はユーザー登録を記録する。
func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

// NewHTTPMiddleware はHTTPリクエストメトリクスを記録するミドルウェアを返す。
func (c *Collector) NewHTTPMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			c.RecordHTTPRequest(r.Method, rec.statusCode, time.Since(start))
		})
	}
}

// statusRecorder はレスポンスのステータスコードを記録するラッパー。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
