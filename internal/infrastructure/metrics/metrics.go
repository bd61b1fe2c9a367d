package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecipeCacheLookups 食譜快取查詢結果（hit / miss / error）
	RecipeCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meal_planner_recipe_cache_lookups_total",
			Help: "Recipe cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	// RecipeGenerations 食譜生成次數（success / parse_failure / error）
	RecipeGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meal_planner_recipe_generations_total",
			Help: "Recipe generation attempts by outcome",
		},
		[]string{"outcome"},
	)

	// FallbackSlots 以備用食譜填補的餐點數
	FallbackSlots = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meal_planner_fallback_slots_total",
		Help: "Meal slots served with a fallback recipe",
	})

	// AIRequestDuration 上游 AI 請求耗時
	AIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meal_planner_ai_request_duration_seconds",
			Help:    "Generation request latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"status"},
	)

	// QueueDepth AI 請求隊列長度
	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "meal_planner_ai_queue_depth",
		Help: "Requests waiting in the generation queue",
	})

	// HTTPRequests HTTP 請求計數
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meal_planner_http_requests_total",
			Help: "HTTP requests by route and status class",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveAI 記錄一次 AI 請求
func ObserveAI(start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AIRequestDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}

// Handler /metrics 路由
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
