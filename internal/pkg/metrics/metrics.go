package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 推薦來源標籤
const (
	SourceStore    = "store"
	SourceFallback = "fallback"
	SourceNone     = "none"
)

var (
	// RecommendationsTotal 依來源統計推薦請求數
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meal_recommendations_total",
		Help: "Recommendation requests served, labelled by candidate source.",
	}, []string{"source"})

	// RecommendationSize 每次回傳的推薦數量
	RecommendationSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meal_recommendation_size",
		Help:    "Number of meals returned per recommendation request.",
		Buckets: prometheus.LinearBuckets(0, 1, 11),
	})

	// FallbackRequestsTotal 生成式備援呼叫結果
	FallbackRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meal_fallback_requests_total",
		Help: "Generative fallback invocations, labelled by result.",
	}, []string{"result"})

	// CacheLookupsTotal 備援快取查詢結果
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meal_cache_lookups_total",
		Help: "Fallback cache lookups, labelled by backend and result.",
	}, []string{"backend", "result"})

	// HTTPRequestDuration HTTP 請求耗時
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
