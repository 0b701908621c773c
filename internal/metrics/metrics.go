// Package metrics Prometheus 指标
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Redirects 按结果统计的跳转次数: found / not_found / error
	Redirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shorturl",
		Name:      "redirects_total",
		Help:      "Redirect requests by outcome.",
	}, []string{"outcome"})

	// LinksCreated 新建短链数
	LinksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shorturl",
		Name:      "links_created_total",
		Help:      "Short links created.",
	})

	// ClickRecordFailures 点击记录失败次数
	ClickRecordFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shorturl",
		Name:      "click_record_failures_total",
		Help:      "Click events that could not be recorded.",
	})

	// AliasCollisions 插入时短码冲突次数
	AliasCollisions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shorturl",
		Name:      "alias_collisions_total",
		Help:      "Alias insert conflicts that required regeneration.",
	})
)
