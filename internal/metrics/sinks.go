package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// LogSink writes each summary as a structured log line.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink returns a sink logging at info level.
func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log}
}

// Publish implements Sink.
func (l *LogSink) Publish(s Summary) {
	l.log.Info("throughput",
		zap.Float64("physics_fps", s.PhysicsRate),
		zap.Float64("render_fps", s.RenderRate),
		zap.Uint64("memory_mb", s.MemoryMB),
		zap.String("mode", s.Mode),
		zap.String("policy", s.Policy),
		zap.Float64("score_mpps", s.Score),
	)
}

// PrometheusSink mirrors the latest summary into gauges.
type PrometheusSink struct {
	physics *prometheus.GaugeVec
	render  *prometheus.GaugeVec
	memory  *prometheus.GaugeVec
	score   *prometheus.GaugeVec
}

// NewPrometheusSink creates the gauges and registers them on reg.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	labels := []string{"mode", "policy", "size"}
	p := &PrometheusSink{
		physics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ignis_physics_fps",
			Help: "Completed physics passes per second",
		}, labels),
		render: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ignis_render_fps",
			Help: "Completed render passes per second",
		}, labels),
		memory: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ignis_memory_megabytes",
			Help: "Process memory usage",
		}, labels),
		score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ignis_score_mpps",
			Help: "Millions of cells simulated per second",
		}, labels),
	}
	for _, c := range []prometheus.Collector{p.physics, p.render, p.memory, p.score} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Publish implements Sink.
func (p *PrometheusSink) Publish(s Summary) {
	lv := []string{s.Mode, s.Policy, s.Size.String()}
	p.physics.WithLabelValues(lv...).Set(s.PhysicsRate)
	p.render.WithLabelValues(lv...).Set(s.RenderRate)
	p.memory.WithLabelValues(lv...).Set(float64(s.MemoryMB))
	p.score.WithLabelValues(lv...).Set(s.Score)
}
