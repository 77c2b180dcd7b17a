// Package metrics counts check-ins, chat messages and persistence
// failures on a private prometheus registry. The registry is written in
// the node_exporter textfile format, since the tool is not a server.
package metrics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

type Recorder interface {
	IncCheckIns(outcome string)
	IncChatMessages(topic string)
	IncPersistFailures(op string)
	ObservePersistDuration(d time.Duration)
	SetStreak(days int)
	// Flush writes the current values out; a no-op without a target.
	Flush() error
}

type Provider struct {
	registry        *prometheus.Registry
	textfile        string
	checkIns        *prometheus.CounterVec
	chatMessages    *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	persistDuration prometheus.Histogram
	streakDays      prometheus.Gauge
}

// NewProvider registers the collectors on a fresh registry. When textfile
// is non-empty, Flush writes the registry there, and the counters start
// from the values the previous run left in it, so _total series keep
// growing across invocations.
func NewProvider(textfile string) (*Provider, error) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	p := &Provider{
		registry: reg,
		textfile: textfile,
		checkIns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthtab_checkins_total",
			Help: "Check-ins submitted, by streak outcome",
		}, []string{"outcome"}),
		chatMessages: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthtab_chat_messages_total",
			Help: "Chat messages answered, by reply topic",
		}, []string{"topic"}),
		persistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthtab_persist_failures_total",
			Help: "Failed loads and saves of the state document",
		}, []string{"op"}),
		persistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthtab_persist_duration_seconds",
			Help:    "Duration of state document saves in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		streakDays: factory.NewGauge(prometheus.GaugeOpts{
			Name: "healthtab_streak_days",
			Help: "Current consistency streak in days",
		}),
	}
	if err := p.seed(); err != nil {
		return nil, err
	}
	return p, nil
}

// seed adds the counter values found in the existing textfile. A missing
// file is a first run.
func (p *Provider) seed() error {
	if p.textfile == "" {
		return nil
	}
	f, err := os.Open(p.textfile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening metrics textfile: %w", err)
	}
	defer f.Close()

	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(f)
	if err != nil {
		return fmt.Errorf("parsing metrics textfile %s: %w", p.textfile, err)
	}

	counters := []struct {
		name  string
		label string
		vec   *prometheus.CounterVec
	}{
		{"healthtab_checkins_total", "outcome", p.checkIns},
		{"healthtab_chat_messages_total", "topic", p.chatMessages},
		{"healthtab_persist_failures_total", "op", p.persistFailures},
	}
	for _, c := range counters {
		fam, ok := families[c.name]
		if !ok {
			continue
		}
		for _, m := range fam.GetMetric() {
			v := m.GetCounter().GetValue()
			if v <= 0 {
				continue
			}
			for _, lp := range m.GetLabel() {
				if lp.GetName() == c.label {
					c.vec.WithLabelValues(lp.GetValue()).Add(v)
				}
			}
		}
	}
	return nil
}

func (p *Provider) Registry() *prometheus.Registry { return p.registry }

func (p *Provider) IncCheckIns(outcome string) {
	p.checkIns.WithLabelValues(outcome).Inc()
}

func (p *Provider) IncChatMessages(topic string) {
	p.chatMessages.WithLabelValues(topic).Inc()
}

func (p *Provider) IncPersistFailures(op string) {
	p.persistFailures.WithLabelValues(op).Inc()
}

func (p *Provider) ObservePersistDuration(d time.Duration) {
	p.persistDuration.Observe(d.Seconds())
}

func (p *Provider) SetStreak(days int) {
	p.streakDays.Set(float64(days))
}

func (p *Provider) Flush() error {
	if p.textfile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.textfile), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(p.textfile, p.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// Noop discards everything.
type Noop struct{}

func (Noop) IncCheckIns(string)                   {}
func (Noop) IncChatMessages(string)               {}
func (Noop) IncPersistFailures(string)            {}
func (Noop) ObservePersistDuration(time.Duration) {}
func (Noop) SetStreak(int)                        {}
func (Noop) Flush() error                         { return nil }
