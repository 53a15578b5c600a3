package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/trytobebee/gridsnake/pkg/game"
)

const labelMode = "mode"

// Metric names follow snake_<name>, labelled by movement mode.
var (
	activeSessions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "snake_active_sessions",
		Help: "Sessions currently attached to a client.",
	}, []string{labelMode})

	ticks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_ticks_total",
		Help: "Simulation ticks run.",
	}, []string{labelMode})

	foodEaten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_food_eaten_total",
		Help: "Food collisions.",
	}, []string{labelMode})

	gameOvers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snake_game_over_total",
		Help: "Finished games by cause.",
	}, []string{labelMode, "cause"})

	finalScore = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snake_final_score",
		Help:    "Score at game over.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{labelMode})
)

// SessionOpened marks a session as attached.
func SessionOpened(mode game.Mode) {
	activeSessions.WithLabelValues(string(mode)).Inc()
}

// SessionClosed marks a session as detached.
func SessionClosed(mode game.Mode) {
	activeSessions.WithLabelValues(string(mode)).Dec()
}

// ObserveTick records the outcome of one tick. snap is the state after it.
func ObserveTick(hit game.Collision, snap game.Snapshot) {
	mode := string(snap.Mode)
	ticks.WithLabelValues(mode).Inc()

	if hit == game.CollisionFood {
		foodEaten.WithLabelValues(mode).Inc()
	}
	if snap.GameOver && hit != game.CollisionNone {
		gameOvers.WithLabelValues(mode, snap.Cause).Inc()
		finalScore.WithLabelValues(mode).Observe(float64(snap.Score))
	}
}
