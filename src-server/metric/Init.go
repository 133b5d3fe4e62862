package metric

import (
	"log/slog"
	"time"

	"lifecal/src-server/calendar"
	"lifecal/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func expansionLatency(as *utils.AppState, clearTickerInterval *time.Duration) {
	expansionLatency := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lifecal_expansion_latency_microsec",
		Help: "The latency of the last occurrence expansion in microseconds",
	})
	good := true
	if err := prometheus.Register(expansionLatency); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register lifecal_expansion_latency_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("lifecal_expansion_latency_microsec metric registered")
		expansionLatency.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(expansionLatency) {
				case true:
					slog.Debug("lifecal_expansion_latency_microsec metric unregistered")
				case false:
					slog.Warn("lifecal_expansion_latency_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.ExpansionLatency:
				expansionLatency.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				expansionLatency.Set(0)
			}
		}
	}()
}

func masterEventCount(as *utils.AppState, store *calendar.EventStore, tickerInterval *time.Duration) {
	masterEventCount := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lifecal_master_event_count",
		Help: "The number of master events currently held for the session user",
	})
	good := true
	if err := prometheus.Register(masterEventCount); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register lifecal_master_event_count metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("lifecal_master_event_count metric registered")
		masterEventCount.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(masterEventCount) {
				case true:
					slog.Debug("lifecal_master_event_count metric unregistered")
				case false:
					slog.Warn("lifecal_master_event_count metric not registered")
				}
				return
			case <-ticker.C:
				masterEventCount.Set(float64(store.Len()))
			}
		}
	}()
}

func databaseRead(as *utils.AppState, clearTickerInterval *time.Duration) {
	databaseRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lifecal_database_read_microsec",
		Help: "The latency of a database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register lifecal_database_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("lifecal_database_read_microsec metric registered")
		databaseRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseRead) {
				case true:
					slog.Debug("lifecal_database_read_microsec metric unregistered")
				case false:
					slog.Warn("lifecal_database_read_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DatabaseRead:
				databaseRead.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				databaseRead.Set(0)
			}
		}
	}()
}

func databaseWrite(as *utils.AppState, clearTickerInterval *time.Duration) {
	databaseWrite := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lifecal_database_write_microsec",
		Help: "The latency of a database write in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseWrite); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register lifecal_database_write_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("lifecal_database_write_microsec metric registered")
		databaseWrite.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseWrite) {
				case true:
					slog.Debug("lifecal_database_write_microsec metric unregistered")
				case false:
					slog.Warn("lifecal_database_write_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.DatabaseWrite:
				databaseWrite.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				databaseWrite.Set(0)
			}
		}
	}()
}

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	if as.BunDB == nil {
		return
	}
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lifecal_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register lifecal_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("lifecal_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("lifecal_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("lifecal_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func Init(as *utils.AppState, store *calendar.EventStore) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	expansionLatency(as, &clearTickerInterval)
	masterEventCount(as, store, &tickerInterval)
	databaseRead(as, &clearTickerInterval)
	databaseWrite(as, &clearTickerInterval)
	databaseEmptyRead(as, &tickerInterval)
}
