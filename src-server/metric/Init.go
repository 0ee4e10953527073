package metric

import (
	"log/slog"
	"time"

	"caldeck/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func storeRead(as *utils.AppState, tickerInterval *time.Duration) {
	storeRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "caldeck_store_read_microsec",
		Help: "The latency of a full event store read in microseconds",
	})
	good := true
	if err := prometheus.Register(storeRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register caldeck_store_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("caldeck_store_read_microsec metric registered")
		storeRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(storeRead) {
				case true:
					slog.Debug("caldeck_store_read_microsec metric unregistered")
				case false:
					slog.Warn("caldeck_store_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := storeLoad(as)
				if err != nil {
					slog.Error("can't get store read latency", "error", err)
					continue
				}
				storeRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func storeWrite(as *utils.AppState, clearTickerInterval *time.Duration) {
	storeWrite := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "caldeck_store_write_microsec",
		Help: "The latency of an event collection persist in microseconds",
	})
	good := true
	if err := prometheus.Register(storeWrite); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register caldeck_store_write_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("caldeck_store_write_microsec metric registered")
		storeWrite.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(storeWrite) {
				case true:
					slog.Debug("caldeck_store_write_microsec metric unregistered")
				case false:
					slog.Warn("caldeck_store_write_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.StoreWrite:
				storeWrite.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				storeWrite.Set(0)
			}
		}
	}()
}

func eventsTotal(as *utils.AppState, tickerInterval *time.Duration) {
	eventsTotal := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "caldeck_events_total",
		Help: "The number of events in the collection",
	})
	good := true
	if err := prometheus.Register(eventsTotal); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register caldeck_events_total metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("caldeck_events_total metric registered")
		eventsTotal.Set(float64(as.EventCollection.Len()))
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(eventsTotal) {
				case true:
					slog.Debug("caldeck_events_total metric unregistered")
				case false:
					slog.Warn("caldeck_events_total metric not registered")
				}
				return
			case <-ticker.C:
				eventsTotal.Set(float64(as.EventCollection.Len()))
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	storeRead(as, &tickerInterval)
	storeWrite(as, &clearTickerInterval)
	eventsTotal(as, &tickerInterval)
}
