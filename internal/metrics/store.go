package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// SizeFunc reports the current number of entries held by an in-memory store.
type SizeFunc func() int

// RegisterStoreSizeGauges exposes one "<namespace>_store_entries" series per store,
// labelled store=<name>. The sizes are read at scrape time.
func RegisterStoreSizeGauges(meterProvider metric.MeterProvider, namespace string, stores map[string]SizeFunc) error {
	meter := meterProvider.Meter(namespace)

	gauge, err := meter.Int64ObservableGauge(
		fmt.Sprintf("%s_store_entries", namespace),
		metric.WithDescription("Number of live entries held by in-memory stores"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create store size gauge: %w", err)
	}

	_, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		for name, size := range stores {
			o.ObserveInt64(gauge, int64(size()), metric.WithAttributes(attribute.String("store", name)))
		}
		return nil
	}, gauge)
	if err != nil {
		return fmt.Errorf("failed to register store size callback: %w", err)
	}

	return nil
}
