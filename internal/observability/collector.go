// Package observability exposes the derived fleet metrics as prometheus
// gauges. The collector recomputes the KPI snapshot on every scrape, the same
// pull-based stance the read side takes: nothing is cached or incremented.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"fleetcore/pkg/domain"
)

// KPISource supplies the snapshot the collector exports. Satisfied by
// *service.Service.
type KPISource interface {
	KPIs() domain.KPISnapshot
}

// FleetCollector translates a KPI snapshot into prometheus metrics.
type FleetCollector struct {
	source KPISource

	resources    *prometheus.Desc
	resourceSum  *prometheus.Desc
	overdue      *prometheus.Desc
	upcoming     *prometheus.Desc
	reservedFees *prometheus.Desc
	serviceCosts *prometheus.Desc
}

var _ prometheus.Collector = (*FleetCollector)(nil)

// NewFleetCollector builds a collector over the given source.
func NewFleetCollector(source KPISource) *FleetCollector {
	return &FleetCollector{
		source: source,
		resources: prometheus.NewDesc(
			"fleetcore_resources",
			"Resources per derived status, recomputed at scrape time.",
			[]string{"status"}, nil),
		resourceSum: prometheus.NewDesc(
			"fleetcore_resources_total",
			"Total resources tracked.",
			nil, nil),
		overdue: prometheus.NewDesc(
			"fleetcore_overdue_reservations",
			"Active reservations whose end date has passed.",
			nil, nil),
		upcoming: prometheus.NewDesc(
			"fleetcore_upcoming_service_tasks",
			"Unfinished service tasks scheduled within the next seven days.",
			nil, nil),
		reservedFees: prometheus.NewDesc(
			"fleetcore_reservation_fees",
			"Sum of fees across non-cancelled reservations.",
			nil, nil),
		serviceCosts: prometheus.NewDesc(
			"fleetcore_service_costs",
			"Sum of costs across all service tasks.",
			nil, nil),
	}
}

func (c *FleetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.resources
	ch <- c.resourceSum
	ch <- c.overdue
	ch <- c.upcoming
	ch <- c.reservedFees
	ch <- c.serviceCosts
}

func (c *FleetCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source.KPIs()
	for _, status := range domain.ResourceStatuses {
		ch <- prometheus.MustNewConstMetric(c.resources, prometheus.GaugeValue,
			float64(snap.ByStatus[status]), string(status))
	}
	ch <- prometheus.MustNewConstMetric(c.resourceSum, prometheus.GaugeValue, float64(snap.TotalResources))
	ch <- prometheus.MustNewConstMetric(c.overdue, prometheus.GaugeValue, float64(snap.OverdueReservations))
	ch <- prometheus.MustNewConstMetric(c.upcoming, prometheus.GaugeValue, float64(snap.UpcomingService))
	ch <- prometheus.MustNewConstMetric(c.reservedFees, prometheus.GaugeValue, snap.ReservationFees)
	ch <- prometheus.MustNewConstMetric(c.serviceCosts, prometheus.GaugeValue, snap.ServiceCosts)
}
