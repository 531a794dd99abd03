// Package chart derives dense chart series from network log collections.
package chart

import (
	"fmt"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/timestamp"
)

// HoursPerDay is the number of buckets in an hourly series.
const HoursPerDay = 24

// HourCount is one point of an hourly series.
type HourCount struct {
	Hour     string // "0:00" .. "23:00"
	Requests int
}

// HourlySeries holds one dense 24-point series per direction.
type HourlySeries struct {
	Incoming []HourCount
	Outgoing []HourCount
}

// Total returns the number of events counted across both directions.
func (s HourlySeries) Total() int {
	n := 0
	for i := range s.Incoming {
		n += s.Incoming[i].Requests
	}
	for i := range s.Outgoing {
		n += s.Outgoing[i].Requests
	}
	return n
}

// BucketByHour counts logs per (direction, UTC hour of day). Records with an
// unparsable timestamp or an unknown direction are not counted.
func BucketByHour(logs []model.NetworkLog) HourlySeries {
	var incoming, outgoing [HoursPerDay]int

	for _, entry := range logs {
		ts, ok := timestamp.Parse(entry.Time)
		if !ok {
			continue
		}
		hour := ts.UTC().Hour()
		switch entry.Type {
		case model.Incoming:
			incoming[hour]++
		case model.Outgoing:
			outgoing[hour]++
		}
	}

	return HourlySeries{
		Incoming: dense(incoming),
		Outgoing: dense(outgoing),
	}
}

func dense(counts [HoursPerDay]int) []HourCount {
	series := make([]HourCount, HoursPerDay)
	for hour := 0; hour < HoursPerDay; hour++ {
		series[hour] = HourCount{Hour: HourLabel(hour), Requests: counts[hour]}
	}
	return series
}

// HourLabel formats an hour of day the way the charts label it.
func HourLabel(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}
