package carrier

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Table is the immutable, concurrency-safe Carrier Capability/Cost Table.
type Table struct {
	carriers map[string]Carrier
	routes   map[routeKey][]Route
}

type routeKey struct {
	location string
	region   string
}

// NewTable validates carriers and routes and indexes routes by (location, region).
// Region keys are upper-cased.
func NewTable(carriers []Carrier, routes []Route) (*Table, error) {
	t := &Table{
		carriers: make(map[string]Carrier, len(carriers)),
		routes:   make(map[routeKey][]Route),
	}

	var err error
	for _, c := range carriers {
		if strings.TrimSpace(c.ID) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError("carrier id"))
			continue
		}
		if _, dup := t.carriers[c.ID]; dup {
			err = errors.Join(err, errs.NewValueIsInvalidError("duplicate carrier "+c.ID))
			continue
		}
		t.carriers[c.ID] = c
	}

	for _, r := range routes {
		r.Region = strings.ToUpper(strings.TrimSpace(r.Region))
		if rErr := r.validate(t.carriers); rErr != nil {
			err = errors.Join(err, rErr)
			continue
		}
		k := routeKey{location: r.LocationID, region: r.Region}
		t.routes[k] = append(t.routes[k], r)
	}

	if err != nil {
		return nil, err
	}
	return t, nil
}

// Options returns the carriers serving locationID for region. The most
// specific region level with at least one route wins: "US-CA", then "US",
// then AnyRegion. Nil means the pair is not served.
func (t *Table) Options(locationID, region string) []Option {
	for _, key := range regionFallback(region) {
		routes := t.routes[routeKey{location: locationID, region: key}]
		if len(routes) == 0 {
			continue
		}
		opts := make([]Option, 0, len(routes))
		for _, r := range routes {
			opts = append(opts, Option{Carrier: t.carriers[r.CarrierID], Route: r})
		}
		return opts
	}
	return nil
}

func regionFallback(region string) []string {
	region = strings.ToUpper(strings.TrimSpace(region))
	keys := make([]string, 0, 3)
	if region != "" {
		keys = append(keys, region)
		if country, _, found := strings.Cut(region, "-"); found {
			keys = append(keys, country)
		}
	}
	return append(keys, AnyRegion)
}
