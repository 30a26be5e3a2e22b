// Package carriertable loads the Carrier Capability/Cost Table from a file.
//
// The format is picked from the file extension (YAML, JSON or TOML):
//
//	carriers:
//	  - id: UPS
//	    name: UPS Ground
//	    priority: 1
//	routes:
//	  - location: wh-east
//	    region: US-CA
//	    carrier: UPS
//	    baseCost: "5.00"
//	    perUnitCost: "0.25"
//	    transitDays: 2
//	    maxUnits: 50
//
// Costs are decimal strings. The table is read once at startup and never
// reloaded.
package carriertable

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type fileCarrier struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Priority int    `mapstructure:"priority"`
}

type fileRoute struct {
	Location    string `mapstructure:"location"`
	Region      string `mapstructure:"region"`
	Carrier     string `mapstructure:"carrier"`
	BaseCost    string `mapstructure:"baseCost"`
	PerUnitCost string `mapstructure:"perUnitCost"`
	TransitDays int    `mapstructure:"transitDays"`
	MaxUnits    int    `mapstructure:"maxUnits"`
}

type fileTable struct {
	Carriers []fileCarrier `mapstructure:"carriers"`
	Routes   []fileRoute   `mapstructure:"routes"`
}

// Load reads and validates the table at path.
func Load(path string) (*carrier.Table, error) {
	if path == "" {
		return nil, errs.NewValueIsRequiredError("carrier table path")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read carrier table %s: %w", path, err)
	}

	var raw fileTable
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode carrier table %s: %w", path, err)
	}

	table, err := build(raw)
	if err != nil {
		return nil, fmt.Errorf("carrier table %s: %w", path, err)
	}
	return table, nil
}

func build(raw fileTable) (*carrier.Table, error) {
	if len(raw.Routes) == 0 {
		return nil, errs.NewValueIsRequiredError("routes")
	}

	carriers := make([]carrier.Carrier, 0, len(raw.Carriers))
	for _, c := range raw.Carriers {
		carriers = append(carriers, carrier.Carrier{ID: c.ID, Name: c.Name, Priority: c.Priority})
	}

	var err error
	routes := make([]carrier.Route, 0, len(raw.Routes))
	for i, r := range raw.Routes {
		base, bErr := parseCost(r.BaseCost)
		perUnit, pErr := parseCost(r.PerUnitCost)
		if bErr != nil || pErr != nil {
			err = errors.Join(err, fmt.Errorf("route %d: %w", i, errors.Join(bErr, pErr)))
			continue
		}
		routes = append(routes, carrier.Route{
			LocationID:  r.Location,
			Region:      r.Region,
			CarrierID:   r.Carrier,
			BaseCost:    base,
			PerUnitCost: perUnit,
			TransitDays: r.TransitDays,
			MaxUnits:    r.MaxUnits,
		})
	}
	if err != nil {
		return nil, err
	}

	return carrier.NewTable(carriers, routes)
}

func parseCost(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("cost", err)
	}
	return d, nil
}
