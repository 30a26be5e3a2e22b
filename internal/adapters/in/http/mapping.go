package http

import (
	"errors"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func toProcessOrderParams(body NewOrder) (commands.ProcessOrderParams, error) {
	var err error

	lines := make([]commands.LineParams, len(body.Lines))
	for i, l := range body.Lines {
		price, pErr := parseMoney("unitPrice", l.UnitPrice)
		err = errors.Join(err, pErr)
		lines[i] = commands.LineParams{ProductID: l.ProductId, Quantity: l.Quantity, UnitPrice: price}
	}

	subtotal, sErr := parseMoney("subtotal", body.Totals.Subtotal)
	shipping, shErr := parseMoney("shipping", body.Totals.Shipping)
	tax, tErr := parseMoney("tax", body.Totals.Tax)
	total, toErr := parseMoney("total", body.Totals.Total)
	if err = errors.Join(err, sErr, shErr, tErr, toErr); err != nil {
		return commands.ProcessOrderParams{}, err
	}

	addr := body.ShippingAddress
	return commands.ProcessOrderParams{
		Lines: lines,
		Address: kernel.AddressParams{
			Name:       deref(addr.Name),
			Street:     addr.Street,
			City:       addr.City,
			State:      deref(addr.State),
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
			Email:      string(addr.Email),
		},
		Payment: order.Payment{Method: deref(body.Payment.Method), Reference: body.Payment.Reference},
		Totals:  order.Totals{Subtotal: subtotal, Shipping: shipping, Tax: tax, Total: total},
	}, nil
}

func toOrderConfirmation(r commands.ProcessOrderResult) OrderConfirmation {
	return OrderConfirmation{
		OrderId:           r.OrderID.Bytes(),
		EstimatedDelivery: openapi_types.Date{Time: r.EstimatedDelivery},
		FulfillmentPlan: PlanSummary{
			ShipmentCount:     r.ShipmentCount,
			PreferredCarrier:  r.PreferredCarrier,
			TotalShippingCost: money(r.TotalShippingCost),
		},
	}
}

func toOrderDetails(o *order.Order) OrderDetails {
	addr := o.ShippingAddress()
	totals := o.Totals()
	plan := o.Plan()

	lines := make([]LineItem, 0, len(o.LineItems()))
	for _, l := range o.LineItems() {
		lines = append(lines, LineItem{
			LineNo:    l.LineNo(),
			ProductId: l.ProductID(),
			Quantity:  l.Quantity(),
			UnitPrice: money(l.UnitPrice()),
		})
	}

	shipments := make([]Shipment, 0, plan.ShipmentCount())
	for _, g := range plan.ShipmentGroups() {
		allocations := make([]ShipmentAllocation, 0, len(g.Allocations()))
		for _, a := range g.Allocations() {
			allocations = append(allocations, ShipmentAllocation{LineNo: a.LineNo, ProductId: a.ProductID, Quantity: a.Quantity})
		}
		shipments = append(shipments, Shipment{
			Id:                g.ID().Bytes(),
			LocationId:        g.LocationID(),
			CarrierId:         g.CarrierID(),
			ShippingCost:      money(g.ShippingCost()),
			ShipDate:          openapi_types.Date{Time: g.ShipDate()},
			EstimatedDelivery: openapi_types.Date{Time: g.EstimatedDelivery()},
			Allocations:       allocations,
		})
	}

	return OrderDetails{
		Id:                o.ID().Bytes(),
		Status:            o.Status().String(),
		CustomerEmail:     openapi_types.Email(o.CustomerEmail()),
		CreatedAt:         o.CreatedAt(),
		EstimatedDelivery: optionalDate(o.EstimatedDelivery()),
		ShippingAddress: Address{
			Name:       optional(addr.Name()),
			Street:     addr.Street(),
			City:       addr.City(),
			State:      optional(addr.State()),
			PostalCode: addr.PostalCode(),
			Country:    addr.Country(),
			Email:      openapi_types.Email(addr.Email()),
		},
		Lines: lines,
		Totals: Totals{
			Subtotal: money(totals.Subtotal),
			Shipping: money(totals.Shipping),
			Tax:      money(totals.Tax),
			Total:    money(totals.Total),
		},
		Shipments: shipments,
	}
}

func toOrderSummary(s order.Summary) OrderSummary {
	return OrderSummary{
		Id:                s.OrderID.Bytes(),
		Status:            s.Status.String(),
		Total:             money(s.Total),
		ShipmentCount:     s.ShipmentCount,
		EstimatedDelivery: optionalDate(s.EstimatedDelivery),
		CreatedAt:         s.CreatedAt,
	}
}

func parseMoney(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalDate(t time.Time) *openapi_types.Date {
	if t.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: t}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
