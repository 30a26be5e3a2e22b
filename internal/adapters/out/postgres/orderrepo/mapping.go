package orderrepo

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

func fromDomain(o *order.Order) OrderDTO {
	addr := o.ShippingAddress()
	totals := o.Totals()
	plan := o.Plan()

	dto := OrderDTO{
		ID:               o.ID().Bytes(),
		CustomerEmail:    o.CustomerEmail(),
		ShipName:         addr.Name(),
		ShipStreet:       addr.Street(),
		ShipCity:         addr.City(),
		ShipState:        addr.State(),
		ShipPostalCode:   addr.PostalCode(),
		ShipCountry:      addr.Country(),
		PaymentMethod:    o.Payment().Method,
		PaymentReference: o.Payment().Reference,
		Subtotal:         totals.Subtotal,
		Shipping:         totals.Shipping,
		Tax:              totals.Tax,
		Total:            totals.Total,
		Status:           int(o.Status()),
		ShipmentCount:    plan.ShipmentCount(),
		CreatedAt:        o.CreatedAt(),
	}
	if !plan.IsEmpty() {
		eta := plan.EstimatedDelivery()
		dto.EstimatedDelivery = &eta
	}

	for _, l := range o.LineItems() {
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			OrderID:   dto.ID,
			LineNo:    l.LineNo(),
			ProductID: l.ProductID(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
		})
	}

	for seq, g := range plan.ShipmentGroups() {
		group := ShipmentGroupDTO{
			ID:                g.ID().Bytes(),
			OrderID:           dto.ID,
			Seq:               seq,
			LocationID:        g.LocationID(),
			CarrierID:         g.CarrierID(),
			ShippingCost:      g.ShippingCost(),
			ShipDate:          g.ShipDate(),
			EstimatedDelivery: g.EstimatedDelivery(),
		}
		for _, a := range g.Allocations() {
			group.Allocations = append(group.Allocations, AllocationDTO{
				ShipmentGroupID: group.ID,
				LineNo:          a.LineNo,
				ProductID:       a.ProductID,
				LocationID:      a.LocationID,
				Quantity:        a.Quantity,
			})
		}
		dto.ShipmentGroups = append(dto.ShipmentGroups, group)
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	addr, err := kernel.NewAddress(kernel.AddressParams{
		Name:       dto.ShipName,
		Street:     dto.ShipStreet,
		City:       dto.ShipCity,
		State:      dto.ShipState,
		PostalCode: dto.ShipPostalCode,
		Country:    dto.ShipCountry,
		Email:      dto.CustomerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, err)
	}

	lines := make([]order.LineItem, 0, len(dto.LineItems))
	for _, l := range dto.LineItems {
		line, lErr := order.NewLineItem(l.LineNo, l.ProductID, l.Quantity, l.UnitPrice)
		if lErr != nil {
			return nil, fmt.Errorf("order %s: %w", id, lErr)
		}
		lines = append(lines, line)
	}

	plan, err := planToDomain(dto.ShipmentGroups)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, err)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:        id,
		Address:   addr,
		Payment:   order.Payment{Method: dto.PaymentMethod, Reference: dto.PaymentReference},
		LineItems: lines,
		Totals:    order.Totals{Subtotal: dto.Subtotal, Shipping: dto.Shipping, Tax: dto.Tax, Total: dto.Total},
		Plan:      plan,
		Status:    order.Status(dto.Status),
		CreatedAt: dto.CreatedAt,
	})
}

func planToDomain(dtos []ShipmentGroupDTO) (order.FulfillmentPlan, error) {
	if len(dtos) == 0 {
		return order.FulfillmentPlan{}, nil
	}

	var err error
	groups := make([]order.ShipmentGroup, 0, len(dtos))
	for _, g := range dtos {
		id, idErr := kernel.UUIDFromBytes(g.ID[:])
		if idErr != nil {
			err = errors.Join(err, idErr)
			continue
		}

		allocations := make([]order.Allocation, 0, len(g.Allocations))
		for _, a := range g.Allocations {
			allocations = append(allocations, order.Allocation{
				LineNo:     a.LineNo,
				ProductID:  a.ProductID,
				LocationID: a.LocationID,
				Quantity:   a.Quantity,
			})
		}

		group, gErr := order.NewShipmentGroup(order.ShipmentGroupParams{
			ID:                id,
			LocationID:        g.LocationID,
			Allocations:       allocations,
			CarrierID:         g.CarrierID,
			ShippingCost:      g.ShippingCost,
			ShipDate:          asDate(g.ShipDate),
			EstimatedDelivery: asDate(g.EstimatedDelivery),
		})
		if gErr != nil {
			err = errors.Join(err, gErr)
			continue
		}
		groups = append(groups, group)
	}
	if err != nil {
		return order.FulfillmentPlan{}, err
	}

	return order.NewFulfillmentPlan(groups)
}

// asDate drops any zone the driver attached to a date column.
func asDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
