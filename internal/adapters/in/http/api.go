package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types of openapi.yaml. Money travels as decimal strings with two fraction digits.

type Address struct {
	City       string              `json:"city"`
	Country    string              `json:"country"`
	Email      openapi_types.Email `json:"email"`
	Name       *string             `json:"name,omitempty"`
	PostalCode string              `json:"postalCode"`
	State      *string             `json:"state,omitempty"`
	Street     string              `json:"street"`
}

type NewOrderLine struct {
	ProductId string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type Payment struct {
	Method    *string `json:"method,omitempty"`
	Reference string  `json:"reference"`
}

type Totals struct {
	Shipping string `json:"shipping"`
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type NewOrder struct {
	Lines           []NewOrderLine `json:"lines"`
	Payment         Payment        `json:"payment"`
	ShippingAddress Address        `json:"shippingAddress"`
	Totals          Totals         `json:"totals"`
}

type PlanSummary struct {
	PreferredCarrier  string `json:"preferredCarrier"`
	ShipmentCount     int    `json:"shipmentCount"`
	TotalShippingCost string `json:"totalShippingCost"`
}

type OrderConfirmation struct {
	EstimatedDelivery openapi_types.Date `json:"estimatedDelivery"`
	FulfillmentPlan   PlanSummary        `json:"fulfillmentPlan"`
	OrderId           openapi_types.UUID `json:"orderId"`
}

type LineItem struct {
	LineNo    int    `json:"lineNo"`
	ProductId string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type ShipmentAllocation struct {
	LineNo    int    `json:"lineNo"`
	ProductId string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type Shipment struct {
	Allocations       []ShipmentAllocation `json:"allocations"`
	CarrierId         string               `json:"carrierId"`
	EstimatedDelivery openapi_types.Date   `json:"estimatedDelivery"`
	Id                openapi_types.UUID   `json:"id"`
	LocationId        string               `json:"locationId"`
	ShipDate          openapi_types.Date   `json:"shipDate"`
	ShippingCost      string               `json:"shippingCost"`
}

type OrderDetails struct {
	CreatedAt         time.Time           `json:"createdAt"`
	CustomerEmail     openapi_types.Email `json:"customerEmail"`
	EstimatedDelivery *openapi_types.Date `json:"estimatedDelivery,omitempty"`
	Id                openapi_types.UUID  `json:"id"`
	Lines             []LineItem          `json:"lines"`
	Shipments         []Shipment          `json:"shipments"`
	ShippingAddress   Address             `json:"shippingAddress"`
	Status            string              `json:"status"`
	Totals            Totals              `json:"totals"`
}

type OrderSummary struct {
	CreatedAt         time.Time           `json:"createdAt"`
	EstimatedDelivery *openapi_types.Date `json:"estimatedDelivery,omitempty"`
	Id                openapi_types.UUID  `json:"id"`
	ShipmentCount     int                 `json:"shipmentCount"`
	Status            string              `json:"status"`
	Total             string              `json:"total"`
}

type Restock struct {
	LocationId string `json:"locationId"`
	ProductId  string `json:"productId"`
	Quantity   int    `json:"quantity"`
}

type StockLevel struct {
	LocationId     string `json:"locationId"`
	QuantityOnHand int    `json:"quantityOnHand"`
}

type StockSnapshot struct {
	Levels    []StockLevel `json:"levels"`
	ProductId string       `json:"productId"`
	Total     int          `json:"total"`
}

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
