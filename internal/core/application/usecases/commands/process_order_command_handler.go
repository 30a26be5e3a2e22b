package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// maxPlanAttempts bounds the plan-and-reserve loop: the first attempt plus
	// one replan after a concurrent checkout depleted stock.
	maxPlanAttempts = 2

	defaultRequestBudget = 5 * time.Second
	compensationBudget   = 10 * time.Second
)

// ProcessOrderResult is the committed order summary returned to the caller.
type ProcessOrderResult struct {
	OrderID           kernel.UUID
	EstimatedDelivery time.Time
	ShipmentCount     int
	PreferredCarrier  string
	TotalShippingCost decimal.Decimal
	Plan              order.FulfillmentPlan
}

// ProcessOrderOptions tunes the router. Zero values select defaults.
type ProcessOrderOptions struct {
	// Budget bounds the plan -> reserve -> persist sequence.
	Budget time.Duration
	Clock  func() time.Time
	Logger *slog.Logger
	Tracer trace.Tracer
}

// ProcessOrderCommandHandler is the Order Router. It plans a checkout against
// a fresh ledger snapshot, prices the plan, reserves stock atomically and
// persists the confirmed order.
//
// Either the order row and its reservation both exist afterwards, or neither
// does:
//   - Planning or carrier failures happen before any reservation
//   - A reservation that loses a race is replanned once from a fresh snapshot
//   - A failed, timed out or cancelled persist releases the reservation
//
// Example:
//
//	router, _ := commands.NewProcessOrderCommandHandler(ledger, uowFactory, planner, selector,
//	    commands.ProcessOrderOptions{Budget: 5 * time.Second, Logger: logger})
//
//	result, err := router.Handle(ctx, cmd)
//	var orderErr *commands.OrderError
//	if errors.As(err, &orderErr) {
//	    return c.JSON(statusFor(orderErr.Kind), orderErr.PublicMessage())
//	}
type ProcessOrderCommandHandler struct {
	ledger     ports.InventoryLedger
	uowFactory OrderUoWFactory
	planner    *services.AllocationPlanner
	selector   *services.CarrierSelector

	budget time.Duration
	now    func() time.Time
	logger *slog.Logger
	tracer trace.Tracer
}

// NewProcessOrderCommandHandler wires the router. The ledger is used outside
// any unit of work: each Reserve and Release is its own transaction.
func NewProcessOrderCommandHandler(
	ledger ports.InventoryLedger,
	uowFactory OrderUoWFactory,
	planner *services.AllocationPlanner,
	selector *services.CarrierSelector,
	opts ProcessOrderOptions,
) (ProcessOrderCommandHandler, error) {
	if ledger == nil {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("ledger")
	}
	if uowFactory == nil {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("uowFactory")
	}
	if planner == nil {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("planner")
	}
	if selector == nil {
		return ProcessOrderCommandHandler{}, errs.NewValueIsRequiredError("selector")
	}

	h := ProcessOrderCommandHandler{
		ledger:     ledger,
		uowFactory: uowFactory,
		planner:    planner,
		selector:   selector,
		budget:     opts.Budget,
		now:        opts.Clock,
		logger:     opts.Logger,
		tracer:     opts.Tracer,
	}
	if h.budget <= 0 {
		h.budget = defaultRequestBudget
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.tracer == nil {
		h.tracer = otel.Tracer("fulfillment/commands")
	}
	h.logger = h.logger.With("component", "order_router")

	return h, nil
}

// Handle routes one checkout. Every failure is an *OrderError.
func (h ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) (ProcessOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessOrderResult{}, NewOrderError(KindValidation, err)
	}

	ctx, span := h.tracer.Start(ctx, "order.process")
	defer span.End()

	o, err := order.NewOrder(kernel.NewUUID(), cmd.Address(), cmd.Payment(), cmd.LineItems(), cmd.Totals(), h.now())
	if err != nil {
		return ProcessOrderResult{}, h.fail(ctx, span, nil, NewOrderError(KindValidation, err))
	}
	logger := h.logger.With("order_id", o.ID().String())
	span.SetAttributes(attribute.String("order.id", o.ID().String()))

	ctx, cancel := context.WithTimeout(ctx, h.budget)
	defer cancel()

	if err = o.StartProcessing(); err != nil {
		return ProcessOrderResult{}, h.fail(ctx, span, logger, err)
	}

	plan, err := h.planAndReserve(ctx, logger, o)
	if err != nil {
		if rejectErr := o.Reject(); rejectErr != nil {
			logger.DebugContext(ctx, "order not marked rejected", "status", o.Status().String(), "error", rejectErr)
		}
		return ProcessOrderResult{}, h.fail(ctx, span, logger, err)
	}
	reserved := plan.ReservationItems()

	if err = o.Confirm(plan); err != nil {
		h.compensate(ctx, logger, reserved)
		return ProcessOrderResult{}, h.fail(ctx, span, logger, err)
	}

	if err = h.persist(ctx, o); err != nil {
		h.compensate(ctx, logger, reserved)
		return ProcessOrderResult{}, h.fail(ctx, span, logger, err)
	}

	logger.InfoContext(ctx, "order confirmed",
		"shipments", plan.ShipmentCount(),
		"carrier", plan.PreferredCarrier(),
		"estimated_delivery", plan.EstimatedDelivery().Format(time.DateOnly))

	return ProcessOrderResult{
		OrderID:           o.ID(),
		EstimatedDelivery: plan.EstimatedDelivery(),
		ShipmentCount:     plan.ShipmentCount(),
		PreferredCarrier:  plan.PreferredCarrier(),
		TotalShippingCost: plan.TotalShippingCost(),
		Plan:              plan,
	}, nil
}

// planAndReserve returns a plan whose stock is held by the ledger.
func (h ProcessOrderCommandHandler) planAndReserve(ctx context.Context, logger *slog.Logger, o *order.Order) (order.FulfillmentPlan, error) {
	var lastErr error
	for attempt := 1; attempt <= maxPlanAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return order.FulfillmentPlan{}, context.Cause(ctx)
		}

		plan, err := h.plan(ctx, o)
		if err != nil {
			return order.FulfillmentPlan{}, err
		}

		err = h.reserve(ctx, plan.ReservationItems())
		if err == nil {
			return plan, nil
		}
		if !errors.Is(err, inventory.ErrInsufficientStock) {
			return order.FulfillmentPlan{}, err
		}

		lastErr = err
		logger.InfoContext(ctx, "reservation lost a race, replanning", "attempt", attempt, "error", err)
	}
	return order.FulfillmentPlan{}, lastErr
}

func (h ProcessOrderCommandHandler) plan(ctx context.Context, o *order.Order) (order.FulfillmentPlan, error) {
	ctx, span := h.tracer.Start(ctx, "order.plan")
	defer span.End()

	lines := o.LineItems()
	snapshot := make(services.Snapshot, len(lines))
	for _, li := range lines {
		if _, ok := snapshot[li.ProductID()]; ok {
			continue
		}
		levels, err := h.ledger.Snapshot(ctx, li.ProductID())
		if err != nil {
			return order.FulfillmentPlan{}, err
		}
		snapshot[li.ProductID()] = levels
	}

	region := o.ShippingAddress().Region()
	groups, err := h.planner.Plan(lines, snapshot, region)
	if err != nil {
		return order.FulfillmentPlan{}, err
	}

	quotes, err := h.selector.Select(groups, region, h.now())
	if err != nil {
		return order.FulfillmentPlan{}, err
	}

	span.SetAttributes(attribute.Int("plan.shipments", len(groups)))
	return services.ComposePlan(groups, quotes)
}

func (h ProcessOrderCommandHandler) reserve(ctx context.Context, items []inventory.ReservationItem) error {
	ctx, span := h.tracer.Start(ctx, "ledger.reserve")
	defer span.End()

	if err := h.ledger.Reserve(ctx, items); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (h ProcessOrderCommandHandler) persist(ctx context.Context, o *order.Order) error {
	ctx, span := h.tracer.Start(ctx, "order.persist")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return context.Cause(ctx)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// compensate releases a reservation that no persisted order backs. It runs
// even when ctx is already done.
func (h ProcessOrderCommandHandler) compensate(ctx context.Context, logger *slog.Logger, items []inventory.ReservationItem) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationBudget)
	defer cancel()

	ctx, span := h.tracer.Start(ctx, "ledger.release")
	defer span.End()

	if err := h.ledger.Release(ctx, items); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compensating release failed")
		attrs := []any{"error", err}
		for _, it := range items {
			attrs = append(attrs, slog.Group("item",
				"product_id", it.ProductID, "location_id", it.LocationID, "quantity", it.Quantity))
		}
		logger.ErrorContext(ctx, "compensating release failed, stock is held without an order", attrs...)
		return
	}
	logger.WarnContext(ctx, "reservation released", "items", len(items))
}

func (h ProcessOrderCommandHandler) fail(ctx context.Context, span trace.Span, logger *slog.Logger, err error) error {
	orderErr := Classify(err)
	if logger == nil {
		logger = h.logger
	}

	span.RecordError(orderErr)
	span.SetStatus(codes.Error, string(orderErr.Kind))

	level := slog.LevelWarn
	if orderErr.Kind == KindPersistenceFailure || orderErr.Kind == KindNoCarrierAvailable {
		level = slog.LevelError
	}
	logger.Log(context.WithoutCancel(ctx), level, "order not processed",
		"kind", orderErr.Kind,
		"product_id", orderErr.ProductID,
		"location_id", orderErr.LocationID,
		"error", orderErr.Cause)

	return orderErr
}
