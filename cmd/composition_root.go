package cmd

import (
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	ledger     *stockrepo.GormStockLedger
	planner    *services.AllocationPlanner
	selector   *services.CarrierSelector
}

// NewCompositionRoot resolves the planning policy from cfg and fails fast on
// an unknown split policy or location preference.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	table *carrier.Table,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) (CompositionRoot, error) {
	policy, err := services.ParseSplitPolicy(cfg.SplitPolicy)
	if err != nil {
		return CompositionRoot{}, err
	}
	preference, err := services.ParsePreference(cfg.LocationPreference, table)
	if err != nil {
		return CompositionRoot{}, err
	}
	planner, err := services.NewAllocationPlanner(preference, policy)
	if err != nil {
		return CompositionRoot{}, err
	}
	selector, err := services.NewCarrierSelector(table)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		ledger:     stockrepo.NewGormStockLedger(gormDB),
		planner:    planner,
		selector:   selector,
	}, nil
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() (commands.ProcessOrderCommandHandler, error) {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessOrderCommandHandler(c.ledger, f, c.planner, c.selector, commands.ProcessOrderOptions{
		Budget: c.cfg.RequestBudget,
		Logger: c.logger,
	})
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateFulfillOrderCommandHandler() commands.FulfillOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFulfillOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRestockInventoryCommandHandler() commands.RestockInventoryCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRestockInventoryCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListCustomerOrdersQueryHandler() queries.ListCustomerOrdersQueryHandler {
	return queries.NewListCustomerOrdersQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetStockSnapshotQueryHandler() queries.GetStockSnapshotQueryHandler {
	return queries.NewGetStockSnapshotQueryHandler(c.ledger)
}

// CreateHTTPHandlers collects every use case behind the HTTP server.
func (c *CompositionRoot) CreateHTTPHandlers() (httpadapter.Handlers, error) {
	router, err := c.CreateProcessOrderCommandHandler()
	if err != nil {
		return httpadapter.Handlers{}, err
	}
	cancel := c.CreateCancelOrderCommandHandler()
	fulfill := c.CreateFulfillOrderCommandHandler()
	restock := c.CreateRestockInventoryCommandHandler()

	return httpadapter.Handlers{
		ProcessOrder:       router,
		CancelOrder:        &cancel,
		FulfillOrder:       &fulfill,
		RestockInventory:   &restock,
		GetOrderDetails:    c.CreateGetOrderDetailsQueryHandler(),
		ListCustomerOrders: c.CreateListCustomerOrdersQueryHandler(),
		GetStockSnapshot:   c.CreateGetStockSnapshotQueryHandler(),
	}, nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
