package app

import (
	"github.com/eletroproposta/eletroproposta/internal/config"
	"github.com/eletroproposta/eletroproposta/internal/event_bus"
	"github.com/eletroproposta/eletroproposta/internal/utils"
	"github.com/eletroproposta/eletroproposta/pkg/activity"
	"github.com/eletroproposta/eletroproposta/pkg/cashflow"
	"github.com/eletroproposta/eletroproposta/pkg/catalog"
	"github.com/eletroproposta/eletroproposta/pkg/category"
	"github.com/eletroproposta/eletroproposta/pkg/document"
	"github.com/eletroproposta/eletroproposta/pkg/proposal"
	"github.com/eletroproposta/eletroproposta/pkg/transaction"
	"github.com/eletroproposta/eletroproposta/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserService user.Service
	UserHandler *user.Handler

	CatalogRepo    catalog.Repo
	CatalogService catalog.CatalogService
	CatalogHandler *catalog.Handler

	TransactionRepo    transaction.Repo
	TransactionService transaction.TransactionService
	TransactionHandler *transaction.Handler

	CategoryRepo    category.Repo
	CategoryService category.CategoryService
	CategoryHandler *category.Handler

	CashflowService   cashflow.CashflowService
	CsvSeriesRenderer *cashflow.CsvSeriesRendererImpl
	CashflowHandler   *cashflow.Handler

	ProposalRepo    proposal.Repo
	ProposalService proposal.ProposalService
	ProposalHandler *proposal.Handler

	DocumentService document.DocumentService
	DocumentHandler *document.Handler

	ActivityFeed    *activity.Feed
	ActivityHandler *activity.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db), cfg.Storage.Path)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CatalogRepo = catalog.NewCatalogRepo(db)
	deps.CatalogService = catalog.NewCatalogService(deps.CatalogRepo)
	deps.CatalogHandler = catalog.NewHandler(deps.CatalogService)

	deps.TransactionRepo = transaction.NewTransactionRepo(db)
	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo, deps.TransactionRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.TransactionService = transaction.NewTransactionService(deps.TransactionRepo, deps.CategoryService, deps.EventBus)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.CashflowService = cashflow.NewCashflowService(deps.TransactionService, deps.Clock)
	deps.CsvSeriesRenderer = cashflow.NewCsvSeriesRenderer()
	deps.CashflowHandler = cashflow.NewHandler(deps.CashflowService, deps.CsvSeriesRenderer)

	deps.ProposalRepo = proposal.NewProposalRepo(db)
	deps.ProposalService = proposal.NewProposalService(deps.ProposalRepo, deps.CatalogService, deps.EventBus,
		deps.Clock, cfg.Document.DefaultValidity)
	deps.ProposalHandler = proposal.NewHandler(deps.ProposalService)

	deps.DocumentService = document.NewDocumentService(deps.ProposalService, cfg.Document, deps.EventBus, deps.Clock)
	deps.DocumentHandler = document.NewHandler(deps.DocumentService)

	deps.ActivityFeed = activity.NewFeed()
	deps.ActivityFeed.Subscribe(deps.EventBus)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityFeed)

	return deps
}
