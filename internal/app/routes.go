package app

import (
	"github.com/eletroproposta/eletroproposta/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Service catalog
	r.HandleFunc("/api/service", deps.CatalogHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/service", deps.CatalogHandler.Create).Methods("POST")
	r.HandleFunc("/api/service/{id}", deps.CatalogHandler.Update).Methods("PUT")
	r.HandleFunc("/api/service/{id}", deps.CatalogHandler.Delete).Methods("DELETE")

	// Proposals
	r.HandleFunc("/api/proposal", deps.ProposalHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/proposal", deps.ProposalHandler.Create).Methods("POST")
	r.HandleFunc("/api/proposal/{uid}", deps.ProposalHandler.Get).Methods("GET")
	r.HandleFunc("/api/proposal/{uid}", deps.ProposalHandler.Update).Methods("PUT")
	r.HandleFunc("/api/proposal/{uid}", deps.ProposalHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/proposal/{uid}/status", deps.ProposalHandler.ChangeStatus).Methods("POST")
	r.HandleFunc("/api/proposal/{uid}/revision", deps.ProposalHandler.ListRevisions).Methods("GET")

	// Proposal document
	r.HandleFunc("/api/proposal/{uid}/document", deps.DocumentHandler.Generate).Methods("POST")
	r.HandleFunc("/api/proposal/{uid}/document", deps.DocumentHandler.Preview).Methods("GET")

	// Transactions
	r.HandleFunc("/api/transaction", deps.TransactionHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/transaction", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transaction/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Transaction categories
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Cash flow; from/to validation happens in the handler so a missing
	// parameter gets a proper 400 instead of a router 404
	r.HandleFunc("/api/cashflow/daily", deps.CashflowHandler.GetDailyBalances).Methods("GET")
	r.HandleFunc("/api/cashflow/summary", deps.CashflowHandler.GetSummary).Methods("GET")

	// Recent activity
	r.HandleFunc("/api/activity", deps.ActivityHandler.Recent).Methods("GET")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/current/photo", deps.UserHandler.UploadPhoto).Methods("PUT")
	r.HandleFunc("/api/user/current/photo", deps.UserHandler.GetPhoto).Methods("GET")
	r.HandleFunc("/api/user/current/photo", deps.UserHandler.DeletePhoto).Methods("DELETE")
}
