package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"gso/handlers"
	"gso/middleware"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly  = []string{"GET", "OPTIONS"}
	MethodsPostOnly = []string{"POST", "OPTIONS"}
	MethodsPutOnly  = []string{"PUT", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router, env *handlers.Env) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc("/health", env.Health).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION ROUTES (Public - No auth required)
	// ====================
	r.HandleFunc("/api/auth/register", env.Register).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/login", env.Login).Methods(MethodsPostOnly...)

	// ====================
	// WEBSOCKET (auth handled at upgrade)
	// ====================
	r.HandleFunc("/ws", env.Hub.ServeWS)

	// ====================
	// STATIC FILES (attachment downloads)
	// ====================
	if env.FileDir != "" {
		r.PathPrefix("/files/").Handler(
			http.StripPrefix("/files/", http.FileServer(http.Dir(env.FileDir))))
	}

	// ====================
	// PROTECTED API ROUTES (Require authentication)
	// ====================
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware)

	// ====================
	// CURRENT USER
	// ====================
	apiRouter.HandleFunc("/user/me", env.Me).Methods(MethodsGetOnly...)

	// ====================
	// ASSET REGISTRY
	// ====================
	apiRouter.HandleFunc("/assets", env.ListAssets).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/assets", env.CreateAsset).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assets/bulk", env.BulkCreateAssets).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assets/physical-count", env.PhysicalCount).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assets/{id}", env.GetAsset).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/assets/{id}", env.UpdateAsset).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/assets/{id}/dispose", env.DisposeAsset).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assets/{id}/repairs", env.AddRepairRecord).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assets/{id}/attachments", env.UploadAttachment).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assets/{id}/depreciation", env.AssetDepreciation).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/assets/{id}/ledger-card", env.AssetLedgerCard).Methods(MethodsGetOnly...)

	// ====================
	// REAL PROPERTY REGISTRY
	// ====================
	apiRouter.HandleFunc("/properties", env.ListProperties).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/properties", env.CreateProperty).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/properties/{id}", env.GetProperty).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/properties/{id}", env.UpdateProperty).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/properties/{id}/dispose", env.DisposeProperty).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/properties/{id}/depreciation", env.PropertyDepreciation).Methods(MethodsGetOnly...)

	// ====================
	// DOCUMENT WORKFLOWS
	// ====================
	apiRouter.HandleFunc("/documents", env.ListDocuments).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/documents/assign", env.Assign).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/documents/transfer", env.Transfer).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/documents/waste", env.CertifyWaste).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/documents/inspect", env.Inspect).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/documents/receiving", env.CreateReceivingReport).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/documents/{id}", env.GetDocument).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/documents/{id}/cancel", env.CancelDocument).Methods(MethodsPostOnly...)

	// ====================
	// SUPPLY STOCK & REQUISITIONS
	// ====================
	apiRouter.HandleFunc("/stock-items", env.ListStockItems).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/stock-items", env.CreateStockItem).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/stock-items/{id}", env.GetStockItem).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/stock-items/{id}", env.UpdateStockItem).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/requisitions", env.ListRequisitions).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/requisitions", env.CreateRequisition).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/requisitions/{id}", env.GetRequisition).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/requisitions/{id}/fulfill", env.FulfillRequisition).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/requisitions/{id}/cancel", env.CancelRequisition).Methods(MethodsPostOnly...)

	// ====================
	// OFFICES
	// ====================
	apiRouter.HandleFunc("/offices", env.ListOffices).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/offices", env.CreateOffice).Methods(MethodsPostOnly...)
}
