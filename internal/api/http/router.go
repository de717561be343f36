package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"toolrent-backend/internal/service"
)

// NewRouter wires every public engine operation to a route. Paths follow the
// shape the frontend already consumes.
func NewRouter(
	inventory service.InventoryService,
	loans service.LoanService,
	kardex service.KardexService,
	clients service.ClientService,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogging)

	toolHandler := NewToolHandler(inventory)
	tools := r.PathPrefix("/api/tools").Subrouter()
	tools.HandleFunc("/createTool/{quantity}/{rut}", toolHandler.CreateTool).Methods(http.MethodPost)
	tools.HandleFunc("/getTools", toolHandler.GetTools).Methods(http.MethodGet)
	tools.HandleFunc("/stock", toolHandler.GetStock).Methods(http.MethodGet)
	tools.HandleFunc("/available", toolHandler.GetAvailableTools).Methods(http.MethodGet)
	tools.HandleFunc("/byModel", toolHandler.GetToolsByModel).Methods(http.MethodGet)
	tools.HandleFunc("/getTool/{toolId}", toolHandler.GetTool).Methods(http.MethodGet)
	tools.HandleFunc("/updateTool/{toolId}/{rut}", toolHandler.UpdateTool).Methods(http.MethodPut)
	tools.HandleFunc("/decommissionTool/{toolId}/{rut}", toolHandler.DecommissionTool).Methods(http.MethodPost)

	loanHandler := NewLoanHandler(loans)
	loanRoutes := r.PathPrefix("/api/loans").Subrouter()
	loanRoutes.HandleFunc("/createLoan/{rut}", loanHandler.CreateLoan).Methods(http.MethodPost)
	loanRoutes.HandleFunc("/returnLoan/{loanId}/{rut}", loanHandler.ReturnLoan).Methods(http.MethodPost)
	loanRoutes.HandleFunc("/getLoans", loanHandler.GetLoans).Methods(http.MethodGet)
	loanRoutes.HandleFunc("/loansActive", loanHandler.GetActiveLoans).Methods(http.MethodGet)
	loanRoutes.HandleFunc("/loansActiveByDate", loanHandler.GetActiveLoansByDate).Methods(http.MethodGet)
	loanRoutes.HandleFunc("/overdueClients", loanHandler.GetOverdueLoans).Methods(http.MethodGet)
	loanRoutes.HandleFunc("/overdueClientsByDate", loanHandler.GetOverdueLoansByDate).Methods(http.MethodGet)
	loanRoutes.HandleFunc("/unpaid", loanHandler.GetUnpaidLoans).Methods(http.MethodGet)
	loanRoutes.HandleFunc("/topTools", loanHandler.GetTopTools).Methods(http.MethodGet)
	loanRoutes.HandleFunc("/topToolsByDate", loanHandler.GetTopToolsByDate).Methods(http.MethodGet)
	loanRoutes.HandleFunc("/{loanId}/finePaid", loanHandler.UpdateFinePaid).Methods(http.MethodPut)

	kardexHandler := NewKardexHandler(kardex)
	kardexRoutes := r.PathPrefix("/api/kardex").Subrouter()
	kardexRoutes.HandleFunc("/all", kardexHandler.GetAllMovements).Methods(http.MethodGet)
	kardexRoutes.HandleFunc("/tool/{toolId}", kardexHandler.GetMovementsByTool).Methods(http.MethodGet)
	kardexRoutes.HandleFunc("/dates", kardexHandler.GetMovementsByDateRange).Methods(http.MethodGet)
	kardexRoutes.HandleFunc("/filter/{toolId}", kardexHandler.GetFilteredMovements).Methods(http.MethodGet)

	clientHandler := NewClientHandler(clients)
	clientRoutes := r.PathPrefix("/api/clients").Subrouter()
	clientRoutes.HandleFunc("/createClient", clientHandler.CreateClient).Methods(http.MethodPost)
	clientRoutes.HandleFunc("/getClients", clientHandler.GetClients).Methods(http.MethodGet)
	clientRoutes.HandleFunc("/{id}", clientHandler.GetClient).Methods(http.MethodGet)
	clientRoutes.HandleFunc("/{id}", clientHandler.UpdateClient).Methods(http.MethodPut)
	clientRoutes.HandleFunc("/{id}/debts", clientHandler.GetClientDebts).Methods(http.MethodGet)

	return r
}
