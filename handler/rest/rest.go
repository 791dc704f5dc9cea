package rest

import (
	"errors"
	"net/http"

	"lever/core"
	"lever/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	engine core.IEngine,
	reserveStore core.IReserveStore,
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	transactionStore core.TransactionStore,
	accountService core.IAccountService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Post("/supply", supplyHandler(engine))
	router.Post("/withdraw", withdrawHandler(engine))
	router.Post("/borrow", borrowHandler(engine))
	router.Post("/repay", repayHandler(engine))

	router.Get("/accounts/{user_id}/health", accountHealthHandler(supplyStore, borrowStore, accountService))
	router.Get("/reserves/all", allReservesHandler(reserveStore))
	router.Get("/transactions", transactionsHandler(transactionStore))

	return router
}
