package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/render"

	"github.com/spf13/cast"
)

// user operation journal, newest first
func transactionsHandler(transactionStore core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := r.URL.Query().Get("user_id")
		limit := cast.ToInt(r.URL.Query().Get("limit"))
		if limit <= 0 || limit > 500 {
			limit = 500
		}

		transactions, err := transactionStore.List(ctx, userID, limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}
