package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/render"
	"lever/handler/views"

	"github.com/go-chi/chi"
)

func accountHealthHandler(
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	accountService core.IAccountService,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := chi.URLParam(r, "user_id")
		chain := core.Chain(r.URL.Query().Get("chain"))
		if chain == "" {
			chain = core.ChainEthereum
		}

		health, err := accountService.GetHealthSnapshot(ctx, userID, chain)
		if err != nil {
			render.Fail(w, err)
			return
		}

		supplies, err := supplyStore.FindByUser(ctx, userID, chain)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		borrows, err := borrowStore.FindByUser(ctx, userID, chain)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.Account{
			UserID:   userID,
			Chain:    chain,
			Supplies: supplies,
			Borrows:  borrows,
			Health:   health,
		})
	}
}
