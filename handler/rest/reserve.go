package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/render"
	"lever/handler/views"
)

func allReservesHandler(reserveStore core.IReserveStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reserves, err := reserveStore.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		reserveViews := make([]*views.Reserve, 0, len(reserves))
		for _, reserve := range reserves {
			view := &views.Reserve{Reserve: *reserve}
			if market, err := core.GetMarket(reserve.Asset, reserve.Chain); err == nil {
				view.Risk = market.Risk
			}
			reserveViews = append(reserveViews, view)
		}

		render.JSON(w, reserveViews)
	}
}
