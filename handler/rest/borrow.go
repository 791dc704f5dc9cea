package rest

import (
	"net/http"

	"lever/core"
	"lever/handler/param"
	"lever/handler/render"

	"github.com/shopspring/decimal"
)

func borrowHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			UserID   string          `json:"user_id" valid:"required"`
			Asset    core.Asset      `json:"asset" valid:"required"`
			Chain    core.Chain      `json:"chain" valid:"required"`
			Amount   decimal.Decimal `json:"amount"`
			RateMode core.RateMode   `json:"rate_mode"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.RateMode == "" {
			params.RateMode = core.RateModeVariable
		}

		result, err := engine.Borrow(ctx, params.UserID, params.Asset, params.Chain, params.Amount, params.RateMode)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, result)
	}
}

func repayHandler(engine core.IEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params operationParams
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		result, err := engine.Repay(ctx, params.UserID, params.Asset, params.Chain, params.Amount)
		if err != nil {
			render.Fail(w, err)
			return
		}

		render.JSON(w, result)
	}
}
