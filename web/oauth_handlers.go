package web

import (
	"net/http"

	"github.com/tunnelsnakes/sandlot/controller"
	"github.com/unrolled/render"
)

func oauthLinkHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := ctrl.OAuthStart()
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		http.Redirect(w, r, url, http.StatusSeeOther)
	}
}

func oauthRedirectHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		code := params.Get("code")
		state := params.Get("state")

		token, err := ctrl.OAuthExchange(r.Context(), state, code)
		if err != nil {
			render.HTML(w, http.StatusBadRequest, "500", err.Error())
			return
		}

		data := map[string]any{
			"refreshToken": token.RefreshToken,
			"expiry":       token.Expiry,
		}
		render.HTML(w, http.StatusOK, "oauthComplete", data)
	}
}
