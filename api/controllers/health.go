package controllers

import (
	"net/http"

	"github.com/angelmondragon/ecomlytics-backend/api/responses"
	"github.com/angelmondragon/ecomlytics-backend/pkg/config"
)

const envHeader = "X-Ecomlytics-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}
