package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)

	mux := pat.New()

	// Alert cycle
	mux.Post("/alert/arm", authMiddleware.ThenFunc(app.alertHandler.Arm))
	mux.Post("/alert/cancel", authMiddleware.ThenFunc(app.alertHandler.Cancel))
	mux.Get("/alert/progress", authMiddleware.ThenFunc(app.alertHandler.Progress))
	mux.Post("/alert/shake", authMiddleware.ThenFunc(app.alertHandler.Shake))
	mux.Post("/alert/trigger", authMiddleware.ThenFunc(app.alertHandler.Trigger))
	mux.Post("/alert/safe", authMiddleware.ThenFunc(app.alertHandler.Safe))
	mux.Get("/alert/ride", authMiddleware.ThenFunc(app.alertHandler.RideDetails))

	// Emergency contacts
	mux.Get("/contacts", authMiddleware.ThenFunc(app.contactHandler.GetContacts))
	mux.Put("/contacts", authMiddleware.ThenFunc(app.contactHandler.SaveContacts))

	// Live location
	mux.Post("/tracking/start", authMiddleware.ThenFunc(app.trackingHandler.Start))
	mux.Post("/tracking/stop", authMiddleware.ThenFunc(app.trackingHandler.Stop))
	mux.Get("/tracking/:phone", authMiddleware.ThenFunc(app.trackingHandler.Get))

	// Push tokens
	mux.Post("/notify/token", authMiddleware.ThenFunc(app.notifyHandler.CreateToken))
	mux.Del("/notify/token/:token", authMiddleware.ThenFunc(app.notifyHandler.DeleteToken))

	// Profile
	mux.Get("/profile/preference", authMiddleware.ThenFunc(app.profileHandler.GetPreference))
	mux.Put("/profile/preference", authMiddleware.ThenFunc(app.profileHandler.UpdatePreference))
	mux.Post("/profile/pin", authMiddleware.ThenFunc(app.profileHandler.SetPIN))
	mux.Post("/profile/pin/verify", authMiddleware.ThenFunc(app.profileHandler.VerifyPIN))

	// Device bridge pairing
	mux.Post("/bridge/pair", authMiddleware.ThenFunc(app.bridgeHandler.Pair))
	mux.Post("/bridge/token", standardMiddleware.ThenFunc(app.bridgeHandler.Complete))

	// Cycle results feed
	mux.Get("/ws/results", http.HandlerFunc(app.ResultsWebSocketHandler))

	return mux
}
