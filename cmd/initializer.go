package main

import (
	"database/sql"
	"log"
	"net/http"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"shesafeBack/internal/alert"
	"shesafeBack/internal/bridge"
	"shesafeBack/internal/config"
	"shesafeBack/internal/handlers"
	"shesafeBack/internal/repositories"
	"shesafeBack/internal/services"
	"shesafeBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	orchestrator    *alert.Orchestrator
	alertHandler    *handlers.AlertHandler
	trackingHandler *handlers.TrackingHandler
	contactHandler  *handlers.ContactHandler
	profileHandler  *handlers.ProfileHandler
	notifyHandler   *handlers.NotifyHandler
	bridgeHandler   *handlers.BridgeHandler
	resultHub       *ResultHub
}

// moduleLogger adapts the two stdlib loggers to the alert module interface.
type moduleLogger struct {
	infoLog  *log.Logger
	errorLog *log.Logger
}

func (l moduleLogger) Infof(format string, args ...interface{})  { l.infoLog.Printf(format, args...) }
func (l moduleLogger) Errorf(format string, args ...interface{}) { l.errorLog.Printf(format, args...) }

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, fsClient *firestore.Client, fcmClient *messaging.Client, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	contactRepo := repositories.ContactRepository{RDB: rdb}

	// Services
	profileService := &services.ProfileService{UserRepo: &userRepo}
	contactService := &services.ContactService{ContactRepo: &contactRepo}
	notifyService := &services.NotifyService{Client: fcmClient, UserRepo: &userRepo}
	sink := &services.FirestoreSink{Client: fsClient}

	tokenManager, err := utils.NewManager(string(signingKey()))
	if err != nil {
		errorLog.Fatal(err)
	}
	pairingService := &services.PairingService{RDB: rdb, Tokens: tokenManager}

	logger := moduleLogger{infoLog: infoLog, errorLog: errorLog}
	bridgeClient := bridge.NewClient(http.DefaultClient, cfg.Bridge.BaseURL, cfg.Bridge.APIKey)
	resultHub := NewResultHub()

	deps := &alert.Deps{
		Bridge:   bridgeClient,
		Profile:  profileService,
		Contacts: contactService,
		Sink:     sink,
		Results:  resultHub,
		Notifier: notifyService,
		Logger:   logger,
		Config:   cfg.Alert,
	}
	if cfg.SMS.Gateway == "mobizon" {
		deps.Texts = &services.SMSService{APIKey: cfg.SMS.MobizonAPIKey}
	}
	if cfg.Audit.Enabled {
		uploader := utils.NewS3Uploader(cfg.Audit.AccessKey, cfg.Audit.SecretKey, cfg.Audit.Bucket, cfg.Audit.Region, cfg.Audit.Endpoint)
		deps.Auditor = &services.AuditService{Uploader: uploader}
	}

	orchestrator, err := alert.EnsureOrchestrator(deps)
	if err != nil {
		errorLog.Fatal(err)
	}

	return &application{
		errorLog:        errorLog,
		infoLog:         infoLog,
		db:              db,
		orchestrator:    orchestrator,
		alertHandler:    &handlers.AlertHandler{Orchestrator: orchestrator},
		trackingHandler: &handlers.TrackingHandler{Orchestrator: orchestrator, Sink: sink},
		contactHandler:  &handlers.ContactHandler{Service: contactService},
		profileHandler:  &handlers.ProfileHandler{Service: profileService},
		notifyHandler:   &handlers.NotifyHandler{Service: notifyService},
		bridgeHandler:   &handlers.BridgeHandler{Service: pairingService},
		resultHub:       resultHub,
	}
}
