package Messaging

import (
	"context"
	"log"
	"os"
	"sync"

	"DocTools/Constants"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

// Handle is the background messaging channel. It is created exactly once per
// process by Setup and passed explicitly to whatever consumes it; there is no
// ambient client.
//
// A Handle built from a malformed configuration is inert: it never errors at
// call sites, it just silently delivers nothing. That mirrors how the
// foreground push subscription behaves when the config is wrong, and it is
// the documented failure mode: no notifications, no crash.
type Handle struct {
	cfg             Constants.FirebaseWebConfig
	app             *firebase.App
	messagingClient *messaging.Client
	inert           bool
	inertLogOnce    sync.Once
}

var (
	setupMu sync.Mutex
	handle  *Handle
)

// Setup configures and activates the messaging channel against cfg. It is
// idempotent per process lifetime: repeated calls return the same Handle and
// never error, so a restarted context can call it again freely.
func Setup(cfg Constants.FirebaseWebConfig) *Handle {
	setupMu.Lock()
	defer setupMu.Unlock()

	if handle != nil {
		return handle
	}

	h := &Handle{cfg: cfg}
	handle = h

	if cfg.ProjectID == "" || cfg.MessagingSenderID == "" || cfg.AppID == "" {
		log.Println("Messaging config is malformed, background delivery disabled")
		h.inert = true
		return h
	}

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Println("FIREBASE_SERVICE_ACCOUNT_PATH not set, will use application default credentials")
	}

	ctx := context.Background()
	fbConfig := &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	var err error
	if serviceAccountPath != "" {
		opt := option.WithCredentialsFile(serviceAccountPath)
		h.app, err = firebase.NewApp(ctx, fbConfig, opt)
	} else {
		h.app, err = firebase.NewApp(ctx, fbConfig)
	}
	if err != nil {
		log.Printf("Failed to initialize Firebase app, background delivery disabled: %v", err)
		h.inert = true
		return h
	}

	h.messagingClient, err = h.app.Messaging(ctx)
	if err != nil {
		log.Printf("Failed to initialize Firebase messaging client, background delivery disabled: %v", err)
		h.inert = true
		return h
	}

	log.Println("Firebase messaging client initialized successfully")
	return h
}

// Inert reports whether the channel was disabled by a failed initialization.
func (h *Handle) Inert() bool {
	return h == nil || h.inert
}

// LogInertOnce notes the dead channel the first time something tries to use
// it. Dropped deliveries after that stay silent.
func (h *Handle) LogInertOnce() {
	if h == nil {
		return
	}
	h.inertLogOnce.Do(func() {
		log.Println("Dropping push: messaging channel was never initialized")
	})
}
