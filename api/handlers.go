package api

import (
	"time"

	"github.com/studionord/backend/auth"
	"github.com/studionord/backend/config"
	"github.com/studionord/backend/database"
	"github.com/studionord/backend/errs"
	"github.com/studionord/backend/services"
	"github.com/studionord/backend/storage"
)

// DefaultHeroSlotCap is the widest cap the store constraint permits. The
// effective cap is HERO_SLOT_CAP, pending a product decision between 3 and 4.
const DefaultHeroSlotCap = 4

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler     authHandler
	projectHandler  projectHandler
	heroHandler     heroHandler
	categoryHandler categoryHandler
	contactHandler  contactHandler
	bookingHandler  bookingHandler
	videoHandler    videoHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, store *storage.Client, gateway *storage.Gateway, mailer *services.Mailer, manager *auth.Manager, cfg map[string]string) *routeHandlers {
	adminEmail := config.GetString(cfg, "ADMIN_EMAIL", "")
	slotCap := config.GetInt(cfg, "HERO_SLOT_CAP", DefaultHeroSlotCap)

	return &routeHandlers{
		authHandler:     newAuthHandler(manager, adminEmail, config.GetString(cfg, "ADMIN_PASSWORD_HASH", "")),
		projectHandler:  newProjectHandler(db.ProjectRepo(), gateway),
		heroHandler:     newHeroHandler(db.HeroSlotRepo(), gateway, slotCap),
		categoryHandler: newCategoryHandler(db.ServiceCategoryRepo()),
		contactHandler:  newContactHandler(db.ContactRepo(), mailer, config.GetString(cfg, "ADMIN_NOTIFY_EMAIL", adminEmail)),
		bookingHandler:  newBookingHandler(db.BookingRepo()),
		videoHandler:    newVideoHandler(store),
	}
}

func newManager(cfg map[string]string) *auth.Manager {
	return &auth.Manager{
		Secret:    []byte(config.GetString(cfg, "SESSION_SECRET", "")),
		AccessTTL: time.Duration(config.GetInt(cfg, "SESSION_TTL_MINUTES", 720)) * time.Minute,
		Issuer:    "studionord-backend",
	}
}

// wrapDatabaseError wraps a database error with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
