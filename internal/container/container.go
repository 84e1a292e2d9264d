package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/eventrentals/internal/config"
	"github.com/joshua-takyi/eventrentals/internal/helpers"
	"github.com/joshua-takyi/eventrentals/internal/models"
	"github.com/joshua-takyi/eventrentals/internal/services"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	// Optional clients; nil when not configured
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	Cloudinary     *cloudinary.Cloudinary

	LocalStore  *models.LocalRepo
	StoreEvents *models.MongodbRepo
	Stores      *services.Failover

	BookingService     *services.BookingService
	ItemService        *services.ItemService
	PackageService     *services.PackageService
	MessageService     *services.MessageService
	TestimonialService *services.TestimonialService
	UserService        *services.UserService
	SettingsService    *services.SettingsService
	BackupService      *services.BackupService
}

// NewContainer wires services to stores. supabaseClient, mongoDBClient and
// cld may be nil.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	cld *cloudinary.Cloudinary,
) *Container {
	local := models.LocalNewRepo(cfg.DataFile)

	// primary stays a nil interface in local-only mode
	var primary models.Store
	if supabaseClient != nil {
		primary = models.SupabaseNewRepo(supabaseClient, cfg.SupabaseURL, cfg.SupabaseAnonKey)
	}

	var (
		storeEvents *models.MongodbRepo
		recorder    services.StoreEventRecorder
		lister      services.StoreEventLister
	)
	if mongoDBClient != nil {
		storeEvents = models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
		recorder = storeEvents
		lister = storeEvents
	}

	stores := services.NewFailover(primary, local, recorder, logger, services.FailoverConfig{
		Timeout:     cfg.RequestTimeout,
		MaxFailures: cfg.BreakerFailures,
		Cooldown:    cfg.BreakerCooldown,
	})

	var images services.ImageStore
	if cld != nil {
		images = helpers.NewImageUploader(cld, logger)
	}

	inventory := services.NewInventoryService(logger)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		Cloudinary:     cld,
		LocalStore:     local,
		StoreEvents:    storeEvents,
		Stores:         stores,

		BookingService:     services.NewBookingService(stores, inventory, logger),
		ItemService:        services.NewItemService(stores, images),
		PackageService:     services.NewPackageService(stores, images),
		MessageService:     services.NewMessageService(stores),
		TestimonialService: services.NewTestimonialService(stores),
		UserService: services.NewUserService(stores, services.TokenConfig{
			Secret: cfg.JWTSecret,
			TTL:    cfg.TokenTTL,
		}, logger),
		SettingsService: services.NewSettingsService(stores),
		BackupService:   services.NewBackupService(stores, lister, logger),
	}
}
