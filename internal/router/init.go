package router

import (
	"github.com/sda-collective/member-directory/internal/application"
	"github.com/sda-collective/member-directory/internal/container"
	"github.com/sda-collective/member-directory/internal/infrastructure/shopify"
	handlers "github.com/sda-collective/member-directory/internal/interface/http"
	"github.com/sda-collective/member-directory/internal/router/modules"
	"github.com/sda-collective/member-directory/pkg/helpers"
)

// InitModules builds the dependency graph from the container singletons and
// registers every feature module. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	client := container.GetStoreClient()

	members := shopify.NewMemberRepo(client, cfg.MemberObjectType)
	creds := shopify.NewCredentialStore(client, cfg.CredentialNamespace, logger)

	schema := application.NewProfileSchema(application.SchemaOptionsFromConfig(cfg))
	profiles := application.NewProfileService(members, schema, logger)
	auth := application.NewAuthService(members, creds, logger, container.GetRabbitPub(), cfg.MailSendEnabled)

	var photos *helpers.PhotoStore
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		photos = helpers.NewPhotoStore(gcs, cfg.GCSBucket)
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(auth, container.GetSessions(), logger)))
	r.Add(modules.NewMembersModule(handlers.NewMemberHandler(profiles, photos, logger)))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(profiles, auth, logger)))
	r.Add(modules.NewDebugModule())
}
