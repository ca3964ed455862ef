package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"

	"github.com/sda-collective/member-directory/config"
	"github.com/sda-collective/member-directory/internal/application"
	"github.com/sda-collective/member-directory/internal/domain/entity"
	"github.com/sda-collective/member-directory/internal/infrastructure/shopify"
	"github.com/sda-collective/member-directory/pkg/helpers"
)

// Seeds the store with fake members for local development. Every member
// goes through the normal provisioning path, so credentials and welcome
// state look exactly like admin-created records.
func main() {
	count := flag.Int("count", 5, "number of members to create")
	password := flag.String("password", "changeme123", "initial password for every seeded member")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.ShopDomain == "" || cfg.AdminAPIToken == "" {
		log.Fatal("SHOP_DOMAIN and ADMIN_API_TOKEN must be set")
	}

	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	client := shopify.NewClient(cfg.AdminAPIURL(), cfg.AdminAPIToken, logger)
	members := shopify.NewMemberRepo(client, cfg.MemberObjectType)
	creds := shopify.NewCredentialStore(client, cfg.CredentialNamespace, logger)

	schema := application.NewProfileSchema(application.SchemaOptionsFromConfig(cfg))
	profiles := application.NewProfileService(members, schema, logger)
	auth := application.NewAuthService(members, creds, logger, nil, false)

	languages := cfg.Languages()
	services := cfg.Services()
	technologies := cfg.Technologies()
	industries := cfg.Industries()

	ctx := context.Background()
	for i := 0; i < *count; i++ {
		name := gofakeit.Name()
		email := gofakeit.Email()
		role := entity.Roles[gofakeit.Number(0, len(entity.Roles)-1)]

		handle, err := auth.CreateMember(ctx, application.CreateMemberInput{
			Name:            name,
			Email:           email,
			Role:            string(role),
			Password:        *password,
			ConfirmPassword: *password,
		})
		if err != nil {
			log.Fatalf("create member %q: %v", email, err)
		}

		rec, err := members.GetByHandle(ctx, handle)
		if err != nil || rec == nil {
			log.Fatalf("fetch seeded member %q: %v", handle, err)
		}

		tagline := gofakeit.JobTitle()
		description := gofakeit.Paragraph(1, 3, 12, " ")
		website := "https://" + gofakeit.DomainName()
		visible := true
		openToWork := gofakeit.Bool()
		update := application.ProfileUpdate{
			Tagline:            &tagline,
			Description:        &description,
			Website:            &website,
			Visible:            &visible,
			OpenToWork:         &openToWork,
			Languages:          pick(languages, 2),
			PrimaryService:     first(services),
			Services:           pick(services, 3),
			Technologies:       pick(technologies, 4),
			IndustryExperience: pick(industries, 2),
		}
		if err := profiles.Update(ctx, rec.ID, update); err != nil {
			log.Fatalf("fill profile %q: %v", handle, err)
		}
		fmt.Printf("seeded member: handle=%s email=%s role=%s\n", handle, email, role)
	}
}

// pick returns up to n distinct entries from opts.
func pick(opts []string, n int) *[]string {
	if len(opts) == 0 {
		return nil
	}
	if n > len(opts) {
		n = len(opts)
	}
	shuffled := make([]string, len(opts))
	copy(shuffled, opts)
	gofakeit.ShuffleStrings(shuffled)
	out := shuffled[:n]
	return &out
}

func first(opts []string) *string {
	if len(opts) == 0 {
		return nil
	}
	return &opts[0]
}
