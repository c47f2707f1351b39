package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"matchmaker/internal/cache"
	"matchmaker/internal/config"
	"matchmaker/internal/db"
	apperrors "matchmaker/internal/errors"
	"matchmaker/internal/model"
	"matchmaker/internal/repository"
	"matchmaker/internal/service"
)

const seedPassword = "password"

type seedUser struct {
	FirstName   string
	DisplayName string
	Email       string
	Location    model.GeoPoint
}

type seedProject struct {
	Name        string
	Description string
	Owner       string // display name
	PicURL      string
	Tags        []string
}

var users = []seedUser{
	{FirstName: "Pat", DisplayName: "pat", Email: "pat@email.com", Location: model.GeoPoint{Lat: 49.28778937014537, Long: -123.11413092334273}},
	{FirstName: "Jill", DisplayName: "jill", Email: "jill@email.com", Location: model.GeoPoint{Lat: 49.191682433834714, Long: -122.84534638593648}},
	{FirstName: "Tester", DisplayName: "tester", Email: "test@test.com", Location: model.GeoPoint{Lat: 49.176662, Long: -123.080341}},
}

var projects = []seedProject{
	{
		Name: "Stained Glass",
		Description: "I have a really boring window with a mediocre view! I would love to do a stained glass " +
			"project of some sort with it? Does anyone have any expertise on this and be willing to help me?",
		Owner:  "pat",
		PicURL: "/static/images/window-nicolas-solerieu-unsplash.jpg",
		Tags:   []string{"glass art"},
	},
	{
		Name: "Compost Bin",
		Description: "Anyone have metal welding equipment and skills that they'd be helping to lend to my project? " +
			"I want to make a tumbler compost bin from a metal food grade drum I have lying around!",
		Owner: "jill",
		Tags:  []string{"green living", "hardware"},
	},
	{
		Name:        "Wooden Pallet",
		Description: "I've got old wooden pallets, anyone want to make a fun project with them? I'd love to hear some ideas!",
		Owner:       "tester",
		PicURL:      "/static/images/wooden_pallet-reproductive-health-supplies-coalition-unsplash.jpg",
		Tags:        []string{"green living"},
	},
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	log.Info().Msg("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.ProjectTag{}, &model.Project{}, &model.Tag{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("drop table")
			}
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	// A nil cache client skips caching; the seed only needs it to invalidate the tag list.
	var cacheClient *cache.Client
	if c := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB); c.Ping(context.Background()) != nil {
		log.Warn().Str("addr", cfg.RedisAddr).Msg("redis unavailable, tag cache will not be invalidated")
		_ = c.Close()
	} else {
		cacheClient = c
		defer c.Close()
	}

	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userRepo)
	projectService := service.NewProjectService(
		repository.NewProjectRepository(gormDB),
		service.NewTagService(repository.NewTagRepository(gormDB), cacheClient),
	)

	ctx := context.Background()
	owners, created, err := seedUsers(ctx, userRepo, authService)
	if err != nil {
		log.Fatal().Err(err).Msg("seed users")
	}
	log.Info().Int("created", created).Int("existing", len(owners)-created).Msg("users seeded")

	if created == 0 {
		log.Info().Msg("users already present, skipping projects")
		return
	}
	if err := seedProjects(ctx, projectService, owners); err != nil {
		log.Fatal().Err(err).Msg("seed projects")
	}
	log.Info().Int("projects", len(projects)).Msg("Seed completed successfully!")
}

// seedUsers creates any missing demo user and returns every one by display name.
func seedUsers(ctx context.Context, repo repository.UserRepository, auth service.AuthService) (map[string]*model.User, int, error) {
	owners := make(map[string]*model.User, len(users))
	created := 0
	for _, u := range users {
		existing, err := repo.FindByEmail(ctx, u.Email)
		switch {
		case err == nil:
			owners[u.DisplayName] = existing
			continue
		case !errors.Is(err, apperrors.ErrNotFound):
			return nil, created, fmt.Errorf("check user %s: %w", u.Email, err)
		}

		user, err := auth.Signup(ctx, service.SignupInput{
			Email:          u.Email,
			Password:       seedPassword,
			DisplayName:    u.DisplayName,
			FirstName:      u.FirstName,
			Location:       u.Location,
			SeekingProject: true,
			SeekingHelp:    true,
		})
		if err != nil {
			return nil, created, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		owners[u.DisplayName] = user
		created++
	}
	return owners, created, nil
}

func seedProjects(ctx context.Context, svc service.ProjectService, owners map[string]*model.User) error {
	for _, p := range projects {
		owner := owners[p.Owner]
		if owner == nil {
			return fmt.Errorf("project %q: unknown owner %q", p.Name, p.Owner)
		}
		if _, err := svc.Create(ctx, owner, service.ProjectInput{
			Name:            p.Name,
			Description:     p.Description,
			ContactInfoType: "email",
			ContactInfo:     owner.Email,
			Location:        owner.Location(),
			PicURL1:         p.PicURL,
			Tags:            p.Tags,
		}); err != nil {
			return fmt.Errorf("create project %q: %w", p.Name, err)
		}
	}
	return nil
}
