package main

import (
	"context"
	"flag"
	"fmt"

	"paylock/pkg/cache"
	"paylock/pkg/config"
	"paylock/pkg/database"
	"paylock/pkg/jwt"
	"paylock/pkg/logger"
	"paylock/pkg/wallet"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/model"
	ledgerCache "paylock/services/ledger/internal/repo/cache"
	"paylock/services/ledger/internal/repo/persistent"
	"paylock/services/ledger/internal/usecase"

	"gorm.io/gorm"
)

var demoRates = []struct {
	currency string
	usdPrice string
}{
	{"ETH", "2000"},
	{"SOL", "100"},
	{"MATIC", "0.50"},
	{"BNB", "300"},
}

var demoUsers = []struct {
	name    string
	address string
	role    string
}{
	{"creator", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "creator"},
	{"investor", "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359", "viewer"},
	{"viewer", "0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb", "viewer"},
	{"admin", "0xd1220a0cf47c7b9be7a2e6ba89f429762e7b9adb", "admin"},
}

func main() {
	skipTokens := flag.Bool("no-tokens", false, "do not print demo JWTs")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	if cfg.DBAutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate database: %v", err)
			panic(err)
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}
	defer redisClient.Close()

	ctx := context.Background()
	rates := usecase.NewRateUseCase(ledgerCache.NewRateStore(redisClient, cfg.RateTTL), cfg.ReferenceCurrency, log)
	for _, r := range demoRates {
		rate, err := rates.SetRate(ctx, r.currency, "", r.usdPrice)
		if err != nil {
			log.Error("Failed to set %s rate: %v", r.currency, err)
			panic(err)
		}
		log.Info("Rate %s: %s per USD (valid for %s)", rate.Currency, rate.Rate, cfg.RateTTL)
	}

	creator := wallet.Checksum(demoUsers[0].address)
	if err := seedPosts(ctx, db, creator, log); err != nil {
		log.Error("Failed to seed posts: %v", err)
		panic(err)
	}

	if !*skipTokens {
		jwtService := jwt.NewService(cfg.JWTSecret)
		for _, u := range demoUsers {
			token, err := jwtService.GenerateToken(wallet.Checksum(u.address), u.role)
			if err != nil {
				log.Error("Failed to sign token for %s: %v", u.name, err)
				continue
			}
			log.Info("%s (%s): Bearer %s", u.name, wallet.Checksum(u.address), token)
		}
	}

	log.Info("Ledger seeded successfully!")
}

func seedPosts(ctx context.Context, db *gorm.DB, creatorID string, log *logger.Logger) error {
	posts := usecase.NewPostUseCase(persistent.NewPostRepository(db), log)
	buyout := entity.USD(5)
	maxInvestors := 10
	commentFee := entity.Cents(10)

	inputs := []usecase.PublishPostInput{
		{
			Title:                   "Early access: protocol deep dive",
			Description:             "Buy out a seat to earn from every later unlock.",
			PriceUSD:                entity.USD(1),
			BuyoutPriceUSD:          &buyout,
			MaxInvestors:            &maxInvestors,
			InvestorRevenueSharePct: 50,
			CommentsLocked:          true,
			CommentFeeUSD:           &commentFee,
			AcceptedCurrencies:      []string{"USDC", "ETH", "SOL"},
		},
		{
			Title:              "Weekly market notes",
			PriceUSD:           entity.Cents(50),
			AcceptedCurrencies: []string{"USDC"},
		},
		{
			Title:  "Welcome post",
			IsFree: true,
		},
	}

	for _, in := range inputs {
		var count int64
		if err := db.WithContext(ctx).Model(&model.PostModel{}).
			Where("creator_id = ? AND title = ?", creatorID, in.Title).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Info("Post %q already exists, skipping", in.Title)
			continue
		}

		post, err := posts.PublishPost(ctx, creatorID, in)
		if err != nil {
			return fmt.Errorf("failed to publish %q: %w", in.Title, err)
		}
		log.Info("Created post %s: %s", post.ID, post.Title)
	}
	return nil
}
