package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/pkg/cache"
	"github.com/elnathantransportes-ai/troca/pkg/config"
	"github.com/elnathantransportes-ai/troca/pkg/database"
	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/pkg/models"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
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

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing, stale caches may linger)", err)
		redisClient = nil
	}

	if err := seedDatabase(db, redisClient, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, redisClient *redis.Client, log *logger.Logger) error {
	testUsers := []struct {
		email    string
		name     string
		city     string
		state    string
		role     models.UserRole
		plan     models.UserPlan
		password string
	}{
		{"admin@troca.app", "Admin Troca", "Sao Paulo", "SP", models.RoleAdmin, models.PlanPremium, "admin123"},
		{"maria@test.com", "Maria Silva", "Campinas", "SP", models.RoleUser, models.PlanPremium, "password123"},
		{"joao@test.com", "Joao Souza", "Curitiba", "PR", models.RoleUser, models.PlanFree, "password123"},
		{"ana@test.com", "Ana Lima", "Campinas", "SP", models.RoleUser, models.PlanFree, "password123"},
		{"caio@test.com", "Caio Rocha", "Recife", "PE", models.RoleUser, models.PlanFree, "password123"},
	}

	userIDs := make([]string, 0, len(testUsers))

	for i, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &models.User{
			Email:           userData.email,
			Name:            userData.name,
			Password:        string(hashedPassword),
			City:            userData.city,
			State:           userData.state,
			Whatsapp:        fmt.Sprintf("119999900%02d", i),
			Role:            userData.role,
			Plan:            userData.plan,
			AccountStatus:   models.AccountActive,
			DocumentStatus:  models.DocumentVerified,
			Reputation:      10 * (len(testUsers) - i),
			TradesCompleted: i,
		}

		var existing models.User
		result := db.Where("email = ?", user.Email).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Email)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Email, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Name, user.Email)
		userIDs = append(userIDs, user.ID)
	}

	if len(userIDs) < 3 {
		return fmt.Errorf("not enough seed users to create listings")
	}

	listings := []models.Listing{
		{
			OwnerID: userIDs[1], OwnerName: "Maria Silva", OwnerRegion: "Campinas - SP",
			Title: "Bicicleta aro 29", Description: "Shimano 21 marchas, pouco uso",
			TradeInterest: "videogame ou notebook", Value: 800,
			Type: models.ListingTrade, Category: "esporte", Condition: models.ConditionUsed,
			Status: models.ListingActive, IsHighlight: true, Likes: 12, Rating: 4.5, Views: 230,
		},
		{
			OwnerID: userIDs[2], OwnerName: "Joao Souza", OwnerRegion: "Curitiba - PR",
			Title: "Violao eletrico", Description: "Cordas novas, acompanha capa",
			TradeInterest: "bicicleta", Value: 450,
			Type: models.ListingBoth, Category: "musica", Condition: models.ConditionUsed,
			Status: models.ListingActive, Likes: 5, Rating: 4.0, Views: 98,
		},
		{
			OwnerID: userIDs[3], OwnerName: "Ana Lima", OwnerRegion: "Campinas - SP",
			Title: "Console de videogame", Description: "Na caixa, dois controles",
			Value: 1200, Type: models.ListingSell, Category: "games",
			Condition: models.ConditionNew, Status: models.ListingActive, Likes: 20, Rating: 4.8, Views: 510,
		},
		{
			OwnerID: userIDs[3], OwnerName: "Ana Lima", OwnerRegion: "Campinas - SP",
			Title: "Cadeira de escritorio", Description: "Aguardando revisao",
			Value: 300, Type: models.ListingSell, Category: "moveis",
			Condition: models.ConditionUsed, Status: models.ListingPending,
		},
	}

	listingIDs := make([]string, 0, len(listings))
	for i := range listings {
		listing := listings[i]

		var existing models.Listing
		result := db.Where("owner_id = ? AND title = ?", listing.OwnerID, listing.Title).First(&existing)
		if result.Error == nil {
			log.Info("Listing %q already exists, skipping", listing.Title)
			listingIDs = append(listingIDs, existing.ID)
			continue
		}

		if err := db.Create(&listing).Error; err != nil {
			log.Error("Failed to create listing %q: %v", listing.Title, err)
			continue
		}

		log.Info("Created listing: %s", listing.Title)
		listingIDs = append(listingIDs, listing.ID)
	}

	if len(listingIDs) > 0 {
		seedProposal(db, listingIDs[0], userIDs[1], userIDs[2], log)
	}

	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Del(ctx, "troca:feed:candidates").Err(); err != nil {
			log.Error("Failed to invalidate feed cache: %v", err)
		}
	}

	return nil
}

func seedProposal(db *gorm.DB, listingID, ownerID, bidderID string, log *logger.Logger) {
	var existing models.Proposal
	result := db.Where("listing_id = ? AND bidder_id = ?", listingID, bidderID).First(&existing)
	if result.Error == nil {
		log.Info("Proposal already exists, skipping")
		return
	}

	proposal := &models.Proposal{
		ListingID:    listingID,
		ListingTitle: "Bicicleta aro 29",
		OwnerID:      ownerID,
		BidderID:     bidderID,
		BidderName:   "Joao Souza",
		Message:      "Troco pelo meu violao com volta de 200",
		OfferValue:   200,
		OfferItems:   "violao eletrico",
		Status:       models.ProposalOpen,
	}
	if err := db.Create(proposal).Error; err != nil {
		log.Error("Failed to create proposal: %v", err)
		return
	}

	messages := []models.ChatMessage{
		{ProposalID: proposal.ID, SenderID: bidderID, Text: "Oi! O violao tem capa?", Type: models.MessageText},
		{ProposalID: proposal.ID, SenderID: ownerID, Text: "Tem sim, acompanha afinador tambem", Type: models.MessageText},
	}
	for i := range messages {
		if err := db.Create(&messages[i]).Error; err != nil {
			log.Error("Failed to create chat message: %v", err)
		}
	}

	log.Info("Created sample proposal with chat history")
}
