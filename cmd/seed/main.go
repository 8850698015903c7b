package main

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"firesafe/internal/config"
	"firesafe/internal/db"
	"firesafe/internal/model"
	"firesafe/internal/repository"
)

const (
	adminEmail    = "admin@yanginguvenlik.com"
	adminPassword = "admin123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := seedProducts(ctx, productRepo); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Println("Seed completed")
	log.Printf("Admin account: %s / %s", adminEmail, adminPassword)
}

func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	if _, err := repo.FindByEmail(ctx, adminEmail); err == nil {
		log.Println("Admin user already exists, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
	if err != nil {
		return err
	}

	return repo.Create(ctx, &model.User{
		Email:        adminEmail,
		PasswordHash: string(hash),
		Name:         "Admin User",
		Phone:        "+90 532 000 0000",
		IsAdmin:      true,
	})
}

func seedProducts(ctx context.Context, repo repository.ProductRepository) error {
	existing, err := repo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Products already present (%d), skipping", len(existing))
		return nil
	}

	products := []model.Product{
		{
			Name:        "6 kg Kuru Kimyevi Tozlu Yangın Söndürücü",
			Category:    "Yangın Söndürücüler",
			Price:       decimal.NewFromFloat(850.00),
			Description: "ABC tipi kuru kimyevi tozlu, TSE belgeli, duvar askısı dahil.",
			Specs:       []string{"6 kg", "ABC kuru kimyevi toz", "TSE EN 3-7"},
			InStock:     true,
		},
		{
			Name:        "Optik Duman Dedektörü",
			Category:    "Dedektörler",
			Price:       decimal.NewFromFloat(320.00),
			Description: "9V pilli bağımsız optik duman dedektörü, test butonlu.",
			Specs:       []string{"9V pil", "85 dB alarm", "EN 14604"},
			InStock:     true,
		},
		{
			Name:        "Yangın Battaniyesi 120x180",
			Category:    "Yangın Battaniyeleri",
			Price:       decimal.NewFromFloat(180.00),
			Description: "Cam elyaf yangın battaniyesi, mutfak ve atölye kullanımı.",
			Specs:       []string{"120x180 cm", "Cam elyaf", "EN 1869"},
			InStock:     true,
		},
		{
			Name:        "Acil Çıkış Yönlendirme Armatürü",
			Category:    "Acil Aydınlatma",
			Price:       decimal.NewFromFloat(450.00),
			Description: "LED acil çıkış armatürü, 3 saat kesintisiz aydınlatma.",
			Specs:       []string{"LED", "3 saat batarya", "Çift yüzlü"},
			InStock:     true,
		},
		{
			Name:        "Yangın Hortumu 2\" 20 m",
			Category:    "Hortum ve Ekipman",
			Price:       decimal.NewFromFloat(1250.00),
			Description: "20 metre yassı yangın hortumu, rekor takımı dahil.",
			Specs:       []string{"2 inç", "20 m", "16 bar çalışma basıncı"},
			InStock:     true,
		},
	}

	for i := range products {
		if err := repo.Create(ctx, &products[i]); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d products", len(products))
	return nil
}
