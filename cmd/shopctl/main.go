package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Kariqs/decorshop/initializers"
	"github.com/Kariqs/decorshop/logger"
	"github.com/Kariqs/decorshop/models"
	"github.com/Kariqs/decorshop/repository"
	"github.com/Kariqs/decorshop/services"
	"go.uber.org/zap"
)

const usage = "expected 'seed-products' or 'create-admin' subcommand"

var seedProducts = []models.Product{
	{Name: "مبل هفت رنگ", Price: 200, Category: models.CategorySofa, ImageURL: "/static/images/7ColorSofa.svg"},
	{Name: "میز هفت رنگ", Price: 300, Category: models.CategoryDesk, ImageURL: "/static/images/7ColorDesk.svg"},
	{Name: "چراغ", Price: 400, Category: models.CategoryLamp, ImageURL: "/static/images/lamp.svg"},
	{Name: "مبل شیش رنگ", Price: 4000, Category: models.CategorySofa, ImageURL: "/static/images/6ColorSofa.svg"},
	{Name: "میز شیش رنگ", Price: 6000, Category: models.CategoryDesk, ImageURL: "/static/images/6ColorDesk.svg"},
	{Name: "چراغ شب خواب", Price: 8000, Category: models.CategoryLamp, ImageURL: "/static/images/nightLamp.svg"},
}

func main() {
	createAdminCmd := flag.NewFlagSet("create-admin", flag.ExitOnError)
	username := createAdminCmd.String("username", "", "Username for the new admin")
	password := createAdminCmd.String("password", "", "Password for the new admin")
	email := createAdminCmd.String("email", "", "Email for the new admin")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	envErr := initializers.LoadEnv()
	logger.Initialize(os.Getenv("APP_ENV"))
	defer logger.Log.Sync()
	if envErr != nil {
		logger.Log.Warn("Failed to load .env file", zap.Error(envErr))
	}

	switch os.Args[1] {
	case "seed-products":
		repos := connect()
		defer initializers.CloseDB()
		seed(repos)
	case "create-admin":
		createAdminCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" || *email == "" {
			fmt.Println("username, password and email are required")
			createAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		repos := connect()
		defer initializers.CloseDB()
		createAdmin(repos, models.RegisterData{
			Username:        *username,
			Password:        *password,
			ConfirmPassword: *password,
			Email:           *email,
		})
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func connect() *repository.Repositories {
	repos, err := initializers.ConnectToDB(initializers.LoadConfig())
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := initializers.SyncDatabase(); err != nil {
		logger.Log.Fatal("Failed to sync database", zap.Error(err))
	}
	return repos
}

func seed(repos *repository.Repositories) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	catalog := services.NewCatalogService(repos.Products, nil)
	added, err := catalog.Seed(ctx, seedProducts)
	if err != nil {
		logger.Log.Fatal("Failed to seed products", zap.Error(err))
	}
	fmt.Printf("Seeded %d of %d products.\n", added, len(seedProducts))
}

func createAdmin(repos *repository.Repositories, data models.RegisterData) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	auth := services.NewAuthService(repos.Users)
	if _, err := auth.CreateUser(ctx, data, models.RoleAdmin); err != nil {
		if msg := services.UserMessage(err); msg != "" {
			fmt.Println(msg)
			os.Exit(1)
		}
		logger.Log.Fatal("Failed to create admin", zap.Error(err))
	}
	fmt.Printf("Admin '%s' created successfully.\n", data.Username)
}
