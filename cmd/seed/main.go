package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// SeedCategoryData is one entry of a CATEGORIES_SOURCE document.
type SeedCategoryData struct {
	Name        string  `json:"categoryName"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	categories := service.DefaultCategories
	if source := os.Getenv("CATEGORIES_SOURCE"); source != "" {
		log.Printf("Loading categories from: %s", source)
		items, err := loadCategories(source)
		if err != nil {
			log.Fatalf("Failed to load categories: %v", err)
		}
		categories = toModels(items)
		log.Printf("Loaded %d categories", len(categories))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	categoryService := service.NewCategoryService(repository.NewCategoryRepository(gormDB), cacheClient)

	log.Println("Seeding categories into database...")
	created, updated, err := categoryService.SeedCategories(context.Background(), categories)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New categories created: %d", created)
	log.Printf("  - Existing categories updated: %d", updated)
}

// loadCategories reads a JSON array of categories from a URL or a local file.
func loadCategories(source string) ([]SeedCategoryData, error) {
	var body []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var items []SeedCategoryData
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return items, nil
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// toModels drops entries without a name; the service fills the default color.
func toModels(items []SeedCategoryData) []model.Category {
	out := make([]model.Category, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			log.Printf("Skipping category without a name")
			continue
		}
		out = append(out, model.Category{Name: name, Description: item.Description, Color: item.Color})
	}
	return out
}
