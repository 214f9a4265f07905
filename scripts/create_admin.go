// scripts/create_admin.go
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/auth"
	"github.com/PasinduAnjana/Studentscope-sub000/config"
	"github.com/PasinduAnjana/Studentscope-sub000/database"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	username := os.Getenv("SEED_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "123"
	}

	var existing models.User
	err = db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		fmt.Println("admin user already exists with username:", username)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to query users: %v", err)
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		log.Fatalf("failed to generate salt: %v", err)
	}
	hash, err := auth.HashPassword(password, salt)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	u := models.User{
		Username:     username,
		PasswordHash: hash,
		Salt:         salt,
		Role:         models.RoleAdmin,
		Name:         "Administrator",
	}
	if err := db.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created successfully")
	fmt.Println("  username:", username)
	fmt.Println("  password:", password, "(plain, remember to change it)")
}
