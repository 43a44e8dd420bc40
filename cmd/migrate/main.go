package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realty-api/internal/config"
	dbpkg "github.com/BruksfildServices01/realty-api/internal/db"
	"github.com/BruksfildServices01/realty-api/internal/models"
	"github.com/BruksfildServices01/realty-api/internal/validators"
)

// migrate applies the schema and, when asked, creates the first superuser.
func main() {
	email := flag.String("superuser-email", "", "email of the superuser to create")
	username := flag.String("superuser-username", "admin", "username of the superuser")
	password := flag.String("superuser-password", os.Getenv("SUPERUSER_PASSWORD"), "password of the superuser")
	flag.Parse()

	log := logrus.New()
	cfg := config.Load()

	db := dbpkg.NewDB(cfg, log)
	log.Info("schema migrated")

	if *email == "" {
		return
	}
	if len(*password) < 8 {
		log.Fatal("superuser password must be at least 8 characters long")
	}

	created, err := ensureSuperuser(db, validators.NormalizeEmail(*email), strings.TrimSpace(*username), *password)
	if err != nil {
		log.Fatalf("create superuser: %v", err)
	}

	entry := log.WithField("email", *email)
	if created {
		entry.Info("superuser created")
	} else {
		entry.Info("superuser already exists")
	}
}

func ensureSuperuser(db *gorm.DB, email, username, password string) (bool, error) {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
		IsSuperuser:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}
