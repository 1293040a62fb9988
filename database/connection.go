package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the Postgres connection the rest of the process shares. On
// Cloud Run the Cloud SQL proxy exposes the instance as a Unix socket under
// /cloudsql; everywhere else we dial localhost over TCP.
func Connect() {
	user := os.Getenv("DB_USER")
	if user == "" {
		user = "postgres"
	}
	password := os.Getenv("DB_PASS")
	name := os.Getenv("DB_NAME")
	if name == "" {
		name = "grochain"
	}

	var dsn string
	if instance := os.Getenv("INSTANCE_CONNECTION_NAME"); instance != "" {
		dsn = fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			instance, user, password, name)
		log.Printf("🔌 Using Cloud SQL socket for instance %s", instance)
	} else {
		dsn = fmt.Sprintf("host=localhost port=5432 user=%s password=%s dbname=%s sslmode=disable",
			user, password, name)
		log.Println("🔌 Using local PostgreSQL on :5432")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Failed to open database connection: %v", err)
		panic(err)
	}
	DB = db

	log.Println("✅ Database connected successfully!")
}
