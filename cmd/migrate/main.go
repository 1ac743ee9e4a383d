package main

import (
	"log"

	"festrack/app/config"
	"festrack/app/database"
)

func main() {
	log.Println("Running schema migrations...")

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatal("Seeding failed: ", err)
	}

	log.Println("Migrations completed successfully!")
}
