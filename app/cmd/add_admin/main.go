package main

import (
	"flag"
	"fmt"

	"festrack/app/config"
	"festrack/app/database"
	"festrack/app/models"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first", "Festival", "first name")
	lastName := flag.String("last", "Admin", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_admin -email admin@example.com -password secret")
		return
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}

	if err := database.Seed(db); err != nil {
		fmt.Printf("Error seeding roles: %v\n", err)
		return
	}

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
		IsActive:  true,
	}

	if err := database.CreateUser(db, user, models.RoleAdmin); err != nil {
		fmt.Printf("Error creating admin: %v\n", err)
		return
	}

	fmt.Printf("Admin created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
