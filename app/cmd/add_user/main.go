package main

import (
	"flag"
	"fmt"

	"github.com/Shinokawa/TentalManager/app/config"
	"github.com/Shinokawa/TentalManager/app/database"
	"github.com/Shinokawa/TentalManager/app/models"
)

func main() {
	email := flag.String("email", "", "user email")
	password := flag.String("password", "", "user password")
	firstName := flag.String("first-name", "", "user first name")
	lastName := flag.String("last-name", "", "user last name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email <email> -password <password> [-first-name <name>] [-last-name <name>]")
		return
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}

	// Create user
	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	}

	err := database.CreateUser(db, user)
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
