// scripts/create_approver.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Abhi9av-Git/LeaveEase/config"
	"github.com/Abhi9av-Git/LeaveEase/database"
	"github.com/Abhi9av-Git/LeaveEase/models"
)

func main() {
	role := flag.String("role", "counsellor", "counsellor | hod | joint_director | warden")
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "login email")
	mobile := flag.String("mobile", "", "10-digit mobile")
	department := flag.String("department", "", "department (counsellor/hod)")
	password := flag.String("password", "changeme", "initial password")
	flag.Parse()

	if !models.Role(*role).IsApprover() {
		log.Fatalf("invalid role %q", *role)
	}
	if *name == "" || *email == "" {
		log.Fatal("both -name and -email are required")
	}

	cfg := config.Load()
	database.Connect(cfg)

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.Approver
	if err := database.DB.Where("role = ? AND email = ?", *role, *email).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query approvers: %v", err)
		}
	} else {
		fmt.Printf("approver already exists: %s <%s>\n", *role, *email)
		os.Exit(0)
	}

	a := models.Approver{
		Name:       *name,
		Email:      *email,
		Password:   string(hashed),
		Mobile:     *mobile,
		Role:       models.Role(*role),
		Department: *department,
		IsActive:   true,
	}
	if err := database.DB.Create(&a).Error; err != nil {
		log.Fatalf("failed to insert approver: %v", err)
	}

	fmt.Println("approver created")
	fmt.Println("  Role: ", a.Role)
	fmt.Println("  Email:", a.Email)
	fmt.Println("  Password:", *password, "(plain, remember to change later!)")
}
