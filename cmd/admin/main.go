package main

import (
	"fmt"
	"log"
	"os"

	"civicgrid/backend/internal/allocation"
	"civicgrid/backend/internal/models"
	"civicgrid/backend/internal/scope"
	"civicgrid/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for the CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "verify-staff":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin verify-staff <user_id>")
			os.Exit(1)
		}
		if err := verifyStaff(storageSvc, os.Args[2]); err != nil {
			log.Fatalf("Error verifying staff: %v", err)
		}
		fmt.Printf("Staff %s has been verified.\n", os.Args[2])
	case "allocate":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin allocate <state> <district>")
			os.Exit(1)
		}
		result, err := allocateDistrict(storageSvc, os.Args[2], os.Args[3])
		if err != nil {
			log.Fatalf("Error allocating complaints: %v", err)
		}
		fmt.Printf("Allocated %d complaints, %d failed.\n", result.AllocatedCount, result.FailedCount)
		for _, f := range result.Failures {
			fmt.Printf("  %s: %s\n", f.ComplaintID, f.Reason)
		}
	case "stats":
		if err := printStats(storageSvc); err != nil {
			log.Fatalf("Error reading stats: %v", err)
		}
	case "delete-user":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin delete-user <user_id>")
			os.Exit(1)
		}
		if err := deleteUser(storageSvc, os.Args[2]); err != nil {
			log.Fatalf("Error deleting user: %v", err)
		}
		fmt.Printf("User %s and their complaints have been deleted.\n", os.Args[2])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func verifyStaff(s storage.Storage, userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleStaff {
		return fmt.Errorf("user %s is not staff (role: %s)", userID, user.Role)
	}
	user.Verified = true
	return s.SaveUser(user)
}

// allocateDistrict runs the same batch engine the HTTP surface uses, acting
// as a synthetic admin of the given district.
func allocateDistrict(s storage.Storage, state, district string) (allocation.BatchResult, error) {
	admin := models.Identity{
		SubjectID: "ops-cli",
		Role:      models.RoleAdmin,
		State:     state,
		District:  district,
	}

	pending, _, err := s.ListComplaints(models.ListFilter{
		Status:      models.StatusPending,
		Category:    models.FilterAll,
		Page:        1,
		Limit:       50,
		OldestFirst: true,
	}, scope.Predicate{State: state, District: district})
	if err != nil {
		return allocation.BatchResult{}, err
	}

	engine := allocation.NewEngine(s, s)
	return engine.AutoAllocateAll(pending, admin), nil
}

func printStats(s storage.Storage) error {
	counts, err := s.CountComplaintsByStatus(scope.Predicate{})
	if err != nil {
		return err
	}
	var total int64
	for _, status := range models.AllStatuses {
		fmt.Printf("%-12s %d\n", status, counts[status])
		total += counts[status]
	}
	fmt.Printf("%-12s %d\n", "total", total)
	return nil
}

func deleteUser(s storage.Storage, userID string) error {
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}
	return s.DeleteUserCascade(userID)
}
