package main

import (
	"fmt"
	"log"
	"os"

	"cleanspot/backend/internal/config"
	"cleanspot/backend/internal/models"
	"cleanspot/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "list-pending":
		area := ""
		if len(os.Args) > 2 {
			area = os.Args[2]
		}
		if err := listPending(storageSvc, area); err != nil {
			log.Fatalf("Error listing pending complaints: %v", err)
		}
	case "inspect":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin inspect <complaint_id>")
			os.Exit(1)
		}
		if err := inspectComplaint(storageSvc, os.Args[2]); err != nil {
			log.Fatalf("Error inspecting complaint: %v", err)
		}
	case "assign":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin assign <complaint_id> <worker_user_id>")
			os.Exit(1)
		}
		if err := assignComplaint(storageSvc, os.Args[2], os.Args[3]); err != nil {
			log.Fatalf("Error assigning complaint: %v", err)
		}
		fmt.Printf("Complaint %s has been assigned.\n", os.Args[2])
	case "reconcile-log":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin reconcile-log <complaint_id>")
			os.Exit(1)
		}
		if err := reconcileWorkLog(storageSvc, os.Args[2]); err != nil {
			log.Fatalf("Error reconciling work log: %v", err)
		}
		fmt.Printf("Work log entry written for complaint %s.\n", os.Args[2])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func listPending(s storage.Storage, area string) error {
	complaints, err := s.ListPendingInArea(area)
	if err != nil {
		return err
	}
	if len(complaints) == 0 {
		fmt.Println("No pending complaints.")
		return nil
	}
	for _, c := range complaints {
		fmt.Printf("%s  %-8s  %-20s  %s\n", c.ID, c.Urgency, c.Area, c.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func inspectComplaint(s storage.Storage, complaintID string) error {
	complaint, err := s.FindComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if complaint == nil {
		return fmt.Errorf("complaint %s not found", complaintID)
	}

	fmt.Printf("ID:          %s\n", complaint.ID)
	fmt.Printf("Area:        %s\n", complaint.Area)
	fmt.Printf("Status:      %s\n", complaint.Status)
	fmt.Printf("Urgency:     %s\n", complaint.Urgency)
	if complaint.AssignedTo != nil {
		fmt.Printf("Assigned to: %s\n", *complaint.AssignedTo)
	}
	if complaint.CleanlinessScore != nil {
		fmt.Printf("Score:       %.2f%%\n", *complaint.CleanlinessScore)
	}
	if complaint.ResolvedAt != nil {
		fmt.Printf("Resolved at: %s\n", complaint.ResolvedAt)
	}
	return nil
}

func assignComplaint(s storage.Storage, complaintID, workerUserID string) error {
	complaint, err := s.FindComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if complaint == nil {
		return fmt.Errorf("complaint %s not found", complaintID)
	}
	if complaint.Status == models.StatusCompleted {
		return fmt.Errorf("complaint %s is already completed", complaintID)
	}

	worker, err := s.FindWorkerByUserID(workerUserID)
	if err != nil {
		return err
	}
	if worker == nil {
		return fmt.Errorf("no employee profile for user %s", workerUserID)
	}

	complaint.Status = models.StatusAssigned
	complaint.AssignedTo = &worker.ID
	return s.SaveComplaint(complaint)
}

// reconcileWorkLog rebuilds the work log entry for a completed complaint from
// its terminal fields, for the case where the completion committed but the
// log append failed.
func reconcileWorkLog(s storage.Storage, complaintID string) error {
	complaint, err := s.FindComplaintByID(complaintID)
	if err != nil {
		return err
	}
	if complaint == nil {
		return fmt.Errorf("complaint %s not found", complaintID)
	}
	if complaint.Status != models.StatusCompleted || complaint.AssignedTo == nil || complaint.ResolvedAt == nil {
		return fmt.Errorf("complaint %s is not completed", complaintID)
	}

	entry := &models.WorkLogEntry{
		EmployeeID:       *complaint.AssignedTo,
		Description:      "Reconciled from complaint record",
		CompletedAt:      *complaint.ResolvedAt,
		CleanlinessScore: complaint.CleanlinessScore,
		ComplaintID:      &complaint.ID,
	}
	return s.AppendWorkLog(entry)
}
