package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"healthdesk/internal/client/models"
)

// ListPrograms prints all health programs.
func (a *App) ListPrograms(ctx context.Context) error {
	list, err := a.programs.List(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(list) == 0 {
		fmt.Println("No programs defined.")
		return nil
	}
	for _, p := range list {
		fmt.Printf("%4d  [%s] %s  %s\n", p.ID, p.Code, p.Name, p.Description)
	}
	return nil
}

// AddProgram interactively creates a new health program.
func (a *App) AddProgram(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter program name", os.Stdout)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter program code", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Enter description (optional):", os.Stdout)
	if err != nil {
		return err
	}

	created, err := a.programs.Create(ctx, &models.HealthProgram{Name: name, Code: code, Description: description})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Created program [%s] %s (id %d)\n", created.Code, created.Name, created.ID)
	return nil
}

// Dashboard prints the aggregate counters for the system.
func (a *App) Dashboard(ctx context.Context) error {
	stats, err := a.dashboard.Stats(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Clients:            %d\n", stats.TotalClients)
	fmt.Printf("Programs:           %d\n", stats.TotalPrograms)
	fmt.Printf("Enrollments:        %d\n", stats.TotalEnrollments)
	fmt.Printf("Active enrollments: %d\n", stats.ActiveEnrollments)
	return nil
}
