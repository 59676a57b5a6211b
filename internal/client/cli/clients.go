package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"healthdesk/internal/client/models"
)

// argOrPrompt returns the first positional argument or prompts for one.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, os.Stdout)
}

// ListClients lists registered clients. With arguments it performs a
// server-side search using the joined arguments as the query.
func (a *App) ListClients(ctx context.Context, args []string) error {
	var (
		list []models.Client
		err  error
	)
	if len(args) > 0 {
		list, err = a.clients.Search(ctx, strings.Join(args, " "), 0)
	} else {
		list, err = a.clients.List(ctx)
	}
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(list) == 0 {
		fmt.Println("No clients found.")
		return nil
	}
	for _, c := range list {
		fmt.Printf("%s  %-30s %s  %s  %s\n", c.ID, c.FullName(), c.Gender, c.DateOfBirth, c.PhoneNumber)
	}
	fmt.Printf("%d client(s)\n", len(list))
	return nil
}

// ShowProfile displays a single client together with their enrollments.
func (a *App) ShowProfile(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter client id")
	if err != nil {
		return err
	}

	p, err := a.clients.Profile(ctx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println(p.FullName())
	fmt.Printf("  ID:            %s\n", p.ID)
	fmt.Printf("  Date of birth: %s\n", p.DateOfBirth)
	fmt.Printf("  Gender:        %s\n", p.Gender)
	fmt.Printf("  Email:         %s\n", p.Email)
	fmt.Printf("  Phone:         %s\n", p.PhoneNumber)
	fmt.Printf("  Address:       %s\n", p.Address)
	if p.NationalID != "" {
		fmt.Printf("  National ID:   %s\n", p.NationalID)
	}
	if p.BloodType != "" {
		fmt.Printf("  Blood type:    %s\n", p.BloodType)
	}
	if p.Allergies != "" {
		fmt.Printf("  Allergies:     %s\n", p.Allergies)
	}
	if p.ChronicConditions != "" {
		fmt.Printf("  Conditions:    %s\n", p.ChronicConditions)
	}

	if len(p.Enrollments) == 0 {
		fmt.Println("No program enrollments.")
		return nil
	}
	fmt.Println("Enrollments:")
	for _, e := range p.Enrollments {
		status := "inactive"
		if e.IsActive {
			status = "active"
		}
		fmt.Printf("  [%s] %s since %s (%s)\n", e.ProgramCode, e.ProgramName, e.EnrollmentDate, status)
		if e.Notes != "" {
			fmt.Printf("        %s\n", e.Notes)
		}
	}
	return nil
}

// RegisterClient interactively collects client details and registers them.
func (a *App) RegisterClient(ctx context.Context) error {
	c, err := a.inputClient(models.Client{})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	created, err := a.clients.Register(ctx, c)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Registered %s (%s)\n", created.FullName(), created.ID)
	return nil
}

// UpdateClient fetches a client, prompts for each field with the current
// value as the default, and submits the changes. Leaving a field empty
// keeps its current value.
func (a *App) UpdateClient(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter client id")
	if err != nil {
		return err
	}

	current, err := a.clients.Get(ctx, id)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	c, err := a.inputClient(*current)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	updated, err := a.clients.Update(ctx, id, c)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Updated %s\n", updated.FullName())
	return nil
}

// DeleteClient removes a client after an explicit confirmation.
func (a *App) DeleteClient(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter client id")
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, "Delete this client and all their enrollments? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.clients.Delete(ctx, id); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// Enroll adds a client to a health program. Available programs are listed
// first so the user can pick an id.
func (a *App) Enroll(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter client id")
	if err != nil {
		return err
	}

	if err := a.ListPrograms(ctx); err != nil {
		return err
	}

	programText, err := getSimpleText(a.reader, "Enter program id", os.Stdout)
	if err != nil {
		return err
	}
	programID, err := strconv.ParseInt(programText, 10, 64)
	if err != nil {
		log.Printf("Invalid program id: %s", programText)
		return err
	}

	notes, err := GetMultiline(a.reader, "Enter notes (optional):", os.Stdout)
	if err != nil {
		return err
	}

	e, err := a.clients.Enroll(ctx, id, programID, notes)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Enrolled in %s on %s\n", e.ProgramName, e.EnrollmentDate)
	return nil
}

// inputClient prompts for every client field. When 'current' carries values
// they are offered as defaults and an empty answer keeps them.
func (a *App) inputClient(current models.Client) (*models.Client, error) {
	c := current

	fields := []struct {
		label string
		dest  *string
	}{
		{"first name", &c.FirstName},
		{"last name", &c.LastName},
		{"date of birth (YYYY-MM-DD)", &c.DateOfBirth},
		{"gender (M/F/O)", &c.Gender},
		{"email", &c.Email},
		{"phone number", &c.PhoneNumber},
		{"address", &c.Address},
		{"national id", &c.NationalID},
		{"blood type", &c.BloodType},
		{"allergies", &c.Allergies},
		{"chronic conditions", &c.ChronicConditions},
	}

	for _, f := range fields {
		prompt := "Enter " + f.label
		if *f.dest != "" {
			prompt = fmt.Sprintf("Enter %s [%s]", f.label, *f.dest)
		}
		v, err := getSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return nil, err
		}
		if v != "" {
			*f.dest = v
		}
	}

	if c.Gender != "" {
		c.Gender = strings.ToUpper(c.Gender)
	}
	return &c, nil
}
