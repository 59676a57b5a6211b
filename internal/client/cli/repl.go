package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dashboard(ctx context.Context) error
	ListClients(ctx context.Context, args []string) error
	ShowProfile(ctx context.Context, args []string) error
	RegisterClient(ctx context.Context) error
	UpdateClient(ctx context.Context, args []string) error
	DeleteClient(ctx context.Context, args []string) error
	Enroll(ctx context.Context, args []string) error
	ListPrograms(ctx context.Context) error
	AddProgram(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the HealthDesk CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help             — show available commands
//	  - login            — authenticate (password, then OTP)
//	  - exit | quit      — leave the program
//
//	Logged in:
//	  - help             — show available commands
//	  - dashboard        — show aggregate counters
//	  - clients [query]  — list clients, optionally filtered
//	  - client <id>      — show a client's profile with enrollments
//	  - register         — register a new client (interactive)
//	  - update <id>      — update a client (interactive)
//	  - delete <id>      — delete a client
//	  - enroll <id>      — enroll a client in a program
//	  - programs         — list health programs
//	  - addprogram       — create a health program (interactive)
//	  - logout           — log out
//	  - exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("hd> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, clients [query], client <id>, register, update <id>, delete <id>, enroll <id>, programs, addprogram, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "clients":
			_ = a.ListClients(ctx, args)

		case "client":
			_ = a.ShowProfile(ctx, args)

		case "register":
			_ = a.RegisterClient(ctx)

		case "update":
			_ = a.UpdateClient(ctx, args)

		case "delete":
			_ = a.DeleteClient(ctx, args)

		case "enroll":
			_ = a.Enroll(ctx, args)

		case "programs":
			_ = a.ListPrograms(ctx)

		case "addprogram":
			_ = a.AddProgram(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
