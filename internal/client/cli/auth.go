package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"healthdesk/internal/client/api"
	"healthdesk/internal/shared"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login walks the two-step authentication flow.
//
// Step 1 prompts for username and password and submits them. On acceptance
// the server dispatches a one-time password and the advisory message is shown.
// Step 2 prompts for the OTP code; a rejected code keeps the challenge open
// for resubmission, while an empty code abandons the attempt and returns the
// user to the top of the flow. On success the session is established and a
// greeting is printed.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Println("Already logged in.")
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	msg, err := a.auth.SubmitCredentials(ctx, userName, string(password))
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrAuthenticationRejected):
			log.Printf("Login unsuccessful: %s", err.Error())
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("%s", err.Error())
		default:
			log.Printf("Login failed: %s", err.Error())
		}
		return err
	}
	fmt.Println(msg)

	for {
		code, err := getSimpleText(a.reader, "Enter OTP code (empty to cancel)", os.Stdout)
		if err != nil {
			return err
		}
		if code == "" {
			a.auth.Abandon()
			fmt.Println("Login cancelled.")
			return nil
		}

		id, err := a.auth.SubmitOTP(ctx, code)
		if err != nil {
			if errors.Is(err, shared.ErrOTPRejected) {
				log.Printf("OTP rejected: %s", err.Error())
				continue
			}
			if errors.Is(err, shared.ErrNoPendingLogin) {
				log.Printf("No login in progress, start over with 'login'")
				return err
			}
			log.Printf("Verification failed: %s", err.Error())
			return err
		}

		fmt.Printf("Welcome, %s!\n", id.Username)
		return nil
	}
}

// Logout tears the session down and wipes the locally persisted record.
// Logging out while not logged in is a no-op.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("Logout failed: %s", err.Error())
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
