// Command operator-token issues a bearer token for the chatbot admin routes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"HotelGolang/internal/entity"
	jwtPkg "HotelGolang/pkg/jwt"
	"HotelGolang/pkg/log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal(log.Fields{"error": err.Error()}, "Error loading .env file")
	}

	log.NewLogger()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "Failed to issue operator token")
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("operator-token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	id := fs.String("id", "", "operator id")
	email := fs.String("email", "", "operator email")
	role := fs.String("role", entity.OperatorRoleAnalyst, "operator role (admin or analyst)")
	ttl := fs.Duration("ttl", 12*time.Hour, "token lifetime")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" || *email == "" {
		return errors.New("-id and -email are required")
	}
	if *role != entity.OperatorRoleAdmin && *role != entity.OperatorRoleAnalyst {
		return fmt.Errorf("unknown role %q", *role)
	}
	if *ttl <= 0 {
		return errors.New("-ttl must be positive")
	}

	token, expiresAt, err := jwtPkg.SignOperator(entity.OperatorLoginData{
		ID:    *id,
		Email: *email,
		Role:  *role,
	}, *ttl)
	if err != nil {
		return err
	}

	log.Info(log.Fields{
		"operator_id": *id,
		"role":        *role,
		"expires_at":  time.Unix(expiresAt, 0).UTC().Format(time.RFC3339),
	}, "Issued operator token")

	_, err = fmt.Fprintln(out, token)
	return err
}
