// Command admin-cred provisions the operator account: it hashes the
// password, optionally generates a TOTP secret with a QR code for the
// authenticator app, and upserts the row when a database DSN is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
	pgrepo "github.com/SodiqOgundairo/condolence-backend/internal/repo/postgres"
)

func main() {
	_ = godotenv.Load()

	var (
		username = flag.String("username", "", "admin username")
		password = flag.String("password", "", "admin password to hash")
		withTOTP = flag.Bool("totp", false, "generate a TOTP secret")
		qrPath   = flag.String("qr", "", "write the TOTP enrollment QR code PNG to this path")
		issuer   = flag.String("issuer", "condolence-site", "TOTP issuer shown in the authenticator app")
		dsn      = flag.String("dsn", os.Getenv("POSTGRES_DSN"), "postgres DSN; when set the account is upserted")
	)
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: admin-cred -username <name> -password <secret> [-totp] [-qr out.png] [-dsn <postgres dsn>]")
		os.Exit(2)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fatal("hash password: %v", err)
	}

	user := model.AdminUser{
		Username:     *username,
		PasswordHash: string(hash),
	}

	if *withTOTP {
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      *issuer,
			AccountName: *username,
		})
		if err != nil {
			fatal("generate totp secret: %v", err)
		}
		user.TOTPSecret = key.Secret()
		fmt.Printf("totp_secret: %s\n", key.Secret())

		if *qrPath != "" {
			if err := qrcode.WriteFile(key.URL(), qrcode.Medium, 256, *qrPath); err != nil {
				fatal("write totp qr code: %v", err)
			}
			fmt.Printf("totp_qr: %s\n", *qrPath)
		}
	}

	fmt.Printf("username: %s\npassword_hash: %s\n", user.Username, user.PasswordHash)

	if *dsn == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgrepo.NewPool(ctx, *dsn)
	if err != nil {
		fatal("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := pgrepo.NewAdminUserRepo(pool).Upsert(ctx, user); err != nil {
		fatal("upsert admin user: %v", err)
	}
	fmt.Println("admin user saved")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
