package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func main() {
	secret := os.Getenv("ANIVIEW_JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
	}
	subject := "dev-user"
	if len(os.Args) > 1 {
		subject = os.Args[1]
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "aniview",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Token for %q (valid 30 days):\n%s\n", subject, signed)
}
