package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
)

func main() {
	email := flag.String("email", "", "member email to embed as the token subject")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HS256 signing secret")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *email == "" {
		log.Fatal("email is required")
	}
	if *secret == "" {
		log.Fatal("secret is required (flag or JWT_SECRET)")
	}

	token, err := auth.SignToken(*email, *secret, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Println(token)
}
