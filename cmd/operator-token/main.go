// Command operator-token generates an operator bearer token and the bcrypt
// hash to configure the API with (OPERATOR_TOKEN_HASH).
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	token := flag.String("token", "", "Token to hash (default: generate a random one)")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")

	flag.Parse()

	value := *token
	if value == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
			os.Exit(1)
		}
		value = base64.RawURLEncoding.EncodeToString(raw)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(value), *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Operator Token Generated")
	fmt.Println("========================")
	fmt.Println()
	fmt.Println("Token (give to the operator):")
	fmt.Println(value)
	fmt.Println()
	fmt.Println("Hash (set as OPERATOR_TOKEN_HASH):")
	fmt.Println(string(hash))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/moderation/queue\n", value)
}
