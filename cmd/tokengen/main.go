// Package main provides a CLI tool for generating test tokens and content
// hashes for the Haven API. Tokens minted here use the dev signing key and
// will NOT work in production.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/blake2b"

	jwttoken "haven/internal/jwt_token"
	"haven/pkg/domain"
)

const (
	// Dev signing key - matches config.go when JWT_SIGNING_KEY is not set
	devSigningKey = "dev-secret-key-change-in-production"

	defaultIssuer   = "http://localhost:8080"
	defaultAudience = "haven-client"
	defaultTokenTTL = 15 * time.Minute
)

type tokenOutput struct {
	Token     string `json:"token"`
	Principal string `json:"principal"`
	ExpiresIn string `json:"expires_in"`
	Usage     string `json:"usage"`
}

func main() {
	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenPrincipal := tokenCmd.String("principal", "", "Principal to mint the token for (required)")
	tokenKey := tokenCmd.String("key", devSigningKey, "JWT signing key")
	tokenTTL := tokenCmd.Duration("ttl", defaultTokenTTL, "Token time-to-live")
	tokenJSON := tokenCmd.Bool("json", false, "Output as JSON")

	hashCmd := flag.NewFlagSet("hash", flag.ExitOnError)
	hashInput := hashCmd.String("input", "", "Content to hash (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "token":
		tokenCmd.Parse(os.Args[2:])
		generateToken(*tokenPrincipal, *tokenKey, *tokenTTL, *tokenJSON)
	case "hash":
		hashCmd.Parse(os.Args[2:])
		generateHash(*hashInput)
	default:
		printUsage()
		os.Exit(1)
	}
}

func generateToken(principal, key string, ttl time.Duration, asJSON bool) {
	if principal == "" {
		fmt.Fprintln(os.Stderr, "error: -principal is required")
		os.Exit(1)
	}

	svc := jwttoken.NewJWTService(key, defaultIssuer, defaultAudience, ttl)
	token, err := svc.GenerateToken(domain.Principal(principal))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if asJSON {
		out := tokenOutput{
			Token:     token,
			Principal: principal,
			ExpiresIn: ttl.String(),
			Usage:     fmt.Sprintf("curl -H 'Authorization: Bearer %s' ...", token),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
		return
	}

	fmt.Println(token)
}

// generateHash prints the blake2b-256 digest of the input in the hex format
// the proof and credential endpoints expect.
func generateHash(input string) {
	if input == "" {
		fmt.Fprintln(os.Stderr, "error: -input is required")
		os.Exit(1)
	}
	sum := blake2b.Sum256([]byte(input))
	fmt.Println(hex.EncodeToString(sum[:]))
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: tokengen <command> [flags]

Commands:
  token   Mint a signed bearer token for a principal
  hash    Compute the blake2b-256 content hash for proof/credential payloads

Examples:
  tokengen token -principal refugee-1
  tokengen token -principal unhcr-field-office -ttl 1h -json
  tokengen hash -input 'attestation:secondary-education:refugee-1'`)
}
