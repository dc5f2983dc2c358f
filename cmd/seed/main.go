// Package main provides a utility to seed test data for development.
package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/tendant/oauth2-store/internal/config"
	"github.com/tendant/oauth2-store/internal/docdb"
	"github.com/tendant/oauth2-store/internal/domain"
	"github.com/tendant/oauth2-store/internal/store/docstore"
)

func main() {
	keyOut := flag.String("key-out", "jwt-bearer-key.pem", "File to write the demo JWT-bearer private key to")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := docdb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer db.Close(ctx)

	storage := docstore.New(db, docstore.WithTables(cfg.Tables()))

	// Create test client
	secret := uuid.New().String()
	client := &domain.Client{
		ClientID:    "test-client",
		RedirectURI: "http://localhost:3000/callback http://localhost:8081/callback",
		GrantTypes:  []string{"authorization_code", "refresh_token"},
		Scope:       "openid profile email offline_access",
	}

	if err := storage.SetClientDetails(ctx, client, secret); err != nil {
		fmt.Printf("Client may already exist: %v\n", err)
	} else {
		fmt.Printf("Created client: %s (secret: %s)\n", client.ClientID, secret)
	}

	// Create public test client
	publicClient := &domain.Client{
		ClientID:    "test-public-client",
		RedirectURI: "http://localhost:3000/callback http://localhost:8081/callback",
		GrantTypes:  []string{"authorization_code", "refresh_token"},
		Scope:       "openid profile email offline_access",
	}

	if err := storage.SetClientDetails(ctx, publicClient, ""); err != nil {
		fmt.Printf("Public client may already exist: %v\n", err)
	} else {
		fmt.Printf("Created public client: %s\n", publicClient.ClientID)
	}

	// Create test user
	password := "password123"
	if err := storage.SetUser(ctx, "test@example.com", password, "read write"); err != nil {
		fmt.Printf("User may already exist: %v\n", err)
	} else {
		fmt.Printf("Created user: test@example.com (password: %s)\n", password)
	}

	// Create a JWT-bearer keypair for the test client
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		log.Fatalf("Failed to generate JWT-bearer keypair: %v", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		log.Fatalf("Failed to marshal public key: %v", err)
	}
	pubPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))

	if err := storage.SetClientKey(ctx, client.ClientID, "test@example.com", pubPEM); err != nil {
		fmt.Printf("Client key may already exist: %v\n", err)
	} else {
		privPEM := pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		})
		if err := os.WriteFile(*keyOut, privPEM, 0600); err != nil {
			log.Fatalf("Failed to write private key: %v", err)
		}
		fmt.Printf("Registered JWT-bearer public key for %s, private key in %s\n", client.ClientID, *keyOut)
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("\nTest with:")
	fmt.Println("  1. Start the admin server: go run ./cmd/admin")
	fmt.Println("  2. Fetch the client: curl http://localhost:8080/clients/test-client")

	os.Exit(0)
}
