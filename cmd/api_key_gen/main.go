package main

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

// Mints an API key for a service caller (payment gateway, import tooling).
// Only the SHA-256 hash is stored; the plaintext is printed once.
func main() {
	label := flag.String("label", "", "human-readable key label")
	flag.Parse()

	if *label == "" {
		log.Fatal("usage: api_key_gen -label <name>")
	}

	host := envOr("PG_HOST", "localhost")
	port := envOr("PG_PORT", "5432")
	user := envOr("PG_USER", "warchest")
	dbname := envOr("PG_DB", "warchest")
	password := os.Getenv("PG_PASSWORD")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Fatalf("generate key: %v", err)
	}
	plaintext := hex.EncodeToString(raw)

	sum := sha256.Sum256([]byte(plaintext))
	keyHash := hex.EncodeToString(sum[:])

	var id string
	err = db.QueryRow(
		`INSERT INTO api_keys (key_hash, status, label) VALUES ($1, true, $2) RETURNING id`,
		keyHash, *label,
	).Scan(&id)
	if err != nil {
		log.Fatalf("insert api key: %v", err)
	}

	fmt.Println("Key ID: ", id)
	fmt.Println("API Key:", plaintext)
	fmt.Println("Store it now; only the hash is kept.")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
