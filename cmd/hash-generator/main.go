// Command hash-generator prints bcrypt hashes for seeding user records
// directly into a database.
//
// Usage:
//
//	hash-generator [-cost 10] password...
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/question-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password...")
		os.Exit(2)
	}

	if err := printHashes(os.Stdout, auth.NewBcryptHasher(*cost), flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printHashes writes one "password<TAB>hash" line per password.
func printHashes(w io.Writer, hasher auth.PasswordHasher, passwords []string) error {
	for i, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password #%d: %w", i+1, err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", password, hash); err != nil {
			return err
		}
	}
	return nil
}
