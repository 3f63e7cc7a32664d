package config

import (
	"fmt"
	"os"
	"strings"
)

// D1Credentials identifies a remote Cloudflare D1 database for migration tooling.
type D1Credentials struct {
	AccountID  string
	DatabaseID string
	Token      string
}

// LoadD1Credentials reads CLOUDFLARE_ACCOUNT_ID, CLOUDFLARE_DATABASE_ID and
// CLOUDFLARE_D1_TOKEN. When CLOUDFLARE_DATABASE_ID is unset, fallbackDatabaseID
// (typically the selected environment's database_id) is used. All three values
// are required.
func LoadD1Credentials(fallbackDatabaseID string) (*D1Credentials, error) {
	creds := &D1Credentials{
		AccountID:  os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		DatabaseID: os.Getenv("CLOUDFLARE_DATABASE_ID"),
		Token:      os.Getenv("CLOUDFLARE_D1_TOKEN"),
	}
	if creds.DatabaseID == "" {
		creds.DatabaseID = fallbackDatabaseID
	}

	var missing []string
	if creds.AccountID == "" {
		missing = append(missing, "CLOUDFLARE_ACCOUNT_ID")
	}
	if creds.DatabaseID == "" {
		missing = append(missing, "CLOUDFLARE_DATABASE_ID")
	}
	if creds.Token == "" {
		missing = append(missing, "CLOUDFLARE_D1_TOKEN")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return creds, nil
}
