package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Override pins a site's employer to a chosen register entity.
type Override struct {
	Site          string `json:"site"`
	CompanyNumber string `json:"company_number"`
	CompanyName   string `json:"company_name,omitempty"`
	UpdatedAt     string `json:"updated_at"`
}

// GetOverride returns the pin for a site, or ok=false if none is stored.
func GetOverride(ctx context.Context, db *sql.DB, site string) (Override, bool, error) {
	site = normalizeSiteKey(site)
	if site == "" {
		return Override{}, false, nil
	}

	var o Override
	err := db.QueryRowContext(ctx,
		`SELECT site, company_number, company_name, updated_at FROM overrides WHERE site = ? LIMIT 1;`,
		site,
	).Scan(&o.Site, &o.CompanyNumber, &o.CompanyName, &o.UpdatedAt)

	if err == sql.ErrNoRows {
		return Override{}, false, nil
	}
	if err != nil {
		return Override{}, false, fmt.Errorf("get override: %w", err)
	}
	return o, true, nil
}

// PutOverride inserts or replaces the pin for a site and returns the stored row.
func PutOverride(ctx context.Context, db *sql.DB, site, companyNumber, companyName string) (Override, error) {
	site = normalizeSiteKey(site)
	companyNumber = strings.TrimSpace(companyNumber)
	if site == "" || companyNumber == "" {
		return Override{}, fmt.Errorf("put override: site and company_number are required")
	}

	o := Override{
		Site:          site,
		CompanyNumber: companyNumber,
		CompanyName:   strings.TrimSpace(companyName),
		UpdatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	_, err := db.ExecContext(ctx, `
INSERT INTO overrides(site, company_number, company_name, updated_at)
VALUES(?,?,?,?)
ON CONFLICT(site) DO UPDATE SET
  company_number = excluded.company_number,
  company_name = excluded.company_name,
  updated_at = excluded.updated_at;
`, o.Site, o.CompanyNumber, o.CompanyName, o.UpdatedAt)
	if err != nil {
		return Override{}, fmt.Errorf("put override: %w", err)
	}
	return o, nil
}

// DeleteOverride removes the pin for a site. Deleting a missing pin is a no-op.
func DeleteOverride(ctx context.Context, db *sql.DB, site string) (removed bool, err error) {
	site = normalizeSiteKey(site)
	if site == "" {
		return false, nil
	}

	res, err := db.ExecContext(ctx, `DELETE FROM overrides WHERE site = ?;`, site)
	if err != nil {
		return false, fmt.Errorf("delete override: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, nil
	}
	return n > 0, nil
}

// ListOverrides returns all pins ordered by site.
func ListOverrides(ctx context.Context, db *sql.DB) ([]Override, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT site, company_number, company_name, updated_at FROM overrides ORDER BY site;`)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	out := []Override{}
	for rows.Next() {
		var o Override
		if err := rows.Scan(&o.Site, &o.CompanyNumber, &o.CompanyName, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func normalizeSiteKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(s)
	return s
}
