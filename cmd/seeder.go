package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/frahmantamala/helpdesk-inventory/internal/auth"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"stock_usage", "issue_stock_items", "issue_comments", "issues", "purchase_requests", "stock_items", "custom_users"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password123"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		accounts := []struct {
			Email       string
			Name        string
			Role        string
			Permissions []auth.Permission
			Department  string
		}{
			{
				Email: "admin@helpdesk.local",
				Name:  "Admin",
				Role:  string(auth.RoleAdmin),
				// admins bypass permission checks, stored set stays empty
				Permissions: nil,
				Department:  "IT",
			},
			{
				Email: "tech@helpdesk.local",
				Name:  "Technician",
				Role:  string(auth.RoleEmployee),
				Permissions: []auth.Permission{
					auth.PermCreateIssue,
					auth.PermEditIssue,
					auth.PermAssignIssue,
					auth.PermResolveIssue,
					auth.PermCreateStock,
					auth.PermEditStock,
					auth.PermManageStockTransactions,
					auth.PermCreatePurchaseRequest,
					auth.PermViewReports,
				},
				Department: "IT Support",
			},
			{
				Email:       "user@helpdesk.local",
				Name:        "Regular User",
				Role:        string(auth.RoleUser),
				Permissions: []auth.Permission{auth.PermCreateIssue, auth.PermCreatePurchaseRequest},
				Department:  "Finance",
			},
		}

		for _, acc := range accounts {
			if err := seedUser(db, acc.Email, acc.Name, acc.Role, acc.Department, string(hash), acc.Permissions); err != nil {
				log.Fatalf("failed to seed %s: %v", acc.Email, err)
			}
		}

		items := []struct {
			Name     string
			Category string
			Quantity int64
			Location string
		}{
			{"Laptop Charger 65W", "accessories", 12, "Storage A"},
			{"HDMI Cable 2m", "cables", 30, "Storage A"},
			{"Wireless Mouse", "peripherals", 15, "Storage B"},
			{"24-inch Monitor", "displays", 6, "Storage B"},
		}

		for _, item := range items {
			if err := seedStockItem(db, item.Name, item.Category, item.Quantity, item.Location); err != nil {
				log.Fatalf("failed to seed stock item %s: %v", item.Name, err)
			}
		}

		fmt.Println("Seeding complete. All accounts use password:", password)
	},
}

func seedUser(db *sqlx.DB, email, name, role, department, hash string, perms []auth.Permission) error {
	var exists int
	if err := db.QueryRow("SELECT 1 FROM custom_users WHERE email = $1", email).Scan(&exists); err == nil {
		fmt.Println("user already exists:", email)
		return nil
	}

	tags := make([]string, 0, len(perms))
	for _, p := range perms {
		tags = append(tags, string(p))
	}
	permsJSON, err := json.Marshal(tags)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO custom_users (name, email, password_hash, role, permissions, department, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`,
		name, email, hash, role, string(permsJSON), department)
	if err != nil {
		return err
	}

	fmt.Println("seeded user:", email, "role:", role)
	return nil
}

func seedStockItem(db *sqlx.DB, name, category string, quantity int64, location string) error {
	var exists int
	if err := db.QueryRow("SELECT 1 FROM stock_items WHERE name = $1", name).Scan(&exists); err == nil {
		fmt.Println("stock item already exists:", name)
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO stock_items (name, category, quantity, location, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'available', now(), now())`,
		name, category, quantity, location)
	if err != nil {
		return err
	}

	fmt.Println("seeded stock item:", name)
	return nil
}
