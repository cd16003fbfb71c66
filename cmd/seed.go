package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/cost-manager/internal/expense"
	"github.com/frahmantamala/cost-manager/internal/user"
	"github.com/spf13/cobra"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initGorm(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"report_cache", "expenses", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		sample := user.User{ID: 123123, FirstName: "Mosh", LastName: "Israeli", Birthday: "1990-01-10"}
		var exists int64
		db.Model(&user.User{}).Where("id = ?", sample.ID).Count(&exists)
		if exists == 0 {
			if err := db.Create(&sample).Error; err != nil {
				log.Fatalf("failed to seed user: %v", err)
			}
			fmt.Println("Seeded user:", sample.ID)
		}

		expenses := []expense.Expense{
			{UserID: sample.ID, Sum: 8, Category: "food", Description: "milk", CreatedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
			{UserID: sample.ID, Sum: 500, Category: "housing", Description: "rent share", CreatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
			{UserID: sample.ID, Sum: 3, Category: "food", Description: "bread", CreatedAt: time.Date(2023, 12, 12, 0, 0, 0, 0, time.UTC)},
		}
		for _, exp := range expenses {
			exp := exp
			if err := db.Create(&exp).Error; err != nil {
				log.Fatalf("failed to seed expense: %v", err)
			}
		}
		fmt.Printf("Seeded %d expenses for user %d\n", len(expenses), sample.ID)
	},
}
