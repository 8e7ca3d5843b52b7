package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/AVKharkova/foodgram/config"
	"github.com/AVKharkova/foodgram/internal/database"
	"github.com/AVKharkova/foodgram/internal/models"
)

var (
	ingredientsFile string
	tagsFile        string
)

func init() {
	seedCmd.Flags().StringVar(&ingredientsFile, "ingredients", "data/ingredients.json", "path to the ingredients fixture")
	seedCmd.Flags().StringVar(&tagsFile, "tags", "data/tags.json", "path to the tags fixture")
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the tag and ingredient reference catalog from JSON fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.New(cfg)
		if err != nil {
			return err
		}

		ingredients, err := seedIngredients(db, ingredientsFile)
		if err != nil {
			return err
		}
		tags, err := seedTags(db, tagsFile)
		if err != nil {
			return err
		}

		fmt.Printf("Seeded %d ingredients and %d tags.\n", ingredients, tags)
		return nil
	},
}

func seedIngredients(db *gorm.DB, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fixtures []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	created := 0
	for _, f := range fixtures {
		ingredient := models.Ingredient{Name: f.Name, MeasurementUnit: f.MeasurementUnit}
		result := db.Where("name = ? AND measurement_unit = ?", f.Name, f.MeasurementUnit).
			FirstOrCreate(&ingredient)
		if result.Error != nil {
			return created, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

func seedTags(db *gorm.DB, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fixtures []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	created := 0
	for _, f := range fixtures {
		tag := models.Tag{Name: f.Name, Slug: f.Slug}
		result := db.Where("slug = ?", f.Slug).FirstOrCreate(&tag)
		if result.Error != nil {
			return created, result.Error
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}
