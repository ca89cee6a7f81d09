package catalog

import (
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/julianacmsantos/recipes-project/internal/model"
)

// recipeRow mirrors the recipes table in a SQLite catalog. Position is the
// explicit row ordering; the table carries the same logical schema as the
// CSV source.
type recipeRow struct {
	Position     int    `gorm:"column:position;primaryKey;autoIncrement:false"`
	ID           int64  `gorm:"column:id"`
	Title        string `gorm:"column:title"`
	Ingredients  string `gorm:"column:ingredients"`
	Instructions string `gorm:"column:instructions"`
	Link         string `gorm:"column:link"`
	NER          string `gorm:"column:ner"`
}

func (recipeRow) TableName() string { return "recipes" }

// LoadSQLite reads a catalog from a SQLite database file containing a
// recipes table, ordered by position.
func LoadSQLite(path string) (*Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}

	var rows []recipeRow
	if err := db.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	recipes := make([]model.Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = model.Recipe{
			ID:           row.ID,
			Title:        row.Title,
			Ingredients:  row.Ingredients,
			Instructions: row.Instructions,
			Link:         row.Link,
			NER:          row.NER,
		}
	}
	return fromRecipes(recipes), nil
}

// WriteSQLite creates a SQLite catalog at path from recipes, in position
// order. Used by tooling and tests to produce database catalogs.
func WriteSQLite(path string, recipes []model.Recipe) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("create catalog %s: %w", path, err)
	}

	if err := db.AutoMigrate(&recipeRow{}); err != nil {
		return fmt.Errorf("migrate catalog %s: %w", path, err)
	}

	rows := make([]recipeRow, len(recipes))
	for i, r := range recipes {
		rows[i] = recipeRow{
			Position:     i,
			ID:           r.ID,
			Title:        r.Title,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
			Link:         r.Link,
			NER:          r.NER,
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}
