package catalog

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medcare/logger"
	drugModel "medcare/models/drug"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// Every pooled connection to :memory: is its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&drugModel.Drug{}, &drugModel.DrugPrice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctl := NewCatalogController(db, logger.NewAsyncLogger(db))
	app := fiber.New()
	app.Put("/drugs/:drug_id/price", ctl.UpdatePrice)
	return app, db
}

func putPrice(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()

	req := httptest.NewRequest("PUT", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestUpdatePriceUpserts(t *testing.T) {
	app, db := newTestApp(t)

	d := drugModel.Drug{
		DrugID:   5,
		Name:     "Paracetamol",
		ExpDate:  time.Now().AddDate(1, 0, 0),
		Usage:    "as directed",
		Quantity: 10,
	}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("seed drug: %v", err)
	}

	if code := putPrice(t, app, "/drugs/5/price", `{"price": 12.5}`); code != fiber.StatusOK {
		t.Fatalf("first set: status = %d, want 200", code)
	}
	if code := putPrice(t, app, "/drugs/5/price", `{"price": 14}`); code != fiber.StatusOK {
		t.Fatalf("second set: status = %d, want 200", code)
	}

	var prices []drugModel.DrugPrice
	if err := db.Where("drug_id = ?", 5).Find(&prices).Error; err != nil {
		t.Fatalf("fetch prices: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("price rows = %d, want a single upserted row", len(prices))
	}
	if prices[0].PricePerUnit != 14 {
		t.Errorf("price = %v, want 14", prices[0].PricePerUnit)
	}
}

func TestUpdatePriceUnknownDrug(t *testing.T) {
	app, _ := newTestApp(t)

	if code := putPrice(t, app, "/drugs/99/price", `{"price": 5}`); code != fiber.StatusNotFound {
		t.Errorf("unknown drug: status = %d, want 404", code)
	}
}

func TestUpdatePriceRejectsNegative(t *testing.T) {
	app, _ := newTestApp(t)

	if code := putPrice(t, app, "/drugs/5/price", `{"price": -1}`); code != fiber.StatusBadRequest {
		t.Errorf("negative price: status = %d, want 400", code)
	}
}
