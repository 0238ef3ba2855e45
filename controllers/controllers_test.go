package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-ordering/config"
	"github.com/yeremiapane/restaurant-ordering/database"
	"github.com/yeremiapane/restaurant-ordering/kds"
	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/router"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

const testSecret = "controllers-test-secret"

type testEnv struct {
	Router     *gin.Engine
	DB         *gorm.DB
	Restaurant *models.Restaurant
	Token      string
}

func testConfig() *config.Config {
	return &config.Config{
		CORSOrigin:           "*",
		JWTSecret:            testSecret,
		JWTTTL:               time.Hour,
		StatusPolicy:         services.StatusPolicyPermissive,
		ModifierOptionPolicy: services.OptionPolicyStrict,
		SearchLimit:          10,
		RateLimitPerSecond:   1000,
		LoginAttemptsPerMin:  100,
	}
}

func setupTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	restaurant, err := database.Seed(db, database.SeedOptions{AdminEmail: "admin@zenacham.com", AdminPassword: "admin123"})
	require.NoError(t, err)

	var admin models.Admin
	require.NoError(t, db.Where("restaurant_id = ?", restaurant.ID).First(&admin).Error)
	token, err := utils.GenerateToken([]byte(testSecret), admin.ID, restaurant.ID, time.Hour)
	require.NoError(t, err)

	return &testEnv{
		Router:     router.SetupRouter(db, cfg, kds.NewHub()),
		DB:         db,
		Restaurant: restaurant,
		Token:      token,
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, auth bool) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+e.Token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (e *testEnv) item(t *testing.T, name string) models.Item {
	t.Helper()
	var item models.Item
	require.NoError(t, e.DB.Preload("Modifiers.Options").Where("name = ?", name).First(&item).Error)
	return item
}

func optionID(t *testing.T, item models.Item, name string) uint {
	t.Helper()
	for _, m := range item.Modifiers {
		for _, o := range m.Options {
			if o.Name == name {
				return o.ID
			}
		}
	}
	t.Fatalf("option %s not found on %s", name, item.Name)
	return 0
}

func jsonID(obj map[string]interface{}) string {
	return fmt.Sprintf("%.0f", obj["id"].(float64))
}

func uintString(id uint) string {
	return fmt.Sprintf("%d", id)
}
