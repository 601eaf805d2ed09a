package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"marketdash/internal/handlers"
	"marketdash/internal/logger"
	"marketdash/internal/marketdata"
	"marketdash/internal/middleware"
	"marketdash/internal/models"
	"marketdash/internal/services"
	"marketdash/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// quotePrices is the canned universe served by the stub quote endpoint.
var quotePrices = map[string][2]float64{
	"AAPL": {150.00, 153.00},
	"MSFT": {300.00, 297.00},
	"KO":   {60.00, 60.00},
}

// startQuoteServer serves chart JSON for the symbols in quotePrices. Unknown
// symbols get a chart error.
func startQuoteServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")

		prices, ok := quotePrices[symbol]
		if !ok {
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
			return
		}
		fmt.Fprintf(w, `{"chart":{"result":[{
			"meta":{"symbol":%q,"longName":"%s Corp","regularMarketPrice":%.2f,"chartPreviousClose":%.2f,"marketCap":1500000000},
			"timestamp":[1700000000,1700086400],
			"indicators":{"quote":[{"close":[%.2f,%.2f],"volume":[1000000,2000000]}]}
		}],"error":null}}`, symbol, symbol, prices[1], prices[0], prices[0], prices[1])
	}))
	t.Cleanup(server.Close)
	return server
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.PortfolioItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database and a stub quote endpoint.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	quoteServer := startQuoteServer(t)
	quoteClient := marketdata.NewClient(http.DefaultClient, quoteServer.URL, time.Minute)

	universe := []string{"AAPL", "MSFT", "KO", "MISSING"}
	sectors := map[string][]string{
		"Technology":       {"AAPL", "MSFT"},
		"Consumer Staples": {"KO"},
	}

	// Services
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db, quoteClient)
	screenerService := services.NewScreenerService(quoteClient, universe, sectors)
	marketService := services.NewMarketService(quoteClient, nil)
	newsService := services.NewNewsService(nil)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	screenerHandler := handlers.NewScreenerHandler(screenerService)
	marketHandler := handlers.NewMarketHandler(marketService)
	newsHandler := handlers.NewNewsHandler(newsService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	v1.GET("/stocks/:symbol", marketHandler.StockDetail)
	v1.GET("/stocks/:symbol/history", marketHandler.History)
	v1.GET("/indices", marketHandler.Indices)
	v1.GET("/news", newsHandler.List)
	v1.GET("/screener", screenerHandler.Screen)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.List)
	portfolio.POST("", portfolioHandler.Create)
	portfolio.DELETE("/:id", portfolioHandler.Delete)
	portfolio.GET("/summary", portfolioHandler.Summary)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONList parses the response body into a list.
func parseJSONList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON list: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}
