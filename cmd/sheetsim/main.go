package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ValuesResponse mirrors the Sheets values.get payload shape.
type ValuesResponse struct {
	Range          string     `json:"range"`
	MajorDimension string     `json:"majorDimension"`
	Values         [][]string `json:"values"`
}

var headerRow = []string{
	"id", "created_time", "ad_id", "ad_name", "adset_id", "adset_name",
	"campaign_id", "campaign_name", "form_id", "form_name", "is_organic", "platform",
	"are_you_interested_in_this_trip?", "when_are_you_planning_to_travel?",
	"how_soon_do_you_want_to_book_your_holiday?", "do_you_need_assistance_with_flight_bookings?",
	"best_time_to_get_in_touch_with_you?", "preferred_language?", "travelers_(adults_&_kids)?",
	"full_name", "phone_number", "email", "city", "phone_number_verified", "lead_status",
}

var (
	firstNames = []string{"Asha", "Rohan", "Priya", "Vikram", "Neha", "Arjun", "Divya", "Kabir"}
	lastNames  = []string{"Rao", "Mehta", "Sharma", "Iyer", "Kapoor", "Nair", "Singh", "Das"}
	cities     = []string{"Mumbai", "Delhi", "Bengaluru", "Pune", "Chennai", "Hyderabad"}
	platforms  = []string{"fb", "ig"}
	months     = []string{"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december"}
	campaigns = []string{"Bali Summer", "Kashmir Winter", "Europe Explorer", "Thailand Getaway"}
)

// SheetBook generates a stable fake spreadsheet per sheet name. Rows
// are generated once at startup so repeated fetches see the same data,
// which is what the dedup path needs to be exercised against.
type SheetBook struct {
	sheets map[string][][]string
}

func NewSheetBook(sheetNames []string, rowsPerSheet int, blankRate float64, rng *rand.Rand) *SheetBook {
	book := &SheetBook{sheets: make(map[string][][]string)}
	for _, name := range sheetNames {
		rows := [][]string{headerRow}
		for i := 0; i < rowsPerSheet; i++ {
			if rng.Float64() < blankRate {
				rows = append(rows, []string{""})
				continue
			}
			rows = append(rows, fakeRow(rng))
		}
		book.sheets[name] = rows
	}
	return book
}

func fakeRow(rng *rand.Rand) []string {
	first := firstNames[rng.Intn(len(firstNames))]
	last := lastNames[rng.Intn(len(lastNames))]
	name := first + " " + last
	day := 1 + rng.Intn(28)
	month := months[rng.Intn(len(months))]
	phone := fmt.Sprintf("p:+91 9%09d", rng.Intn(1_000_000_000))
	campaign := campaigns[rng.Intn(len(campaigns))]

	return []string{
		uuid.NewString(),
		fmt.Sprintf("%d_%s_2025", day, month),
		uuid.NewString()[:12], "Lead Ad " + strconv.Itoa(rng.Intn(10)),
		uuid.NewString()[:12], "Ad Set " + strconv.Itoa(rng.Intn(5)),
		uuid.NewString()[:12], campaign,
		uuid.NewString()[:12], "Instant Form",
		"false", platforms[rng.Intn(len(platforms))],
		"Yes", month + " 2025", "Within a month", pick(rng, "Yes", "No"),
		"Morning", pick(rng, "English", "Hindi"), fmt.Sprintf("%d Adults", 1+rng.Intn(4)),
		name, phone,
		strings.ToLower(first) + "." + strings.ToLower(last) + "@example.com",
		cities[rng.Intn(len(cities))],
		pick(rng, "verified", "unverified"), "open",
	}
}

func pick(rng *rand.Rand, options ...string) string {
	return options[rng.Intn(len(options))]
}

type Handler struct {
	book *SheetBook
}

func NewHandler(book *SheetBook) *Handler {
	return &Handler{book: book}
}

// GetValues serves GET /v4/spreadsheets/:id/values/:range the way the
// real API does: the range parameter is "SheetName!A1:AA".
func (h *Handler) GetValues(c *gin.Context) {
	rangeParam := c.Param("range")

	sheetName := rangeParam
	if i := strings.Index(rangeParam, "!"); i >= 0 {
		sheetName = rangeParam[:i]
	}

	rows, ok := h.book.sheets[sheetName]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    http.StatusBadRequest,
				"message": "Unable to parse range: " + rangeParam,
			},
		})
		return
	}

	log.Info().
		Str("spreadsheet_id", c.Param("id")).
		Str("sheet", sheetName).
		Int("rows", len(rows)).
		Msg("Serving sheet values")

	c.JSON(http.StatusOK, ValuesResponse{
		Range:          rangeParam,
		MajorDimension: "ROWS",
		Values:         rows,
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"sheets": len(h.book.sheets),
	})
}

func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	router.GET("/v4/spreadsheets/:id/values/:range", handler.GetValues)
	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8090")
	sheetNames := strings.Split(getEnv("SHEET_NAMES", "Sheet1"), ",")
	rowsPerSheet := getEnvInt("ROWS_PER_SHEET", 50)
	blankRate := getEnvFloat("BLANK_ROW_RATE", 0.1)
	seed := getEnvInt("SEED", int(time.Now().UnixNano()))

	log.Info().
		Str("port", port).
		Strs("sheets", sheetNames).
		Int("rows_per_sheet", rowsPerSheet).
		Float64("blank_row_rate", blankRate).
		Msg("Starting Sheets simulator")

	rng := rand.New(rand.NewSource(int64(seed)))
	book := NewSheetBook(sheetNames, rowsPerSheet, blankRate, rng)
	handler := NewHandler(book)
	router := SetupRouter(handler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var f float64
		if _, err := fmt.Sscanf(value, "%f", &f); err == nil {
			return f
		}
	}
	return defaultValue
}
