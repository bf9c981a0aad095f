package main

import (
	"database/sql"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/joho/godotenv"

	"github.com/yumyai/planktable/internal/util"
	"github.com/yumyai/planktable/logger"
	mydb "github.com/yumyai/planktable/pkg/db"
	"github.com/yumyai/planktable/pkg/model"
	"github.com/yumyai/planktable/pkg/pipeline"
	"github.com/yumyai/planktable/pkg/render"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "modernc.org/sqlite"
)

var (
	planktable_data string
)

func main() {

	// Establish logger
	VERSION := "0.1.0"
	LOG_LEVEL := zapcore.InfoLevel

	if err := logger.InitLogger(LOG_LEVEL); err != nil {
		panic(err)
	}

	// Try load env
	dotenvErr := godotenv.Load()

	if dotenvErr != nil {
		logger.Warn("No .env found, using local environment")
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	planktable_data = os.Getenv("PLANKTABLE_DATA")

	if planktable_data == "" {
		logger.Warn("No local environment (PLANKTABLE_DATA), using default value (./data)")
		planktable_data = "./data"
	}

	inputs_dir := path.Join(planktable_data, "inputs")
	outputs_dir := path.Join(planktable_data, "outputs")
	reference_sqlite := path.Join(planktable_data, "db/reference.db")
	reference_csv := path.Join(planktable_data, "db/reference.csv")

	logger.Info("Start:", zap.String("Version", VERSION))

	ref, err := loadReference(reference_sqlite, reference_csv)
	if err != nil {
		logger.Fatal("Cannot load reference table", zap.Error(err))
	}

	if !util.DirExists(inputs_dir) {
		logger.Fatal("Input folder does not exist", zap.String("dir", inputs_dir))
	}

	if !util.DirExists(outputs_dir) {
		if err := os.MkdirAll(outputs_dir, 0o755); err != nil {
			logger.Fatal("Cannot create output folder", zap.Error(err))
		}
	}

	csvs, err := util.ListInputCSVs(inputs_dir)
	if err != nil {
		logger.Fatal("Cannot list input folder", zap.Error(err))
	}

	if len(csvs) == 0 {
		logger.Warn("No input csv found", zap.String("dir", inputs_dir))
		return
	}

	// Each file fails or succeeds on its own; one bad input never stops
	// the rest of the batch.
	failed := 0
	for _, csvPath := range csvs {

		res, runErr := pipeline.Run(csvPath, ref)
		if runErr != nil {
			logger.Error("File failed", zap.String("file", csvPath), zap.Error(runErr))
			failed++
			continue
		}

		outName := fmt.Sprintf("%s-%s.xlsx", res.Source, time.Now().Format("20060102T150405"))
		outPath := path.Join(outputs_dir, outName)

		if err := render.WriteWorkbook(outPath, res.Views); err != nil {
			logger.Error("Cannot write workbook", zap.String("file", csvPath), zap.Error(err))
			failed++
			continue
		}

		logger.Info("Done",
			zap.String("file", res.Source),
			zap.String("run_id", res.RunID),
			zap.String("output", outPath),
			zap.Int("unclassified", res.Summary.Misses),
		)
	}

	logger.Info("Batch finished",
		zap.Int("processed", len(csvs)-failed),
		zap.Int("failed", failed),
	)
}

// Prefer the sqlite reference when present, fall back to the flat csv.
func loadReference(sqlitePath string, csvPath string) (*model.ReferenceTable, error) {

	if util.FileExists(sqlitePath) {
		sqldb, openErr := sql.Open("sqlite", sqlitePath)
		if openErr != nil {
			return nil, fmt.Errorf("open reference db: %w", openErr)
		}
		defer sqldb.Close()

		logger.Info("Loading reference from sqlite", zap.String("db", sqlitePath))
		return mydb.NewRefDB(sqldb).LoadReference()
	}

	if util.FileExists(csvPath) {
		logger.Info("Loading reference from csv", zap.String("csv", csvPath))
		return mydb.LoadReferenceCSV(csvPath)
	}

	return nil, fmt.Errorf("no reference table at %s or %s", sqlitePath, csvPath)
}
