package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"tra-stations/config"
	"tra-stations/projection"
	"tra-stations/services"
	"tra-stations/storage"
	"tra-stations/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	logger := utils.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("=== TRA station dataset build starting ===")
	logger.Info("Inputs: %s + %s | key: %s | geometry: %s",
		cfg.PassengerCSV, cfg.PointCSV, cfg.JoinKey, cfg.PointField)

	transformer, err := projection.NewTransformer(config.SourceCRS, config.TargetCRS)
	if err != nil {
		logger.Error("Failed to set up %s → %s transform: %v", config.SourceCRS, config.TargetCRS, err)
		return 1
	}
	defer projection.Close(transformer)

	writers := []storage.RecordWriter{
		storage.NewCSVWriter(cfg.CSVOutputPath, cfg.Delimiter(), cfg.CSVBOM),
		storage.NewJSONWriter(cfg.JSONOutputPath),
	}
	if cfg.XLSXOutputPath != "" {
		writers = append(writers, storage.NewXLSXWriter(cfg.XLSXOutputPath))
	}

	var pgWriter *storage.PostgresWriter
	if cfg.PostgresEnabled {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
		pgWriter, err = storage.NewPostgresWriter(context.Background(), cfg.DSN(), cfg.JoinKey, cfg.PostgresTimeout, retry)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			return 1
		}
		writers = append(writers, pgWriter)
	}
	defer func() {
		for _, w := range writers {
			if err := w.Close(); err != nil {
				logger.Warn("Closing %s output: %v", w.Name(), err)
			}
		}
	}()

	textColumns := []string{cfg.JoinKey, cfg.PointField}
	pipeline := services.NewPipeline(
		services.PipelineConfig{
			PassengerPath: cfg.PassengerCSV,
			PointPath:     cfg.PointCSV,
			JoinKey:       cfg.JoinKey,
			PointField:    cfg.PointField,
		},
		storage.NewCSVReader(storage.ReadOptions{
			Delimiter:    cfg.Delimiter(),
			InferNumeric: cfg.InferNumeric,
			TextColumns:  textColumns,
		}),
		services.NewJoiner(logger, cfg.SortByKey),
		services.NewGeometryExtractor(logger),
		services.NewReprojector(transformer, logger),
		writers,
		logger,
	)

	res, err := pipeline.Run()
	if err != nil {
		logger.Error("Pipeline failed: %v", err)
		return 1
	}

	if pgWriter != nil {
		stored, err := pgWriter.FetchAll(context.Background())
		if err != nil {
			logger.Warn("Could not read back stations from PostgreSQL: %v", err)
		} else {
			logger.Info("PostgreSQL now holds %d stations (table: stations)", stored.Len())
		}
	}

	summary := services.NewSummaryService(logger, cfg.JoinKey)
	summary.Print(summary.Generate(res.Records, cfg.RidershipField))

	fmt.Printf("  Done. CSV → %s | JSON → %s\n\n", cfg.CSVOutputPath, cfg.JSONOutputPath)
	return 0
}
