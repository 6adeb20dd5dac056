package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dev-boi/lecture-server-go/internal/lecture"
	"github.com/dev-boi/lecture-server-go/pkg/config"
	"github.com/dev-boi/lecture-server-go/pkg/database"
	"github.com/dev-boi/lecture-server-go/pkg/logger"
	"github.com/dev-boi/lecture-server-go/pkg/types"
)

var sampleRecordedLectures = []lecture.RecordedLecture{
	{
		Title:      "Human Anatomy and Physiology - Complete Overview",
		Subject:    types.SubjectZoology,
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
		Views:      15420,
		UploadDate: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
	},
	{
		Title:        "Plant Kingdom Classification - Detailed Study",
		Subject:      types.SubjectBotany,
		YoutubeURL:   "https://youtu.be/dQw4w9WgXcQ",
		Views:        12850,
		UploadDate:   time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC),
		IsBookmarked: true,
	},
	{
		Title:      "Organic Chemistry - Reaction Mechanisms",
		Subject:    types.SubjectChemistry,
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
		Views:      18750,
		UploadDate: time.Date(2024, 12, 8, 0, 0, 0, 0, time.UTC),
	},
	{
		Title:        "Thermodynamics and Heat Transfer",
		Subject:      types.SubjectPhysics,
		YoutubeURL:   "https://youtu.be/dQw4w9WgXcQ",
		Views:        9680,
		UploadDate:   time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC),
		IsBookmarked: true,
	},
	{
		Title:      "Cell Biology and Molecular Biology",
		Subject:    types.SubjectZoology,
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
		Views:      14320,
		UploadDate: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
	},
}

func main() {
	reset := flag.Bool("reset", false, "drop and recreate the lecture tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		appLogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *reset {
		appLogger.Info("Dropping lecture tables")
		if err := db.Migrator().DropTable(&lecture.LiveLecture{}, &lecture.RecordedLecture{}); err != nil {
			appLogger.Error("Failed to drop tables", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := database.Migrate(db); err != nil {
		appLogger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var existing int64
	if err := db.Model(&lecture.RecordedLecture{}).Count(&existing).Error; err != nil {
		appLogger.Error("Failed to count recorded lectures", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if existing > 0 {
		appLogger.Info("Recorded lectures already present, skipping seed", slog.Int64("count", existing))
		return
	}

	if err := db.Create(&sampleRecordedLectures).Error; err != nil {
		appLogger.Error("Failed to seed recorded lectures", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Seeded %d recorded lectures\n", len(sampleRecordedLectures))
}
