package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/configs"
	candidateModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/candidates/model"
	categoryModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/categories/model"
	competitionModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/competitions/model"
	scoreModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/scoring/model"
	userModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL (Supabase)...")

	// Full DSN + statement_timeout. With PgBouncer keep PreferSimpleProtocol=true
	// and point the host/port at the pooler.
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=loa_tabulation&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	// Stay under the Supabase/PgBouncer connection limits.
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

// Migrate creates/updates every tabulation table plus the partial unique
// index that closes the submit-twice race on live score rows.
func Migrate() {
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&competitionModel.CompetitionModel{},
		&categoryModel.CategoryModel{},
		&categoryModel.CriteriaModel{},
		&candidateModel.CandidateModel{},
		&scoreModel.ScoreModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if err := DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_scores_live
		 ON scores (judge_id, candidate_id, criteria_id) WHERE NOT deleted`,
	).Error; err != nil {
		log.Printf("[WARN] live-score unique index: %v", err)
	}

	log.Println("✅ Migration complete.")
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
