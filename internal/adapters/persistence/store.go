// Package persistence implements the repository ports on SQLite through gorm.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-roulette/internal/platform/config"
	"github.com/jsamuelsen/quote-roulette/internal/ports"
)

var (
	_ ports.QuoteRepository       = (*QuoteRepository)(nil)
	_ ports.ViewHistoryRepository = (*ViewHistoryRepository)(nil)
	_ ports.ReactionRepository    = (*ReactionRepository)(nil)
	_ ports.UserRepository        = (*UserRepository)(nil)
	_ ports.SessionRepository     = (*SessionRepository)(nil)
	_ ports.HealthChecker         = (*Store)(nil)
)

// filePragmas are appended to plain file DSNs. WAL lets readers proceed
// during the short write transactions of RecordView.
const filePragmas = "_busy_timeout=5000&_journal_mode=WAL"

// Store owns the gorm handle and reports its health.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database described by cfg. File DSNs get their
// parent directory created. In-memory databases are limited to a single
// connection so every caller sees the same data.
func Open(cfg *config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	dsn := cfg.DSN
	inMemory := strings.Contains(dsn, "mode=memory") || dsn == ":memory:"

	if !inMemory {
		path := strings.TrimPrefix(strings.SplitN(dsn, "?", 2)[0], "file:")
		if dir := filepath.Dir(path); dir != "." && dir != "/" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %q: %w", dir, err)
			}
		}

		if !strings.Contains(dsn, "?") {
			dsn += "?" + filePragmas
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         newGormLogger(logger, cfg),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if err := db.Use(tracingPlugin{}); err != nil {
		return nil, fmt.Errorf("registering tracing plugin: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql handle: %w", err)
	}

	if inMemory {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return &Store{db: db}, nil
}

// Migrate creates or updates every table and index.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&quoteModel{},
		&viewHistoryModel{},
		&reactionModel{},
		&userModel{},
		&sessionModel{},
	)
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	return s.backfillFolded(ctx)
}

// backfillFolded fills the folded columns of quotes created before they existed.
func (s *Store) backfillFolded(ctx context.Context) error {
	var stale []quoteModel
	if err := s.db.WithContext(ctx).Where("text_folded = ''").Find(&stale).Error; err != nil {
		return fmt.Errorf("finding quotes to fold: %w", err)
	}

	for _, m := range stale {
		err := s.db.WithContext(ctx).Model(&quoteModel{}).Where("id = ?", m.ID).
			Updates(map[string]any{"text_folded": fold(m.Text), "source_folded": fold(m.Source)}).Error
		if err != nil {
			return fmt.Errorf("folding quote %d: %w", m.ID, err)
		}
	}

	return nil
}

// DB exposes the gorm handle for repository construction.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the underlying connections.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "sqlite"
}

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
