package todos

import (
	"context"
	"fmt"
	"io"

	gormlogger "gorm.io/gorm/logger"

	"github.com/xyz-asif/todoapp/internal/config"
	"github.com/xyz-asif/todoapp/internal/database"
	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

// Store is the connection behind a Repository
type Store interface {
	Ping(ctx context.Context) error
	io.Closer
}

// OpenRepository connects to the backend named by cfg.DBDriver and returns
// a ready repository together with its connection.
func OpenRepository(ctx context.Context, cfg *config.Config) (Repository, Store, error) {
	gormLevel := gormlogger.Warn
	if !cfg.IsProduction() {
		gormLevel = gormlogger.Info
	}

	switch cfg.DBDriver {
	case "sqlite":
		db, err := database.OpenSQLite(cfg.SQLitePath, gormLevel)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewSQLRepository(db.DB)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, db, nil

	case "mysql":
		db, err := database.OpenMySQL(cfg.MySQLDSN(), gormLevel)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewSQLRepository(db.DB)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, db, nil

	case "mongo":
		db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		repo, err := NewMongoRepository(ctx, db.Database)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, db, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownDB, cfg.DBDriver)
	}
}
