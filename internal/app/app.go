package app

import (
	"context"
	"database/sql"

	"go-hrms/internal/shared/config"
	"go-hrms/internal/shared/connection"
	"go-hrms/internal/shared/migration"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the stores, migrates the schema, registers every module
// on router and optionally seeds demo data. The returned func releases the
// connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	log := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if err := migration.Up(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.ConnectRetries)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		log.Info("redis connection established")
	} else {
		log.Info("redis disabled, department cache off")
	}

	mods := registerModules(router, cfg, sqlDB, gormDB, rdb)

	if cfg.SeedDemoData {
		if err := seedDemoData(context.Background(), mods); err != nil {
			closeAll(sqlDB, rdb)
			return nil, err
		}
	}

	return func() { closeAll(sqlDB, rdb) }, nil
}

func closeAll(db *sql.DB, rdb *redis.Client) {
	if rdb != nil {
		_ = rdb.Close()
	}
	_ = db.Close()
}
