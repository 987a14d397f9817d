// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package db manages the shared GORM connection for the postgres
// credential store backend.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wso2/ai-agent-management-platform/api-proxy-service/config"
)

var gormDB *gorm.DB

// Init opens the database connection using the pgx stdlib connector and
// configures the GORM session and connection pool from cfg.
func Init(cfg *config.POSTGRESQL) error {
	connConfig, err := pgx.ParseConfig(fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	))
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}
	sqlDB := stdlib.OpenDB(*connConfig)

	dbc := cfg.DbConfigs
	if dbc.MaxIdleCount != nil {
		sqlDB.SetMaxIdleConns(int(*dbc.MaxIdleCount))
	}
	if dbc.MaxOpenCount != nil {
		sqlDB.SetMaxOpenConns(int(*dbc.MaxOpenCount))
	}
	if dbc.MaxIdleTimeSeconds != nil {
		sqlDB.SetConnMaxIdleTime(time.Duration(*dbc.MaxIdleTimeSeconds) * time.Second)
	}
	if dbc.MaxLifetimeSeconds != nil {
		sqlDB.SetConnMaxLifetime(time.Duration(*dbc.MaxLifetimeSeconds) * time.Second)
	}

	slowThreshold := time.Duration(dbc.SlowThresholdMilliseconds) * time.Millisecond
	gormDB, err = gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: dbc.SkipDefaultTransaction,
		Logger: gormlogger.New(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to open gorm connection: %w", err)
	}

	slog.Info("database connection established",
		slog.String("host", cfg.Host),
		slog.String("database", cfg.DBName))
	return nil
}

// DB returns the shared GORM handle bound to ctx. Init must have been
// called first.
func DB(ctx context.Context) *gorm.DB {
	return gormDB.WithContext(ctx)
}

// Close releases the underlying connection pool.
func Close() error {
	if gormDB == nil {
		return nil
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Healthy pings the database within the given timeout.
func Healthy(ctx context.Context, timeout time.Duration) error {
	if gormDB == nil {
		return fmt.Errorf("database is not initialized")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}
