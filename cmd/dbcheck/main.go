package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pachgroup/pachsite/internal/config"
	"github.com/pachgroup/pachsite/internal/db"
	"github.com/pachgroup/pachsite/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	tables = []string{"properties", "deals", "testimonials"}

	// columns older schemas may lack, by table
	optionalColumns = map[string][]string{
		"properties": {"image_urls"},
		"deals":      {"image_urls", "price_rub"},
	}
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "path for the optional .env file with secrets")
	timeout := flag.Duration("timeout", 15*time.Second, "overall check timeout")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("failed to load env file [%s]: %s", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}
	if !cfg.StoreConfigured() {
		log.Fatalln("postgres host not set in config, nothing to check")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("POSTGRES_PASSWORD"),
		SSLMode:    cfg.PostgresSSLMode,
		MaxConns:   2,
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		fmt.Printf("connection failed: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("connected to [%s:%s/%s]\n", cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDBName)

	caps, err := store.Introspect(ctx, pool, tables...)
	if err != nil {
		fmt.Printf("schema introspection failed: %s\n", err)
		os.Exit(1)
	}

	failed := false
	for _, table := range tables {
		if !caps.HasTable(table) {
			fmt.Printf("  %-13s missing\n", table)
			failed = true
			continue
		}

		count, err := countRows(ctx, pool, table)
		if err != nil {
			fmt.Printf("  %-13s count failed: %s\n", table, err)
			failed = true
			continue
		}
		fmt.Printf("  %-13s %d rows\n", table, count)

		for _, column := range optionalColumns[table] {
			state := "present"
			if !caps.HasColumn(table, column) {
				state = "absent (legacy schema, writes fall back)"
			}
			fmt.Printf("    %-11s %s\n", column, state)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func countRows(ctx context.Context, pool *pgxpool.Pool, table string) (int64, error) {
	var count int64
	query := "SELECT count(*) FROM " + pgx.Identifier{table}.Sanitize()
	if err := pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
