// Command moneyctl runs maintenance and reporting tasks against the
// MoneyTrail database.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"moneytrail/configs"
	"moneytrail/internal/cache"
	"moneytrail/internal/infra"
	"moneytrail/internal/logger"
	"moneytrail/internal/repository"
	"moneytrail/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&migrateCmd{}, "database")
	commander.Register(&summaryCmd{}, "records")
	commander.Register(&exportCmd{}, "records")
	commander.Register(&tokenCmd{}, "auth")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// env is what every command that touches the database needs
type env struct {
	cfg *configs.Config
	log zerolog.Logger
	db  *pgxpool.Pool
}

func openEnv(ctx context.Context) (*env, error) {
	cfg := configs.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := infra.NewDatabase(ctx, cfg.Database.URL, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) Close() {
	e.db.Close()
}

// records builds an uncached record service; each command runs once
func (e *env) records() *usecase.RecordService {
	return usecase.NewRecordService(
		repository.NewFinancialRecordRepository(e.db),
		cache.NewRecordCache(0),
		e.cfg.Display.DefaultCurrency,
		e.log,
	)
}
