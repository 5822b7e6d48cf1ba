package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang-migrate/migrate/v4"
	migratep "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jessevdk/go-flags"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/tipnet/midas/internal/storage"
	"github.com/tipnet/midas/internal/storage/postgres"
)

var opts = struct {
	Events             string `long:"events" env:"EVENTS" default:"events.jsonl" description:"path to exported events dump (json lines)"`
	Postgres           string `long:"postgres" env:"POSTGRES" default:"host=localhost port=5432 user=postgres password=root sslmode=disable" description:"postgres dsn"`
	PostgresMigrations string `long:"postgres.migrations" env:"POSTGRES_MIGRATIONS" default:"scripts/migrations/postgres" description:"postgres migrations directory"`
}{}

// record is one exported contract event. Amounts are minor-unit decimal
// strings.
type record struct {
	Kind         string `json:"kind"`
	TxHash       string `json:"tx_hash"`
	LogIndex     uint32 `json:"log_index"`
	PostID       uint64 `json:"post_id"`
	DelegationID uint64 `json:"delegation_id"`
	Creator      string `json:"creator"`
	Tipper       string `json:"tipper"`
	Content      string `json:"content"`
	Threshold    uint64 `json:"threshold"`
	Amount       string `json:"amount"`
	Timestamp    int64  `json:"timestamp"`
}

// Replays an events dump into the projection store. Used to resolve feed
// gaps: every apply is idempotent, so replaying an overlapping range is
// safe.
func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "backfill"
	parser.LongDescription = "Events dump to database importer"

	_, err := parser.Parse()

	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			parser.WriteHelp(os.Stdout)
			os.Exit(0)
		}
		logrus.WithError(err).Fatal("error occurred while parsing flags")
	}

	logrus.Info("backfill started")
	logrus.Infof("%+v", opts)

	f, err := os.Open(opts.Events)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open events dump")
	}
	defer f.Close()

	db := mustGetDB()
	s := postgres.New(db)

	ctx := context.Background()

	var line, applied, skipped int

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line++

		var r record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			logrus.WithError(err).WithField("line", line).Fatal("failed to unmarshal event")
		}

		switch err := apply(ctx, s, &r); {
		case err == nil:
			applied++
		case errors.Is(err, storage.ErrAlreadyExists), errors.Is(err, storage.ErrNotFound):
			logrus.WithError(err).WithField("line", line).Warn("skip event")
			skipped++
		default:
			logrus.WithError(err).WithField("line", line).WithField("record", spew.Sdump(r)).Fatal("failed to apply event")
		}

		if line%100 == 0 {
			logrus.Infof("%d events processed", line)
		}
	}

	if err := sc.Err(); err != nil {
		logrus.WithError(err).Fatal("failed to read events dump")
	}

	logrus.Infof("done: %d applied, %d skipped", applied, skipped)
}

func apply(ctx context.Context, s storage.Storage, r *record) error {
	t := time.Unix(r.Timestamp, 0).UTC()

	switch r.Kind {
	case "post_created":
		return s.CreatePost(ctx, &storage.CreatePostParams{
			ID:        r.PostID,
			Creator:   r.Creator,
			Content:   r.Content,
			CreatedAt: t,
		})

	case "tip_sent", "auto_tip_executed":
		amount, ok := new(big.Int).SetString(r.Amount, 10)
		if !ok {
			return fmt.Errorf("invalid amount %q", r.Amount)
		}

		if r.Kind == "auto_tip_executed" {
			if _, err := s.DeactivateDelegation(ctx, r.DelegationID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		}

		return s.AddTip(ctx, &storage.AddTipParams{
			ID:        fmt.Sprintf("%s-%d", r.TxHash, r.LogIndex),
			PostID:    r.PostID,
			Tipper:    r.Tipper,
			Creator:   r.Creator,
			Amount:    amount,
			CreatedAt: t,
		})

	case "auto_tip_enabled":
		amount, ok := new(big.Int).SetString(r.Amount, 10)
		if !ok {
			return fmt.Errorf("invalid amount %q", r.Amount)
		}

		return s.CreateDelegation(ctx, &storage.CreateDelegationParams{
			ID:        r.DelegationID,
			PostID:    r.PostID,
			Tipper:    r.Tipper,
			Threshold: r.Threshold,
			Amount:    amount,
			CreatedAt: t,
		})

	case "auto_tip_revoked":
		_, err := s.DeactivateDelegation(ctx, r.DelegationID)
		return err

	default:
		return fmt.Errorf("unknown event kind %q", r.Kind)
	}
}

func mustGetDB() *sql.DB {
	db, err := sql.Open("postgres", opts.Postgres)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create postgres connection")
	}

	if err := db.PingContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	driver, err := migratep.WithInstance(db, &migratep.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create database migrate driver")
	}

	migrator, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", opts.PostgresMigrations), "postgres", driver)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}

	switch v, d, err := migrator.Version(); err {
	case nil:
		logrus.Infof("database version %d with dirty state %t", v, d)
	case migrate.ErrNilVersion:
		logrus.Info("database version: nil")
	default:
		logrus.WithError(err).Fatal("failed to get version")
	}

	switch err := migrator.Up(); err {
	case nil:
		logrus.Info("database was migrated")
	case migrate.ErrNoChange:
		logrus.Info("database is up-to-date")
	default:
		logrus.WithError(err).Fatal("failed to migrate db")
	}

	return db
}
