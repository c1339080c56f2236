// Command migrate applies, reverts and lists the inkwell schema migrations.
//
// Usage:
//
//	migrate [-d dsn] [-m dialect] [-c config.json] up
//	migrate [-d dsn] [-m dialect] [-c config.json] down [n]
//	migrate [-d dsn] [-m dialect] [-c config.json] status
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/flagx"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/migrations"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
	_ "modernc.org/sqlite"
)

var errUsage = errors.New("usage: migrate up | down [n] | status")

func main() {

	cfg := config.LoadConfig()

	if err := run(context.Background(), cfg, flagx.Positional(os.Args[1:]), os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}

}

func run(ctx context.Context, cfg *config.Config, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	dialect, err := repomanager.ParseDialect(cfg.MigrationsDialect)
	if err != nil {
		return err
	}

	db, err := sql.Open(repomanager.DriverName(dialect), cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	m, err := repomanager.NewMigrator(db, dialect, migrations.Migrations)
	if err != nil {
		return err
	}

	switch args[0] {
	case "up":
		return up(ctx, m, w)
	case "down":
		n := 1
		if len(args) > 1 {
			n, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid count %q: %w", args[1], common.ErrValidation)
			}
		}
		return down(ctx, m, n, w)
	case "status":
		return status(ctx, m, w)
	default:
		return errUsage
	}
}

func up(ctx context.Context, m *repomanager.Migrator, w io.Writer) error {
	applied, err := m.ApplyPending(ctx)
	for _, v := range applied {
		fmt.Fprintf(w, "applied %d\n", v)
	}
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(w, "no pending migrations")
	}
	return nil
}

func down(ctx context.Context, m *repomanager.Migrator, n int, w io.Writer) error {
	reverted, err := m.RevertLast(ctx, n)
	for _, v := range reverted {
		fmt.Fprintf(w, "reverted %d\n", v)
	}
	if err != nil {
		return err
	}
	if len(reverted) == 0 {
		fmt.Fprintln(w, "nothing to revert")
	}
	return nil
}

func status(ctx context.Context, m *repomanager.Migrator, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tNAME\tAPPLIED AT")

	for st, err := range m.Status(ctx) {
		if err != nil {
			return err
		}
		appliedAt := "pending"
		if st.Applied {
			appliedAt = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", st.Version, st.Name, appliedAt)
	}

	return tw.Flush()
}
