// Command admin creates an administrator account, or promotes an existing
// one, in the studio database. It reads the same configuration as the
// server (DSN, bcrypt cost).
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/yogastudio/internal/admincli"
	"github.com/dmitrijs2005/yogastudio/internal/buildinfo"
	"github.com/dmitrijs2005/yogastudio/internal/flagx"
	"github.com/dmitrijs2005/yogastudio/internal/server/auth"
	"github.com/dmitrijs2005/yogastudio/internal/server/config"
	"github.com/dmitrijs2005/yogastudio/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/yogastudio/internal/server/services"
)

func parseAdminFlags() admincli.Options {
	var opts admincli.Options

	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.StringVar(&opts.Email, "e", "", "admin email")
	fs.StringVar(&opts.FirstName, "f", "", "admin first name")
	fs.StringVar(&opts.LastName, "n", "", "admin last name")

	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-e", "-f", "-n"})); err != nil {
		panic(err)
	}
	return opts
}

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := parseAdminFlags()
	cfg := config.LoadConfig()

	db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("%v", err)
	}

	svc := services.NewUserService(db, rm, auth.NewPasswordHasher(cfg.BcryptCost))

	if err := admincli.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts, svc); err != nil {
		log.Printf("%v", err)
		stop()
		os.Exit(1)
	}
}
