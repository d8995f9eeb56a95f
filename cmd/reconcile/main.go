package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/adityarao/billsync-backend/internal/audit"
	"github.com/adityarao/billsync-backend/pkg/config"
	"github.com/adityarao/billsync-backend/pkg/db"
	"github.com/adityarao/billsync-backend/pkg/logger"
	"github.com/joho/godotenv"
)

// reconcile compares a list of bill numbers, one per line, against the orders
// table and prints the delta report as JSON.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "reconcile"})

	_ = godotenv.Load()

	file := flag.String("file", "", "path to a file with one bill number per line (- for stdin)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		os.Exit(1)
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "reconcile",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	bills, err := readBillNumbers(*file)
	requireResource(ctx, logg, "source file", err)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	report, err := audit.NewService(audit.NewRepository(dbClient.DB())).Delta(ctx, bills)
	requireResource(ctx, logg, "delta audit", err)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		logg.Error(ctx, "failed to encode report", err)
		os.Exit(1)
	}
}

func readBillNumbers(path string) ([]string, error) {
	var in *os.File
	if path == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	var bills []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		bills = append(bills, scanner.Text())
	}
	return bills, scanner.Err()
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
