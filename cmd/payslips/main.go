package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"payslips/internal/app/server"
	"payslips/internal/domain/payroll"
	"payslips/internal/platform/config"
	"payslips/internal/platform/logging"
	"payslips/internal/transport/http/shared"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Load()
	fs := flag.NewFlagSet("payslips", flag.ContinueOnError)
	values := map[string]*string{}
	for _, field := range payroll.FormFields {
		if field == "deliverTo" {
			continue
		}
		values[field] = fs.String(field, defaultFor(field), shared.FieldLabel(field))
	}
	out := fs.String("out", cfg.OutputDir, "directory the archive is written to")
	to := fs.String("email", "", "optional address the archive is emailed to")
	register := fs.Bool("register", false, "also write the payroll register spreadsheet")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	form := payroll.FormFromValues(func(key string) string {
		if key == "deliverTo" {
			return *to
		}
		if v, ok := values[key]; ok {
			return *v
		}
		return ""
	})
	in, err := form.Input()
	if err != nil {
		printIssues(err)
		return 2
	}

	svc, err := server.NewService(cfg, log)
	if err != nil {
		log.Error("build service", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundle, err := svc.Generate(ctx, in)
	if err != nil {
		log.Error("generate payslips", zap.Error(err))
		return 1
	}
	path, err := svc.Save(*out, bundle)
	if err != nil {
		log.Error("save archive", zap.Error(err))
		return 1
	}
	fmt.Println(path)

	if *register {
		sheet, err := svc.Register(ctx, in)
		if err != nil {
			log.Error("export register", zap.Error(err))
			return 1
		}
		sheetPath, err := svc.Save(*out, sheet)
		if err != nil {
			log.Error("save register", zap.Error(err))
			return 1
		}
		fmt.Println(sheetPath)
	}

	if err := svc.Email(ctx, form.DeliverTo, in, bundle); err != nil {
		log.Warn("email archive", zap.Error(err))
	}

	fmt.Println(payroll.ConfirmationMessage)
	return 0
}

func defaultFor(field string) string {
	switch field {
	case "superRate":
		return "11"
	case "overtimeHours", "overtimeRate":
		return "0"
	case "leaveBalances":
		return payroll.DefaultLeaveBalances
	}
	return ""
}

func printIssues(err error) {
	var verr *payroll.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	lines := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		lines = append(lines, fmt.Sprintf("  -%s: %s %s", issue.Field, shared.FieldLabel(issue.Field), issue.Reason))
	}
	sort.Strings(lines)
	fmt.Fprintln(os.Stderr, "invalid input:\n"+strings.Join(lines, "\n"))
}
