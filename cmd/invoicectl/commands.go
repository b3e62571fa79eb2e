package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/config"
	"github.com/srikumaragency/b-admin-prod-03/internal/invoice"
	"github.com/srikumaragency/b-admin-prod-03/internal/numwords"
	"github.com/srikumaragency/b-admin-prod-03/internal/pricing"
	"github.com/srikumaragency/b-admin-prod-03/internal/service"
	"github.com/srikumaragency/b-admin-prod-03/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var itemsPerPageFlag = &cli.IntFlag{
	Name:  "per-page",
	Usage: "item rows per page",
	Value: invoice.DefaultItemsPerPage,
}

func format(c *cli.Context) invoice.Format {
	f := invoice.DefaultFormat()
	if n := c.Int("per-page"); n > 0 {
		f.ItemsPerPage = n
	}
	return f
}

// ── sample ───────────────────────────────────────────────────────────────────

func sampleCommand() *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "render an invoice with N generated line items",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "items", Aliases: []string{"n"}, Value: 30},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "sample-invoice.pdf"},
			itemsPerPageFlag,
		},
		Action: func(c *cli.Context) error {
			data := sampleData(c.Int("items"))
			return renderTo(data, format(c), c.String("out"))
		},
	}
}

func sampleData(n int) invoice.Data {
	cfg := defaultLetterhead()
	items := make([]invoice.LineItem, n)
	for i := range items {
		disc := decimal.NewFromInt(81)
		items[i] = invoice.LineItem{
			ProductCode:        fmt.Sprintf("SC%03d", i+1),
			Name:               fmt.Sprintf("Sample Cracker %d", i+1),
			Quantity:           1 + i%4,
			UnitRate:           decimal.NewFromInt(int64(50 + 25*(i%7))),
			DiscountPercentage: &disc,
		}
	}
	return invoice.Data{
		InvoiceNumber: "INV-SAMPLE-001",
		OrderID:       "SAMPLE-001",
		GeneratedAt:   time.Now().In(service.IST),
		PaymentStatus: "paid",
		Customer: invoice.Customer{
			Name:   "Sample Customer",
			Mobile: "9000000000",
			Address: invoice.Address{
				Street:   "1 Main Road",
				District: "Virudhunagar",
				State:    "Tamil Nadu",
				Pincode:  "626123",
				Country:  "India",
			},
		},
		Items: items,
		Store: cfg,
	}
}

// defaultLetterhead reads STORE_* overrides when present.
func defaultLetterhead() invoice.Store {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("config not loaded, using built-in letterhead")
		return invoice.Store{}
	}
	return cfg.Letterhead()
}

// ── render / batch ───────────────────────────────────────────────────────────

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render an invoice JSON document to PDF",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}},
			itemsPerPageFlag,
		},
		Action: func(c *cli.Context) error {
			in := c.String("in")
			data, err := readData(in)
			if err != nil {
				return err
			}
			out := c.String("out")
			if out == "" {
				out = pdfName(in)
			}
			return renderTo(data, format(c), out)
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "render every *.json invoice in a directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Required: true},
			&cli.StringFlag{Name: "out-dir", Usage: "defaults to --dir"},
			&cli.IntFlag{Name: "workers", Value: 4},
			itemsPerPageFlag,
		},
		Action: func(c *cli.Context) error {
			paths, err := filepath.Glob(filepath.Join(c.String("dir"), "*.json"))
			if err != nil {
				return err
			}
			outDir := c.String("out-dir")
			if outDir == "" {
				outDir = c.String("dir")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			jobs := make([]worker.Job, len(paths))
			for i, p := range paths {
				jobs[i] = worker.Job{Name: p, Payload: filepath.Join(outDir, filepath.Base(pdfName(p)))}
			}
			f := format(c)
			results := worker.Run(c.Context, jobs, c.Int("workers"), func(_ context.Context, j worker.Job) error {
				data, err := readData(j.Name)
				if err != nil {
					return err
				}
				return renderTo(data, f, j.Payload.(string))
			})

			failed := worker.Failed(results)
			log.Info().Int("rendered", len(results)-len(failed)).Int("failed", len(failed)).Msg("batch done")
			if len(failed) > 0 {
				return cli.Exit(fmt.Sprintf("%d invoice(s) failed", len(failed)), 1)
			}
			return nil
		},
	}
}

func readData(path string) (invoice.Data, error) {
	var data invoice.Data
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func pdfName(jsonPath string) string {
	return strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".pdf"
}

func renderTo(data invoice.Data, f invoice.Format, out string) error {
	start := time.Now()
	buf, err := invoice.Render(data, f)
	if err == nil {
		err = invoice.Validate(buf)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", data.OrderID, err)
	}
	if err := os.WriteFile(out, buf, 0o644); err != nil {
		return err
	}
	log.Info().
		Str("out", out).
		Int("items", len(data.Items)).
		Int("pages", invoice.PageCount(len(data.Items), f.ItemsPerPage)).
		Int("bytes", len(buf)).
		Dur("took", time.Since(start)).
		Msg("invoice written")
	return nil
}

// ── pricing ──────────────────────────────────────────────────────────────────

func pricingCommand() *cli.Command {
	return &cli.Command{
		Name:  "pricing",
		Usage: "preview derived prices for a base price",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base", Required: true},
			&cli.StringFlag{Name: "margin", Usage: "profit margin %, default 65"},
			&cli.StringFlag{Name: "discount", Usage: "discount %, default 81"},
		},
		Action: func(c *cli.Context) error {
			base, err := decimal.NewFromString(c.String("base"))
			if err != nil {
				return fmt.Errorf("base: %w", err)
			}
			margin, err := optionalDecimal(c, "margin")
			if err != nil {
				return err
			}
			discount, err := optionalDecimal(c, "discount")
			if err != nil {
				return err
			}
			res, err := pricing.ComputeWithDefaults(base, margin, discount)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}

func optionalDecimal(c *cli.Context, name string) (*decimal.Decimal, error) {
	if !c.IsSet(name) {
		return nil, nil
	}
	v, err := decimal.NewFromString(c.String(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &v, nil
}

// ── words / hash ─────────────────────────────────────────────────────────────

func wordsCommand() *cli.Command {
	return &cli.Command{
		Name:      "words",
		Usage:     "spell a whole number in the Indian system",
		ArgsUsage: "NUMBER",
		Action: func(c *cli.Context) error {
			n, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil {
				return cli.Exit("NUMBER must be a whole number", 2)
			}
			words, err := numwords.Convert(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, words)
			return nil
		},
	}
}

func hashCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash",
		Usage:     "print a bcrypt hash for an admin password",
		ArgsUsage: "PASSWORD",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: invoicectl hash PASSWORD", 2)
			}
			hash, err := service.HashPassword(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}
