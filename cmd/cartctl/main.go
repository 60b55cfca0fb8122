package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/Gunvolt24/foodorder/config"
	"github.com/Gunvolt24/foodorder/internal/app"
	"github.com/Gunvolt24/foodorder/internal/cart"
	"github.com/Gunvolt24/foodorder/internal/domain"
	"github.com/Gunvolt24/foodorder/internal/persist"
	"github.com/Gunvolt24/foodorder/internal/ports"
	"github.com/Gunvolt24/foodorder/pkg/logger"
	"github.com/Gunvolt24/foodorder/pkg/validate"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
)

const usage = `cartctl - inspect and edit the cart of a kiosk profile

Usage:
  cartctl [flags] show
  cartctl [flags] add --id ID [--menu catalog.json] [--name N --category C --price P]
  cartctl [flags] remove ID [AMOUNT]
  cartctl [flags] clear

cartctl edits the cart only: the session (token and role) is never read or
changed. add with --menu refuses items missing from the catalog or marked
unavailable; add without --menu trusts --name/--category/--price as given and
does not check availability, so prefer --menu for carts the kiosk will submit.

Flags:
`

var errUsage = errors.New("usage")

// options - флаги командной строки.
type options struct {
	profile  string
	driver   string
	dir      string
	verbose  bool
	id       string
	menu     string
	format   string
	name     string
	category string
	price    float64
}

// CLI для работы с корзиной профиля без запуска киоска.
func main() {
	_ = godotenv.Load(".env.local")

	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "cartctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var opts options
	fs := flag.NewFlagSet("cartctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVarP(&opts.profile, "profile", "p", cfg.Profile, "profile name")
	fs.StringVar(&opts.driver, "driver", cfg.Storage.Driver, "profile storage: memory|file|postgres")
	fs.StringVar(&opts.dir, "dir", cfg.Storage.Dir, "directory of file profiles")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")
	fs.StringVar(&opts.id, "id", "", "menu item id (add)")
	fs.StringVar(&opts.menu, "menu", "", "menu catalog file, .json or .jsonl (add)")
	fs.StringVar(&opts.format, "format", string(validate.FormatAuto), "catalog format: auto|json|jsonl")
	fs.StringVar(&opts.name, "name", "", "item name when no catalog is given (add)")
	fs.StringVar(&opts.category, "category", "", "item category when no catalog is given (add)")
	fs.Float64Var(&opts.price, "price", 0, "item price when no catalog is given (add)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	var log ports.Logger = logger.NewNop()
	if opts.verbose {
		zl, cleanup, zErr := logger.NewZapLogger(false, opts.profile)
		if zErr != nil {
			return zErr
		}
		defer func() { _ = cleanup() }()
		log = zl
	}

	storage := cfg.Storage
	storage.Driver = opts.driver
	storage.Dir = opts.dir

	kv, closeStore, err := app.OpenStore(ctx, storage, opts.profile, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	// Только корзина: Session Guard не создаётся, пара token/role остаётся как есть.
	engine := cart.NewEngine(ctx, persist.NewAdapter(kv, log), log)

	switch cmd := fs.Arg(0); cmd {
	case "show":
		return show(engine, stdout)

	case "add":
		item, err := resolveItem(ctx, opts)
		if err != nil {
			return err
		}
		if opts.menu == "" {
			fmt.Fprintf(stderr, "warning: %s added without a catalog, availability not checked\n", item.ID)
		}
		if !engine.AddItem(ctx, item) {
			return fmt.Errorf("item %q was not added", item.ID)
		}
		fmt.Fprintf(stdout, "%s added to cart\n", item.Name)
		return show(engine, stdout)

	case "remove":
		if fs.NArg() < 2 {
			fs.Usage()
			return errUsage
		}
		amount := 1
		if fs.NArg() > 2 {
			n, convErr := strconv.Atoi(fs.Arg(2))
			if convErr != nil {
				return fmt.Errorf("amount %q: %w", fs.Arg(2), convErr)
			}
			amount = n
		}
		if !engine.RemoveItem(ctx, fs.Arg(1), amount) {
			fmt.Fprintf(stdout, "nothing to remove for %s\n", fs.Arg(1))
		}
		return show(engine, stdout)

	case "clear":
		engine.Clear(ctx)
		fmt.Fprintln(stdout, "cart cleared")
		return nil

	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return errUsage
	}
}

// resolveItem - позиция из каталога (--menu) или из флагов.
func resolveItem(ctx context.Context, opts options) (domain.MenuItem, error) {
	if opts.id == "" {
		return domain.MenuItem{}, errors.New("--id is required")
	}

	if opts.menu == "" {
		item := domain.MenuItem{
			ID:           opts.id,
			Name:         opts.name,
			Category:     opts.category,
			Price:        opts.price,
			Availability: true,
		}
		if err := validate.NewCatalogValidator().Validate(ctx, &item); err != nil {
			return domain.MenuItem{}, err
		}
		return item, nil
	}

	items, result, err := validate.ReadCatalogFile(ctx, validate.NewCatalogValidator(), opts.menu, validate.InputFormat(opts.format))
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("catalog %s: %w", opts.menu, err)
	}
	for _, it := range items {
		if it.ID == opts.id {
			if !it.Availability {
				return domain.MenuItem{}, fmt.Errorf("%s is not available", it.Name)
			}
			return it, nil
		}
	}
	return domain.MenuItem{}, fmt.Errorf("menu item %q not found in catalog (%s)", opts.id, result)
}

func show(engine *cart.Engine, w io.Writer) error {
	lines := engine.Lines()
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "Your cart is empty")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.2f\n", l.ItemID, l.Name, l.Quantity, l.UnitPrice, l.Subtotal())
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%.2f\n", engine.Count(), engine.Total())
	return tw.Flush()
}
