package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/roastline/storefront/internal/domain/catalog"
	"github.com/roastline/storefront/internal/domain/identity"
	"github.com/roastline/storefront/internal/domain/order"
	"github.com/roastline/storefront/internal/domain/pricing"
	"github.com/roastline/storefront/internal/infrastructure/config"
	"github.com/roastline/storefront/internal/infrastructure/logger"
	"github.com/roastline/storefront/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := migrate(db.DB); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema migrated")
	case "seed":
		if err := migrate(db.DB); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		if err := seed(context.Background(), db.DB, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Seed data loaded")
	default:
		printUsage()
		os.Exit(1)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Product{},
		&pricing.PricingRule{},
		&order.Order{},
		&order.Item{},
		&identity.Customer{},
	)
}

type seedProduct struct {
	sku    string
	slug   string
	nameRU string
	nameEN string
	descRU string
	descEN string
	origin string
	roast  catalog.RoastLevel
	sort   int
	// Per-tier price per kg; nil means the product sells at a fixed price
	tiers *[pricing.TierCount]int64
	fixed int64
}

var seedCatalog = []seedProduct{
	{
		sku:    "ESPRESSO_1",
		slug:   "espresso-blend-1",
		nameRU: "Эспрессо-смесь №1",
		nameEN: "Espresso Blend No. 1",
		descRU: "Плотная смесь арабики и робусты для классического эспрессо.",
		descEN: "A dense arabica and robusta blend for classic espresso.",
		origin: "Бразилия / Индия",
		roast:  catalog.RoastDark,
		sort:   10,
		tiers:  &[pricing.TierCount]int64{13020, 13020, 11718, 10850, 10416, 9765},
	},
	{
		sku:    "ETHIOPIA_SIDAMO",
		slug:   "ethiopia-sidamo",
		nameRU: "Эфиопия Сидамо",
		nameEN: "Ethiopia Sidamo",
		descRU: "Ягодная кислотность и цветочный аромат, мытая обработка.",
		descEN: "Berry acidity and floral aroma, washed process.",
		origin: "Эфиопия",
		roast:  catalog.RoastLight,
		sort:   20,
		tiers:  &[pricing.TierCount]int64{15500, 15500, 13950, 12900, 12400, 11625},
	},
	{
		sku:    "COLOMBIA_SUPREMO",
		slug:   "colombia-supremo",
		nameRU: "Колумбия Супремо",
		nameEN: "Colombia Supremo",
		descRU: "Сбалансированный профиль с нотами карамели и какао.",
		descEN: "A balanced profile with caramel and cocoa notes.",
		origin: "Колумбия",
		roast:  catalog.RoastMedium,
		sort:   30,
		tiers:  &[pricing.TierCount]int64{14200, 14200, 12780, 11830, 11360, 10650},
	},
	{
		sku:    "TASTING_SET",
		slug:   "tasting-set",
		nameRU: "Дегустационный набор",
		nameEN: "Tasting Set",
		descRU: "Четыре сорта по 250 г для знакомства с нашей обжаркой.",
		descEN: "Four 250 g samples to get to know our roasts.",
		origin: "",
		roast:  catalog.RoastMedium,
		sort:   40,
		fixed:  10000,
	},
}

func seed(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	productRepo := persistence.NewGormProductRepository(db)
	ruleRepo := persistence.NewGormRuleRepository(db)

	for _, sp := range seedCatalog {
		exists, err := productRepo.ExistsBySKU(ctx, sp.sku)
		if err != nil {
			return fmt.Errorf("check product %s: %w", sp.sku, err)
		}
		if exists {
			log.Debug("product already seeded", zap.String("sku", sp.sku))
			continue
		}

		p, err := catalog.NewProduct(sp.sku, sp.slug, sp.nameRU, sp.nameEN)
		if err != nil {
			return fmt.Errorf("build product %s: %w", sp.sku, err)
		}
		p.Describe(sp.descRU, sp.descEN)
		p.SetOrigin(sp.origin)
		p.SetSortOrder(sp.sort)
		if err := p.SetRoast(sp.roast); err != nil {
			return fmt.Errorf("build product %s: %w", sp.sku, err)
		}
		p.ClearDomainEvents()
		if err := productRepo.Save(ctx, p); err != nil {
			return fmt.Errorf("save product %s: %w", sp.sku, err)
		}

		var rule *pricing.PricingRule
		if sp.tiers != nil {
			var prices [pricing.TierCount]decimal.Decimal
			for i, v := range sp.tiers {
				prices[i] = decimal.NewFromInt(v)
			}
			rule, err = pricing.NewPricingRule(sp.sku, prices)
		} else {
			rule, err = pricing.NewFixedPricingRule(sp.sku, decimal.NewFromInt(sp.fixed))
		}
		if err != nil {
			return fmt.Errorf("build rule %s: %w", sp.sku, err)
		}
		if err := ruleRepo.Save(ctx, rule); err != nil {
			return fmt.Errorf("save rule %s: %w", sp.sku, err)
		}

		log.Info("seeded product", zap.String("sku", sp.sku), zap.String("slug", sp.slug))
	}
	return nil
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command>

Commands:
  up      Create or update the database schema
  seed    Migrate, then load the starter catalog and price list

Flags:
  -log-level   Log level (debug, info, warn, error)`)
}
