package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	cachex "github.com/tanpawarit/stackaudit/audit/cache"
	contractx "github.com/tanpawarit/stackaudit/audit/contract"
	inventoryx "github.com/tanpawarit/stackaudit/audit/inventory"
	registryx "github.com/tanpawarit/stackaudit/audit/registry"
	researcherx "github.com/tanpawarit/stackaudit/audit/researcher"
	configx "github.com/tanpawarit/stackaudit/pkg/config"
	_ "github.com/tanpawarit/stackaudit/pkg/logger/autoload"
	openrouterx "github.com/tanpawarit/stackaudit/pkg/openrouter"
)

type AppConfig struct {
	InventoryCSV  string `envconfig:"INVENTORY_CSV" split_words:"true"`
	LookbackYears int    `envconfig:"LOOKBACK_YEARS" split_words:"true" default:"2"`
	ResearchDepth string `envconfig:"RESEARCH_DEPTH" split_words:"true" default:"medium"`
	UsePostgres   bool   `envconfig:"USE_POSTGRES" split_words:"true" default:"false"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("AUDIT")

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	if openrouterx.NewClient(*openRouterCfg) == nil {
		panic("failed to initialize openrouter client")
	}

	chatModel, err := openRouterCfg.New(ctx)
	if err != nil {
		panic(err)
	}
	capability, err := researcherx.NewModelCapability(ctx, chatModel)
	if err != nil {
		panic(err)
	}

	store := buildStore(ctx, appCfg)
	service, err := researcherx.New(
		store,
		registryx.New(),
		capability,
		*configx.MustNew[researcherx.Config]("RESEARCHER"),
	)
	if err != nil {
		panic(err)
	}

	tools := loadInventory(appCfg)
	dr := researchWindow(appCfg.LookbackYears)

	stack, err := service.ResearchStack(ctx, tools, dr, contractx.ResearchDepth(appCfg.ResearchDepth))
	if err != nil {
		panic(err)
	}

	out, err := json.MarshalIndent(stack, "", "  ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
}

func buildStore(ctx context.Context, cfg *AppConfig) cachex.Store {
	if cfg.UsePostgres {
		store, err := cachex.NewPGStore(*configx.MustNew[cachex.PGConfig]("CACHE_PG"))
		if err != nil {
			panic(err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			panic(err)
		}
		return store
	}

	store, err := cachex.NewFileStoreFromConfig(*configx.MustNew[cachex.FileStoreConfig]("CACHE"))
	if err != nil {
		panic(err)
	}
	return store
}

func loadInventory(cfg *AppConfig) []contractx.Tool {
	if cfg.InventoryCSV == "" {
		log.Info().Msg("no inventory csv configured, using sample stack")
		return []contractx.Tool{
			{Name: "Wealthbox", Type: "crm"},
			{Name: "Calendly", Type: "scheduling"},
			{Name: "QuickBooks Online", Type: "accounting"},
		}
	}

	tools, err := inventoryx.LoadCSV(cfg.InventoryCSV)
	if err != nil {
		panic(err)
	}
	return tools
}

func researchWindow(lookbackYears int) contractx.DateRange {
	if lookbackYears <= 0 {
		lookbackYears = 2
	}
	end := time.Now()
	start := end.AddDate(-lookbackYears, 0, 0)
	return contractx.DateRange{
		Start: start.Format("2006-01-02"),
		End:   end.Format("2006-01-02"),
	}
}
