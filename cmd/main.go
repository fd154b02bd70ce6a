package main

import (
	"context"
	"github.com/maxaizer/gb2260/internal/bot"
	"github.com/maxaizer/gb2260/internal/config"
	"github.com/maxaizer/gb2260/internal/logger"
	"github.com/maxaizer/gb2260/internal/metrics"
	"github.com/maxaizer/gb2260/internal/repositories"
	"github.com/maxaizer/gb2260/internal/services"
	"github.com/maxaizer/gb2260/pkg/gb2260"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Metrics.Port)

	store := gb2260.Default()
	for _, source := range []gb2260.Source{gb2260.GB, gb2260.Stats} {
		log.Infof("loaded %s revisions: %v", source, store.Revisions(source))
	}

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate(store)
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	divisions := repositories.NewCachedDivisions(repositories.NewDivisionsRepository(dbContext.DB))
	data := repositories.NewDataRepository(dbContext.DB)
	lookup := services.NewLookupService(store, divisions)

	tgbot, err := bot.NewBot(cfg.Bot.Token, lookup, data, bot.Options{
		DefaultSource:         cfg.Registry.Source,
		DefaultRevision:       cfg.Registry.Revision,
		MaxRequestsPerSecond:  cfg.Bot.MaxRequestsPerSecond,
		RequestsBurst:         cfg.Bot.RequestsBurst,
		MaxDivisionsInMessage: cfg.Bot.MaxDivisionsInMessage,
	})
	if err != nil {
		log.Fatalf("can't create bot: %v", err)
	}
	go tgbot.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	tgbot.Stop()
	log.Info("Services stopped.")
}
