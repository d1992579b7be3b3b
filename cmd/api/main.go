package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/integrator/awesomeapi/awesomeclient"
	"github.com/vfg2006/campaign-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/campaign-dashboard-api/internal/api"
	"github.com/vfg2006/campaign-dashboard-api/internal/clock"
	"github.com/vfg2006/campaign-dashboard-api/internal/config"
	"github.com/vfg2006/campaign-dashboard-api/internal/notification"
	"github.com/vfg2006/campaign-dashboard-api/internal/scheduler"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/archiving"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/exchanging"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	campaignRepo := repository.NewCampaignStore(pgConn)
	snapshotRepo := repository.NewSnapshotStore(pgConn)

	// Relógio canônico do dashboard (America/Sao_Paulo)
	clk := clock.New()

	// Cache de cotação USD→BRL com refresh em background
	awesomeClient := awesomeclient.NewClient(cfg)
	rateService := exchanging.NewService(cfg, awesomeClient)

	if err := rateService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o refresh periódico de cotação")
	} else {
		logrus.Info("Refresh periódico de cotação iniciado com sucesso")
	}

	campaignService := campaigning.NewService(campaignRepo, rateService)
	snapshotService := archiving.NewService(snapshotRepo)

	// Vigia da fronteira de dia e rollover diário
	notifier := notification.FromConfig(cfg)
	rolloverService := scheduler.NewDailyRolloverService(
		campaignRepo,
		snapshotRepo,
		notifier,
		clk,
		cfg,
	)

	if err := rolloverService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a vigia da fronteira de dia")
	} else {
		logrus.Info("Vigia da fronteira de dia iniciada com sucesso")
	}

	server, err := api.New(
		cfg,
		campaignService,
		snapshotService,
		rateService,
		rolloverService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
