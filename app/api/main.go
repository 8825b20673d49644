package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	amountformatter "github.com/openloot/goapi/base/amount_formatter"
	"github.com/openloot/goapi/base/ctx"
	"github.com/openloot/goapi/base/database/mongoclient"
	"github.com/openloot/goapi/base/ethereum"
	"github.com/openloot/goapi/base/log"
	bValidator "github.com/openloot/goapi/base/validator"
	"github.com/openloot/goapi/domain"
	mmiddleware "github.com/openloot/goapi/middleware"
	"github.com/openloot/goapi/service/ledger/memory"
	"github.com/openloot/goapi/service/query"
	auction_delivery "github.com/openloot/goapi/stores/auction/delivery/http"
	auction_repository "github.com/openloot/goapi/stores/auction/repository"
	auction_usecase "github.com/openloot/goapi/stores/auction/usecase"
	auth_delivery "github.com/openloot/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/openloot/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/openloot/goapi/stores/auth/usecase"
	collection_delivery "github.com/openloot/goapi/stores/collection/delivery/http"
	collection_repository "github.com/openloot/goapi/stores/collection/repository"
	collection_usecase "github.com/openloot/goapi/stores/collection/usecase"
	event_delivery "github.com/openloot/goapi/stores/event/delivery/http"
	event_repository "github.com/openloot/goapi/stores/event/repository"
	hc_delivery "github.com/openloot/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/openloot/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/openloot/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/openloot/goapi/stores/listing/delivery/http"
	listing_repository "github.com/openloot/goapi/stores/listing/repository"
	listing_usecase "github.com/openloot/goapi/stores/listing/usecase"
	payment_delivery "github.com/openloot/goapi/stores/payment/delivery/http"
	payment_repository "github.com/openloot/goapi/stores/payment/repository"
	payment_usecase "github.com/openloot/goapi/stores/payment/usecase"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path to config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	chainId := domain.ChainId(viper.GetInt32("engine.chainId"))
	engineAddress := domain.Address(viper.GetString("engine.address")).ToLower()
	treasury := domain.Address(viper.GetString("engine.treasury")).ToLower()
	owner := domain.Address(viper.GetString("engine.owner")).ToLower()
	claimSeller := domain.Address(viper.GetString("engine.claimSeller")).ToLower()
	feeBps := viper.GetInt64("engine.feeBps")

	// init in-memory settlement ledgers. payment tokens come from config
	// so a new currency is a deploy-time decision, not a code change
	context.Info("init ledgers")
	assets := memory.NewAssetLedger()
	ledgers := memory.NewRegistry(memory.NewNativeLedger())
	tokenDecimals := make(map[domain.Address]int32)
	tokens := viper.Sub("tokens")
	if tokens != nil {
		for k := range tokens.AllSettings() {
			tokenAddr := domain.Address(tokens.GetString(fmt.Sprintf("%s.address", k))).ToLower()
			ledgers.Register(tokenAddr, memory.NewTokenLedger())
			tokenDecimals[tokenAddr] = tokens.GetInt32(fmt.Sprintf("%s.decimals", k))
		}
	}
	formatter := amountformatter.NewAmountFormatter(&amountformatter.AmountFormatterCfg{
		TokenDecimals: tokenDecimals,
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient)
	balanceRepo := payment_repository.NewBalanceRepo(q, chainId)
	saleRepo := listing_repository.NewSaleRepo(q, chainId)
	nonceRepo := auction_repository.NewNonceRepo(q, chainId)
	roundRepo := collection_repository.NewRoundRepo(q, chainId)
	eventRepo := event_repository.NewEventRepo(q, chainId)

	hc := hc_usecase.New(hcRepo)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), viper.GetDuration("auth.tokenTTL"))
	settlement := payment_usecase.New(&payment_usecase.SettlementCfg{
		EngineAddress: engineAddress,
		Treasury:      treasury,
		Owner:         owner,
		Ledgers:       ledgers,
		BalanceRepo:   balanceRepo,
	})
	verifier := auction_usecase.New(&auction_usecase.VerifierCfg{
		ChainId:           chainId,
		VerifyingContract: engineAddress,
		Recoverer:         ethereum.NewRecoverer(),
		NonceRepo:         nonceRepo,
	})
	listing := listing_usecase.New(&listing_usecase.ListingCfg{
		EngineAddress: engineAddress,
		ClaimSeller:   claimSeller,
		FeeBps:        feeBps,
		SaleRepo:      saleRepo,
		Assets:        assets,
		Settlement:    settlement,
		Verifier:      verifier,
		EventRepo:     eventRepo,
	})
	rounds := collection_usecase.New(&collection_usecase.RoundsCfg{
		EngineAddress: engineAddress,
		Owner:         owner,
		RoundRepo:     roundRepo,
		Assets:        assets,
		Settlement:    settlement,
		EventRepo:     eventRepo,
	})

	adminAddresses := []domain.Address{}
	for _, addr := range viper.GetStringSlice("admin.addresses") {
		adminAddresses = append(adminAddresses, domain.Address(addr).ToLower())
	}
	authMiddleware := auth_middleware.New(auth, adminAddresses)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	payment_delivery.New(e, settlement, formatter, authMiddleware)
	auction_delivery.New(e, verifier)
	listing_delivery.New(e, listing, authMiddleware)
	collection_delivery.New(e, rounds, authMiddleware)
	event_delivery.New(e, eventRepo)

	e.GET("/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"address": c.Get("address").(domain.Address),
		})
	}, authMiddleware.Auth())

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
