package main

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/agrostack/farmkeep/internal/ai"
	"github.com/agrostack/farmkeep/internal/config"
	"github.com/agrostack/farmkeep/internal/database"
	"github.com/agrostack/farmkeep/internal/handler"
	"github.com/agrostack/farmkeep/internal/logging"
	"github.com/agrostack/farmkeep/internal/notify"
	"github.com/agrostack/farmkeep/internal/queue"
	"github.com/agrostack/farmkeep/internal/repository"
	"github.com/agrostack/farmkeep/internal/router"
	"github.com/agrostack/farmkeep/internal/service"
	"github.com/agrostack/farmkeep/internal/weather"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Env)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unreachable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	tasks := repository.NewTaskRepo(db)
	inventory := repository.NewInventoryRepo(db)
	expenses := repository.NewExpenseRepo(db)
	journal := repository.NewJournalRepo(db)
	products := repository.NewProductRepo(db)
	sellers := repository.NewSellerRepo(db)
	payments := repository.NewPaymentRepo(db)

	llm := ai.NewDisabled()
	if cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	} else {
		log.Warn().Msg("LLM_API_KEY not set; advisory endpoints serve fallback payloads")
	}
	wx := weather.New(cfg.WeatherAPIKey, cfg.WeatherBaseURL)
	if !wx.Enabled() {
		log.Warn().Msg("OPENWEATHER_API_KEY not set; weather endpoints unavailable")
	}
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	sms := notify.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)

	var pub service.Publisher = service.NopPublisher{Log: log}
	if cfg.AMQPURL != "" {
		pub = service.NewAMQPPublisher(cfg.AMQPURL, log)
		consumer := &queue.Consumer{URL: cfg.AMQPURL, Mailer: mailer, SMS: sms, Log: log}
		go consumer.Start()
	} else {
		log.Warn().Msg("RABBITMQ_URL not set; notification events are dropped")
	}

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, sessions, log),
		Farm:     &handler.FarmHandler{Users: users, Tasks: tasks, Inventory: inventory, Expenses: expenses, Journal: journal, Publisher: pub, Reminder: cfg.ReminderEmail, Log: log},
		Advisor:  &handler.AdvisorHandler{Weather: wx, Log: log},
		Insights: &handler.InsightsHandler{AI: llm, Journal: journal, Products: products, Log: log},
		Market:   &handler.MarketHandler{Users: users, Sellers: sellers, Products: products, Log: log},
		Payments: &handler.PaymentHandler{Payments: payments, Log: log},
		Admin:    &handler.AdminHandler{Sellers: sellers, Products: products, Payments: payments, Publisher: pub, Log: log},
		Reports:  &handler.ReportHandler{Users: users, Tasks: tasks, Inventory: inventory, Expenses: expenses, Log: log},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Static("/", "web/static")
	router.Register(e, h, db, cfg, rdb)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("farmkeep listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
