package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Abhi9av-Git/LeaveEase/config"
	"github.com/Abhi9av-Git/LeaveEase/database"
	"github.com/Abhi9av-Git/LeaveEase/directory"
	"github.com/Abhi9av-Git/LeaveEase/notify"
	"github.com/Abhi9av-Git/LeaveEase/notify/queue"
	"github.com/Abhi9av-Git/LeaveEase/routes"
)

func main() {
	cfg := config.Load()

	// connect first — if the DB is down we want to fail right here
	database.Connect(cfg)

	dir := directory.New(database.DB)
	mailer := notify.NewMailer(cfg)
	sms := notify.NewSMSClient(cfg)

	// With a broker configured, transitions publish notification events
	// and a consumer worker delivers them; without one, delivery runs
	// in-process. Either way the request path never waits on a send.
	var producer *queue.Producer
	if cfg.KafkaBroker != "" {
		producer = queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)
		defer producer.Close()
	}
	notifier := notify.NewDispatcher(dir, mailer, sms, producer)

	if cfg.KafkaBroker != "" {
		worker := notify.NewDispatcher(dir, mailer, sms, nil)
		consumer := queue.NewConsumer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaGroupID, cfg.KafkaUsername, cfg.KafkaPassword, worker)
		defer consumer.Close()
		go consumer.Listen(context.Background())
		log.Printf("notification worker consuming %s", cfg.KafkaTopic)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg, dir, notifier)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
