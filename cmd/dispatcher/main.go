package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	apihandler "github.com/olegtsov/notify-dispatcher/internal/api/handlers/notification"
	"github.com/olegtsov/notify-dispatcher/internal/api/router"
	"github.com/olegtsov/notify-dispatcher/internal/api/server"
	"github.com/olegtsov/notify-dispatcher/internal/breaker"
	"github.com/olegtsov/notify-dispatcher/internal/config"
	"github.com/olegtsov/notify-dispatcher/internal/model"
	notifmsg "github.com/olegtsov/notify-dispatcher/internal/rabbitmq/handlers/notification"
	"github.com/olegtsov/notify-dispatcher/internal/rabbitmq/queue"
	"github.com/olegtsov/notify-dispatcher/internal/repository/recipient"
	retrysched "github.com/olegtsov/notify-dispatcher/internal/retry"
	notifsvc "github.com/olegtsov/notify-dispatcher/internal/service/notification"
	"github.com/olegtsov/notify-dispatcher/internal/status"
	"github.com/olegtsov/notify-dispatcher/internal/worker"
	"github.com/olegtsov/notify-dispatcher/pkg/email"
	"github.com/olegtsov/notify-dispatcher/pkg/push"
	"github.com/olegtsov/notify-dispatcher/pkg/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	connector := queue.NewConnector(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)

	q, err := queue.New(connector, cfg.RabbitMQ.Prefetch, cfg.Publish)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create notification queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	recipients := recipient.NewRepository(db)

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	tracker := status.New(rdb, cfg.Status.TTL, cfg.Publish)
	breakers := breaker.NewRegistry(cfg.Breaker)

	renderer := render.New()
	for _, t := range cfg.Templates {
		if err := renderer.Register(t.Code, t.Subject, t.Body); err != nil {
			zlog.Logger.Fatal().Err(err).Str("template", t.Code).Msg("failed to register template")
		}
	}

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
	)
	pushClient := push.NewClient(cfg.Push.URL, cfg.Push.APIKey)

	transports := map[model.Channel]notifmsg.Transport{
		model.ChannelEmail: emailClient,
		model.ChannelPush:  pushClient,
	}

	scheduler := retrysched.NewScheduler(cfg.Retry, q)
	service := notifsvc.NewService(q, q, recipients, tracker, breakers)
	messageHandler := notifmsg.NewHandler(tracker, renderer, transports, scheduler)

	consumer := worker.NewConsumer(q, messageHandler, cfg.RabbitMQ.Pause)
	for _, ch := range model.Channels() {
		go consumer.Run(ctx, ch, cfg.Workers.Count)
	}

	notifHandler := apihandler.NewHandler(service, val)
	r := router.New(notifHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	// Pending retries republish or drop before the queue closes.
	scheduler.Wait()

	if err := q.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close notification queue")
	}

	if err := connector.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := rdb.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close redis client")
	}
}
