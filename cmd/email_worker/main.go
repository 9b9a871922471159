package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/mailer"
)

const prefetch = 16

// email_worker consumes article_published jobs from RabbitMQ and delivers
// them through Mailgun.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase)
	if err := consume(ctx, cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, sender, logger); err != nil {
		logger.WithError(err).Fatal("email worker stopped")
	}
	logger.Info("email worker exited")
}

func consume(ctx context.Context, url, queue string, sender mailer.Sender, logger *logrus.Logger) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// fair dispatch between workers
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return err
	}
	if _, err := helpers.DeclareQueue(ch, queue); err != nil {
		return err
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	logger.WithField("queue", queue).Info("email worker listening")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			handle(ctx, msg, sender, logger)
		}
	}
}

func handle(ctx context.Context, msg amqp.Delivery, sender mailer.Sender, logger *logrus.Logger) {
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	err := mailer.Process(c, sender, msg.Body)
	switch {
	case err == nil:
		_ = msg.Ack(false)
	case errors.Is(err, mailer.ErrBadJob):
		logger.WithError(err).Warn("dropping email job")
		_ = msg.Nack(false, false)
	default:
		logger.WithError(err).Error("send failed, requeueing")
		_ = msg.Nack(false, true)
	}
}
