package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"khp/internal/events"

	"github.com/joho/godotenv"
)

// The notifier tails the kitchen queue and logs every order event. It is the
// integration point for push/display systems that want the feed without
// touching the API.
func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		log.Fatal("❌ Missing env var: RABBITMQ_URL")
	}

	// ───────────────────────── BROKER ─────────────────────────
	broker, err := events.Dial(url)
	if err != nil {
		log.Fatal("❌ RabbitMQ init failed:", err)
	}
	defer broker.Close()

	if err := broker.DeclareAll(); err != nil {
		log.Fatal("❌ RabbitMQ declare failed:", err)
	}

	deliveries, err := broker.Consume(events.KitchenQueue, "notifier")
	if err != nil {
		log.Fatal("❌ RabbitMQ consume failed:", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("🚀 Notifier listening on", events.KitchenQueue)

	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				log.Println("⚠️ Delivery channel closed")
				return
			}
			var payload map[string]any
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("⚠️ Dropping malformed event %s: %v", d.RoutingKey, err)
				d.Nack(false, false)
				continue
			}
			log.Printf("📣 %s %s", d.RoutingKey, d.Body)
			d.Ack(false)

		case <-quit:
			log.Println("✅ Notifier shutting down")
			return
		}
	}
}
