// feedgen publishes a synthetic transaction/label/score feed to Kafka for
// local development and load testing.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"
)

func main() {
	brokers := flag.String("brokers", "localhost:9092", "Comma-separated Kafka brokers")
	topic := flag.String("topic", "feed-events", "Feed topic")
	eps := flag.Int("eps", 200, "Events per second limit")
	duration := flag.Duration("d", 30*time.Second, "Duration of the run")
	merchants := flag.Int("merchants", 25, "Number of distinct merchants")
	flagRate := flag.Float64("flag-rate", 0.05, "Fraction of transactions that get a fraud score")
	labelRate := flag.Float64("label-rate", 0.10, "Fraction of transactions that get an analyst label")
	flag.Parse()

	log.Printf("Publishing synthetic feed to %s/%s", *brokers, *topic)
	log.Printf("EPS: %d, Duration: %s, Merchants: %d", *eps, *duration, *merchants)

	writer := &kafka.Writer{
		Addr:     kafka.TCP(*brokers),
		Topic:    *topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer writer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*eps), 50)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var txID int64
	var published int
	for {
		if err := limiter.Wait(ctx); err != nil {
			break // deadline reached
		}

		txID++
		now := time.Now().UTC().Format("2006-01-02 15:04:05")
		envelopes := [][]byte{mustJSON(map[string]interface{}{
			"kind": "transaction",
			"transaction": map[string]interface{}{
				"tx_id":       txID,
				"tx_utc":      now,
				"amount":      fmt.Sprintf("%.2f", 1+rng.Float64()*499),
				"currency":    "ZAR",
				"merchant_id": 1 + rng.Int63n(int64(*merchants)),
				"channel":     "ecom",
				"status":      "Settled",
			},
		})}

		if rng.Float64() < *flagRate {
			envelopes = append(envelopes, mustJSON(map[string]interface{}{
				"kind": "score",
				"score": map[string]interface{}{
					"tx_id":      txID,
					"run_id":     1,
					"score":      0.5 + rng.Float64()*0.5,
					"label_pred": true,
				},
			}))
		}
		if rng.Float64() < *labelRate {
			envelopes = append(envelopes, mustJSON(map[string]interface{}{
				"kind": "label",
				"label": map[string]interface{}{
					"tx_id":      txID,
					"label":      rng.Float64() < 0.5,
					"labeled_at": now,
					"source":     "analyst",
				},
			}))
		}

		msgs := make([]kafka.Message, len(envelopes))
		for i, env := range envelopes {
			msgs[i] = kafka.Message{Value: env}
		}
		if err := writer.WriteMessages(ctx, msgs...); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("write failed: %v", err)
			continue
		}
		published += len(msgs)
	}

	log.Printf("Done. Published %d events.", published)
}

func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
