package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/daybook/daybook/internal/config"
	"github.com/daybook/daybook/internal/domain/planner"
	"github.com/daybook/daybook/internal/events"
	"github.com/daybook/daybook/internal/repositories/documents"
	"github.com/daybook/daybook/internal/services"
	plannerService "github.com/daybook/daybook/internal/services/planner"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	bus := events.NewBus()
	if err := bus.SetHistoryCapacity(cfg.Planner.HistoryCapacity); err != nil {
		log.Fatalf("Invalid history capacity: %v", err)
	}

	// Diagnostics collaborator: everything that goes wrong inside
	// listeners or validation surfaces here
	bus.Subscribe(events.EventTypeError, func(evt events.Event) error {
		if p, ok := evt.Payload.(*events.ErrorPayload); ok {
			log.Printf("Diagnostics: %s: %v", p.Context, p.Err)
		}
		return nil
	})

	docRepo, redisClient := newDocumentRepository(cfg)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Failed to close Redis client: %v", err)
			}
		}()
	}

	provider := services.NewProvider(&services.ProviderConfig{
		Bus:                bus,
		DocumentRepository: docRepo,
		DisableAutosave:    !cfg.Planner.AutosaveEnabled,
	})

	ctx := context.Background()
	doc, err := ensureTodayDocument(ctx, provider.PlannerService)
	if err != nil {
		log.Fatalf("Failed to prepare today's document: %v", err)
	}

	printSummary(doc, bus)
}

// newDocumentRepository connects to Redis when configured, falling back
// to the in-memory repository otherwise
func newDocumentRepository(cfg *config.Config) (documents.Repository, *redis.Client) {
	var opts *redis.Options

	switch {
	case cfg.Redis.URL != "":
		parsed, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Printf("Failed to parse Redis URL: %v", err)
			log.Println("Falling back to in-memory repository")
			return documents.NewInMemoryRepository(), nil
		}
		opts = parsed
	case cfg.Redis.Addr != "":
		opts = &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
	default:
		return documents.NewInMemoryRepository(), nil
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Falling back to in-memory repository")
		_ = client.Close()
		return documents.NewInMemoryRepository(), nil
	}

	log.Printf("Connected to Redis at %s", opts.Addr)
	return documents.NewRedis(client), client
}

// ensureTodayDocument opens today's planner document, creating it with a
// starter section on first run
func ensureTodayDocument(ctx context.Context, svc plannerService.Service) (*planner.Document, error) {
	title := time.Now().Format("Monday, January 2")

	docs, err := svc.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.Title == title {
			return svc.OpenDocument(ctx, d.ID)
		}
	}

	doc, err := svc.CreateDocument(ctx, &plannerService.CreateDocumentInput{Title: title})
	if err != nil {
		return nil, err
	}

	section, err := svc.AddSection(ctx, doc.ID, &plannerService.AddSectionInput{Title: "Today"})
	if err != nil {
		return nil, err
	}
	if _, err := svc.AddItem(ctx, doc.ID, section.ID, "Plan the day"); err != nil {
		return nil, err
	}

	return doc, nil
}

// printSummary writes the document's checklist state and the session's
// event history to stdout
func printSummary(doc *planner.Document, bus *events.Bus) {
	fmt.Printf("%s — %d/%d done\n", doc.Title, doc.DoneCount(), doc.ItemCount())
	for _, section := range doc.Sections {
		fmt.Printf("  %s\n", section.Title)
		for _, item := range section.Items {
			mark := " "
			if item.Done {
				mark = "x"
			}
			fmt.Printf("    [%s] %s\n", mark, item.Text)
		}
	}

	history := bus.History()
	fmt.Printf("%d events published this session:\n", len(history))
	for _, evt := range history {
		fmt.Printf("  %s  %s\n", evt.Timestamp.Format(time.TimeOnly), evt.Type)
	}
}
