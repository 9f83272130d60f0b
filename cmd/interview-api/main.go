package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"

	goredis "github.com/redis/go-redis/v9"

	httpadapter "interview-agent/internal/adapters/http"
	"interview-agent/internal/adapters/llm"
	firestorestore "interview-agent/internal/adapters/storage/firestore"
	memstore "interview-agent/internal/adapters/storage/memory"
	redisstore "interview-agent/internal/adapters/storage/redis"
	"interview-agent/internal/app/interview"
	"interview-agent/internal/config"
	"interview-agent/internal/domain"
	"interview-agent/internal/persona"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// LLM: mock for dev, Gemini otherwise
	var (
		llmClient domain.LLMClient
		err       error
	)

	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Println("[LLM] Using Gemini LLM client")
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini LLM client: %v", err)
		}
	}

	// Storage: memory, Redis or Firestore
	var sessionStore domain.SessionStore
	var transcriptStore domain.TranscriptStore

	switch cfg.StorageBackend {
	case "redis":
		log.Printf("[STORE] Using Redis storage (addr=%s)", cfg.RedisAddr)
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}

		sessionStore = redisstore.NewSessionStore(client, cfg.SessionTTL)
		transcriptStore = redisstore.NewTranscriptStore(client, cfg.SessionTTL)

	case "firestore":
		if cfg.GCPProjectID == "" {
			log.Fatal("INTERVIEW_GCP_PROJECT is required for Firestore storage backend")
		}

		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 2 interfaces
		sessionStore = fsStore
		transcriptStore = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		memSessions := memstore.NewSessionStore(cfg.SessionTTL)
		defer memSessions.Close()

		sessionStore = memSessions
		transcriptStore = memstore.NewTranscriptStore()
	}

	// Optional dialect flavor layer, seeded so behavior is reproducible.
	var flavorer *persona.Flavorer
	if cfg.FlavorSeed != 0 {
		log.Printf("[PERSONA] Dialect flavor enabled (seed=%d)", cfg.FlavorSeed)
		flavorer = persona.NewFlavorer(rand.New(rand.NewSource(cfg.FlavorSeed)))
	}

	svc := interview.NewService(llmClient, sessionStore, transcriptStore, flavorer, cfg.ModelTimeout)

	handler := httpadapter.NewServer(svc)

	addr := ":" + cfg.Port
	log.Println("Interview API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
