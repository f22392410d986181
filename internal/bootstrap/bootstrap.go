// Package bootstrap wires infrastructure adapters into the use cases shared
// by the api, worker and mcp binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lexmx/legal-assistant/internal/config"
	"github.com/lexmx/legal-assistant/internal/core/ports"
	"github.com/lexmx/legal-assistant/internal/core/usecase"
	"github.com/lexmx/legal-assistant/internal/infrastructure/chunking"
	"github.com/lexmx/legal-assistant/internal/infrastructure/embedding/ollama"
	"github.com/lexmx/legal-assistant/internal/infrastructure/extractor"
	"github.com/lexmx/legal-assistant/internal/infrastructure/graph/neo4j"
	"github.com/lexmx/legal-assistant/internal/infrastructure/index"
	"github.com/lexmx/legal-assistant/internal/infrastructure/parser"
	natsqueue "github.com/lexmx/legal-assistant/internal/infrastructure/queue/nats"
	"github.com/lexmx/legal-assistant/internal/infrastructure/repository/postgres"
	"github.com/lexmx/legal-assistant/internal/infrastructure/resilience"
	"github.com/lexmx/legal-assistant/internal/infrastructure/storage/localfs"
	"github.com/lexmx/legal-assistant/internal/infrastructure/vector/memory"
	"github.com/lexmx/legal-assistant/internal/infrastructure/vector/qdrant"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue ports.MessageQueue
	Repo  *postgres.DocumentRepository

	IngestUC         ports.DocumentIngestor
	ProcessUC        ports.DocumentProcessor
	SearchUC         ports.SearchService
	KeywordRebuildUC *usecase.RebuildKeywordIndexUseCase

	closeFn func()
}

// Options carries per-binary collaborators that the shared wiring cannot
// decide on its own.
type Options struct {
	// ChunkingObserver receives chunk stats from the processing pipeline;
	// the worker plugs its Prometheus metrics in here.
	ChunkingObserver ports.ChunkingObserver
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig(), logger)

	queue, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
		ResilienceExecutor: executor,
		Logger:             logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	embedder := ollama.New(cfg.OllamaURL, cfg.OllamaEmbedModel, executor)

	// Without a Qdrant endpoint the in-process store keeps local and test
	// deployments functional; vectors then live only as long as the process.
	var vectorDB ports.VectorStore
	if cfg.QdrantURL != "" {
		vectorDB = qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)
	} else {
		logger.Warn("QDRANT_URL not set, using in-process vector store")
		vectorDB = memory.NewStore()
	}

	var graph ports.CitationGraph
	var graphClose func()
	if cfg.Neo4jURI != "" {
		neoGraph, err := neo4j.New(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			queue.Close()
			_ = db.Close()
			return nil, fmt.Errorf("init citation graph: %w", err)
		}
		graph = neoGraph
		graphClose = func() { _ = neoGraph.Close(context.Background()) }
	} else {
		logger.Warn("NEO4J_URI not set, citation graph disabled")
	}

	keyword := index.NewBM25Engine(index.DefaultBoosts())
	legalParser := parser.NewLegalParser()
	chunker := chunking.NewDocumentChunker(chunking.Config{
		MaxChunkSize:      cfg.MaxChunkSize,
		MinChunkSize:      cfg.MinChunkSize,
		OverlapSize:       cfg.ChunkOverlap,
		PreserveStructure: true,
	})
	textExtractor := extractor.NewExtractor(storage)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(
		repo, textExtractor, legalParser, chunker, embedder,
		vectorDB, keyword, graph, opts.ChunkingObserver, logger,
	)
	searchUC := usecase.NewHybridSearchUseCase(keyword, embedder, vectorDB, usecase.SearchConfig{
		SemanticWeight: cfg.SemanticWeight,
		KeywordWeight:  cfg.KeywordWeight,
		TopK:           cfg.SearchTopK,
		CandidateTopK:  cfg.SearchCandidates,
	}, logger)
	keywordRebuildUC := usecase.NewRebuildKeywordIndexUseCase(
		repo, repo, textExtractor, legalParser, chunker, keyword, logger,
	)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue: queue,
		Repo:  repo,

		IngestUC:         ingestUC,
		ProcessUC:        processUC,
		SearchUC:         searchUC,
		KeywordRebuildUC: keywordRebuildUC,

		closeFn: func() {
			queue.Close()
			if graphClose != nil {
				graphClose()
			}
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
