// Package neo4j persists the chunk citation graph. Nodes are chunks, CITES
// edges follow the cross-reference links detected at chunking time.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/lexmx/legal-assistant/internal/core/domain"
)

type Graph struct {
	driver   neo4j.DriverWithContext
	database string
}

func New(uri, user, password, database string) (*Graph, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	return &Graph{driver: driver, database: database}, nil
}

func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// SaveCitations rewrites the document's subgraph: stale chunk nodes go first
// so re-ingestion cannot leave dangling edges.
func (g *Graph) SaveCitations(ctx context.Context, doc *domain.LegalDocument, chunks []domain.Chunk) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: g.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx,
			`MATCH (c:Chunk {document_id: $document_id}) DETACH DELETE c`,
			map[string]any{"document_id": doc.ID},
		); err != nil {
			return nil, fmt.Errorf("delete stale chunks: %w", err)
		}

		for _, chunk := range chunks {
			if _, err := tx.Run(ctx,
				`MERGE (c:Chunk {id: $id})
				 SET c.document_id = $document_id,
				     c.article = $article,
				     c.type = $type,
				     c.hierarchy = $hierarchy,
				     c.legal_area = $legal_area,
				     c.chunk_index = $chunk_index`,
				map[string]any{
					"id":          chunk.ID,
					"document_id": chunk.DocumentID,
					"article":     chunk.Metadata.Article,
					"type":        chunk.Metadata.Type,
					"hierarchy":   chunk.Metadata.Hierarchy,
					"legal_area":  chunk.Metadata.LegalArea,
					"chunk_index": chunk.Metadata.ChunkIndex,
				},
			); err != nil {
				return nil, fmt.Errorf("merge chunk %s: %w", chunk.ID, err)
			}
		}

		for _, chunk := range chunks {
			for _, targetID := range chunk.RelatedChunks {
				if _, err := tx.Run(ctx,
					`MATCH (from:Chunk {id: $from}), (to:Chunk {id: $to})
					 MERGE (from)-[:CITES]->(to)`,
					map[string]any{"from": chunk.ID, "to": targetID},
				); err != nil {
					return nil, fmt.Errorf("merge citation %s -> %s: %w", chunk.ID, targetID, err)
				}
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("save citations for %s: %w", doc.ID, err)
	}
	return nil
}

// CitedBy returns the ids of chunks citing the given chunk, most-linked
// first. Used by the API's related-provisions endpoint.
func (g *Graph) CitedBy(ctx context.Context, chunkID string) ([]string, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: g.database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx,
			`MATCH (from:Chunk)-[:CITES]->(to:Chunk {id: $id}) RETURN from.id AS id ORDER BY id`,
			map[string]any{"id": chunkID},
		)
		if err != nil {
			return nil, err
		}

		var ids []string
		for records.Next(ctx) {
			if v, ok := records.Record().Get("id"); ok {
				if id, ok := v.(string); ok {
					ids = append(ids, id)
				}
			}
		}
		return ids, records.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query citations of %s: %w", chunkID, err)
	}
	ids, _ := result.([]string)
	return ids, nil
}
