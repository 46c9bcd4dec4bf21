package store

import (
	"context"
	"fmt"
	"sync"

	"cppsniff/internal/model/token"
	"cppsniff/internal/smells"

	"github.com/google/uuid"
	"github.com/kuzudb/go-kuzu"
	"go.uber.org/zap"
)

// MemoryPath opens a store that lives only as long as the process
const MemoryPath = ":memory:"

const startedAtLayout = "2006-01-02T15:04:05.000000000Z"

var schema = []string{
	`CREATE NODE TABLE IF NOT EXISTS ScanRun (
			id STRING,
			root STRING,
			strategy STRING,
			started_at STRING,
			files_scanned INT64,
			PRIMARY KEY (id))`,
	`CREATE NODE TABLE IF NOT EXISTS Finding (
			id STRING,
			run_id STRING,
			smell_type STRING,
			file STRING,
			line INT64,
			col INT64,
			description STRING,
			snippet STRING,
			PRIMARY KEY (id))`,
	`CREATE REL TABLE IF NOT EXISTS FOUND_IN (FROM Finding TO ScanRun)`,
}

// KuzuStore keeps the history of scan runs and their findings in an
// embedded Kuzu graph database
type KuzuStore struct {
	mu     sync.Mutex
	db     *kuzu.Database
	conn   *kuzu.Connection
	logger *zap.Logger
}

// Open opens or creates the store at path. MemoryPath gives an in-memory store.
func Open(path string, logger *zap.Logger) (*KuzuStore, error) {
	var db *kuzu.Database
	var err error

	if path == MemoryPath || path == "" {
		db, err = kuzu.OpenInMemoryDatabase(kuzu.DefaultSystemConfig())
	} else {
		db, err = kuzu.OpenDatabase(path, kuzu.DefaultSystemConfig())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Kuzu database: %w", err)
	}

	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create Kuzu connection: %w", err)
	}

	s := &KuzuStore{db: db, conn: conn, logger: logger}
	for _, stmt := range schema {
		if _, err := s.execute(stmt, nil); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize Kuzu schema: %w", err)
		}
	}

	logger.Info("Opened finding store", zap.String("path", path))
	return s, nil
}

// Close releases the connection and the database
func (s *KuzuStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	return nil
}

// SaveReport writes the run and every finding in one transaction
func (s *KuzuStore) SaveReport(ctx context.Context, report *smells.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.execute("BEGIN TRANSACTION", nil); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.saveReport(ctx, report); err != nil {
		if _, rbErr := s.execute("ROLLBACK", nil); rbErr != nil {
			s.logger.Error("Failed to roll back scan run", zap.String("run_id", report.RunID), zap.Error(rbErr))
		}
		return err
	}

	if _, err := s.execute("COMMIT", nil); err != nil {
		return fmt.Errorf("failed to commit scan run %s: %w", report.RunID, err)
	}

	s.logger.Debug("Stored scan run",
		zap.String("run_id", report.RunID),
		zap.Int("findings", len(report.Smells())))
	return nil
}

func (s *KuzuStore) saveReport(ctx context.Context, report *smells.Report) error {
	_, err := s.execute(
		`CREATE (:ScanRun {id: $id, root: $root, strategy: $strategy, started_at: $started_at, files_scanned: $files_scanned})`,
		map[string]any{
			"id":            report.RunID,
			"root":          report.Root,
			"strategy":      report.Strategy,
			"started_at":    report.StartedAt.UTC().Format(startedAtLayout),
			"files_scanned": int64(report.FilesScanned()),
		})
	if err != nil {
		return fmt.Errorf("failed to store scan run %s: %w", report.RunID, err)
	}

	for _, smell := range report.Smells() {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := s.execute(
			`MATCH (r:ScanRun {id: $run_id})
			 CREATE (f:Finding {id: $id, run_id: $run_id, smell_type: $smell_type, file: $file, line: $line, col: $col, description: $description, snippet: $snippet})-[:FOUND_IN]->(r)`,
			map[string]any{
				"id":          uuid.NewString(),
				"run_id":      report.RunID,
				"smell_type":  string(smell.Type),
				"file":        smell.Location.File,
				"line":        int64(smell.Location.Line),
				"col":         int64(smell.Location.Column),
				"description": smell.Description,
				"snippet":     smell.Text,
			})
		if err != nil {
			return fmt.Errorf("failed to store finding at %s: %w", smell.Location, err)
		}
	}
	return nil
}

// ListFindings returns the findings of a run ordered by file then position
func (s *KuzuStore) ListFindings(ctx context.Context, runID string) ([]smells.Smell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.execute(
		`MATCH (f:Finding)-[:FOUND_IN]->(r:ScanRun {id: $run_id})
		 RETURN f.smell_type AS smell_type, f.file AS file, f.line AS line, f.col AS col,
		        f.description AS description, f.snippet AS snippet
		 ORDER BY file, line, col`,
		map[string]any{"run_id": runID})
	if err != nil {
		return nil, fmt.Errorf("failed to list findings of run %s: %w", runID, err)
	}

	found := make([]smells.Smell, 0, len(records))
	for _, rec := range records {
		found = append(found, smells.Smell{
			Type:        smells.SmellType(asString(rec["smell_type"])),
			Description: asString(rec["description"]),
			Location: token.Location{
				File:   asString(rec["file"]),
				Line:   asInt(rec["line"]),
				Column: asInt(rec["col"]),
			},
			Text: asString(rec["snippet"]),
		})
	}
	return found, nil
}

// LatestRunID returns the most recent run, or "" when nothing is stored
func (s *KuzuStore) LatestRunID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.execute(
		`MATCH (r:ScanRun) RETURN r.id AS id ORDER BY r.started_at DESC LIMIT 1`, nil)
	if err != nil {
		return "", fmt.Errorf("failed to find latest run: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}
	return asString(records[0]["id"]), nil
}

// execute runs a query and collects the rows. Callers hold s.mu.
func (s *KuzuStore) execute(query string, params map[string]any) ([]map[string]any, error) {
	if s.conn == nil {
		return nil, fmt.Errorf("store is closed")
	}

	var result *kuzu.QueryResult
	var err error

	if len(params) > 0 {
		preparedStatement, err := s.conn.Prepare(query)
		if err != nil {
			s.logger.Error("Failed to prepare Kuzu query", zap.String("query", query), zap.Error(err))
			return nil, fmt.Errorf("failed to prepare query: %w", err)
		}
		defer preparedStatement.Close()

		result, err = s.conn.Execute(preparedStatement, params)
		if err != nil {
			s.logger.Error("Failed to execute Kuzu query", zap.String("query", query), zap.Error(err))
			return nil, fmt.Errorf("failed to execute query: %w", err)
		}
	} else {
		result, err = s.conn.Query(query)
		if err != nil {
			s.logger.Error("Failed to execute Kuzu query", zap.String("query", query), zap.Error(err))
			return nil, fmt.Errorf("failed to execute query: %w", err)
		}
	}
	defer result.Close()

	var records []map[string]any
	for result.HasNext() {
		tuple, err := result.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to get next result row: %w", err)
		}
		record, err := tuple.GetAsMap()
		if err != nil {
			return nil, fmt.Errorf("failed to convert tuple to map: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int32:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

