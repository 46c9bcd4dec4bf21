package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cppsniff/internal/config"
	"cppsniff/internal/report"
	"cppsniff/internal/smells"
	"cppsniff/internal/smells/commented"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Detector is the scanning surface the MCP tools expose
type Detector interface {
	ScanDirectory(ctx context.Context, root string) (*smells.Report, error)
	Classify(ctx context.Context, text string) commented.Verdict
}

type CommentedCodeServer struct {
	server   *mcp.Server
	detector Detector
	config   *config.Config
	logger   *zap.Logger
	handler  *mcp.StreamableHTTPHandler
}

type FindCommentedCodeParams struct {
	Dir string `json:"dir" jsonschema:"absolute path of the directory or file to scan"`
}

type ClassifyCommentParams struct {
	Text string `json:"text" jsonschema:"comment text with the comment delimiters removed"`
}

func NewCommentedCodeServer(detector Detector, cfg *config.Config, logger *zap.Logger) *CommentedCodeServer {
	server := &CommentedCodeServer{
		detector: detector,
		config:   cfg,
		logger:   logger,
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "cppsniff",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "findCommentedCode",
		Description: "Scan a directory of C/C++ sources for comments that contain commented-out code. Returns one line per finding with the file, line and column of the comment block",
	}, server.handleFindCommentedCode)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "classifyComment",
		Description: "Decide whether a piece of comment text is source code. Returns the verdict and the evidence behind it as JSON",
	}, server.handleClassifyComment)

	server.handler = mcp.NewStreamableHTTPHandler(func(req *http.Request) *mcp.Server {
		return mcpServer
	}, nil)

	server.server = mcpServer
	return server
}

// Handler returns the streamable HTTP handler serving the MCP protocol
func (s *CommentedCodeServer) Handler() http.Handler {
	return s.handler
}

func (s *CommentedCodeServer) handleFindCommentedCode(ctx context.Context, req *mcp.CallToolRequest, args FindCommentedCodeParams) (*mcp.CallToolResult, any, error) {
	s.logger.Info("Handling findCommentedCode request", zap.String("dir", args.Dir))

	if strings.TrimSpace(args.Dir) == "" {
		return textResult("A directory to scan is required"), nil, nil
	}

	rep, err := s.detector.ScanDirectory(ctx, args.Dir)
	if err != nil {
		s.logger.Error("Failed to scan directory", zap.String("dir", args.Dir), zap.Error(err))
		return textResult(fmt.Sprintf("Failed to scan %s: %v", args.Dir, err)), nil, nil
	}

	return textResult(s.formatReport(rep)), nil, nil
}

func (s *CommentedCodeServer) handleClassifyComment(ctx context.Context, req *mcp.CallToolRequest, args ClassifyCommentParams) (*mcp.CallToolResult, any, error) {
	s.logger.Debug("Handling classifyComment request", zap.Int("length", len(args.Text)))

	verdict := s.detector.Classify(ctx, args.Text)
	data, err := json.Marshal(verdict)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode verdict: %w", err)
	}

	return textResult(string(data)), nil, nil
}

func (s *CommentedCodeServer) formatReport(rep *smells.Report) string {
	found := rep.Smells()
	if len(found) == 0 && len(rep.Errors()) == 0 {
		return fmt.Sprintf("No commented code found in %d files.", rep.FilesScanned())
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Found %d commented code blocks in %d files (run %s):\n", len(found), rep.FilesScanned(), rep.RunID)
	if err := report.Write(&buf, report.FormatText, rep); err != nil {
		s.logger.Error("Failed to format report", zap.Error(err))
	}
	return buf.String()
}

// ListenAndServe serves the MCP endpoint on the configured address until
// ctx is cancelled
func (s *CommentedCodeServer) ListenAndServe(ctx context.Context) error {
	address := s.config.Mcp.GetAddress()
	srv := &http.Server{Addr: address, Handler: s.handler}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	s.logger.Info("MCP Server going to listen", zap.String("address", address))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
