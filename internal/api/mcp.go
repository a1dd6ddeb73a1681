package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/folio/internal/export"
)

// SummarySource provides a one-paragraph description of the loaded profile.
type SummarySource interface {
	GetSummary() (string, error)
}

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Generator     *export.Generator
	Profile       SummarySource // optional; enriches the server instructions
	DefaultLocale string
	OutputDir     string // where export_resume writes when no path is given
	Version       string
}

// NewMCPServer creates an MCP server with the résumé tools and resources registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s := server.NewMCPServer(
		"folio",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions(mcpInstructions(deps)),
		server.WithRecovery(),
	)

	locales := strings.Join(deps.Generator.Catalog().Locales(), ", ")

	s.AddTool(
		mcp.NewTool("resume_data",
			mcp.WithDescription("Return the localized résumé content (the document model the PDF is laid out from) as JSON."),
			mcp.WithString("locale", mcp.Description("Locale to render, one of: "+locales+". Defaults to "+deps.DefaultLocale)),
		),
		mcpResumeData(deps),
	)

	s.AddTool(
		mcp.NewTool("export_resume",
			mcp.WithDescription("Generate the résumé PDF for a locale and write it to disk."),
			mcp.WithString("locale", mcp.Description("Locale to render, one of: "+locales+". Defaults to "+deps.DefaultLocale)),
			mcp.WithString("path", mcp.Description("Output file or directory. Defaults to the configured output directory")),
		),
		mcpExportResume(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"resume://locales",
			"Résumé locales",
			mcp.WithResourceDescription("Locales a résumé can be generated in"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceLocales(deps),
	)

	return s
}

func mcpInstructions(deps MCPDeps) string {
	base := "folio generates a localized PDF résumé from a static profile."
	if deps.Profile == nil {
		return base
	}
	summary, err := deps.Profile.GetSummary()
	if err != nil {
		slog.Warn("profile summary unavailable", "error", err)
		return base
	}
	return base + " " + summary
}

func toolLocale(req mcp.CallToolRequest, deps MCPDeps) string {
	if l := strings.TrimSpace(req.GetString("locale", "")); l != "" {
		return l
	}
	return deps.DefaultLocale
}

func mcpResumeData(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := deps.Generator.Collect(ctx, toolLocale(req, deps))
		if err != nil {
			return mcpError(fmt.Sprintf("collecting resume data: %v", err)), nil
		}

		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal resume: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpExportResume(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := deps.Generator.Generate(ctx, toolLocale(req, deps))
		if err != nil {
			var genErr *export.GenerationError
			if errors.As(err, &genErr) {
				return mcpError(genErr.Message), nil
			}
			return mcpError(err.Error()), nil
		}

		path := outputPath(req.GetString("path", ""), deps.OutputDir, res.Filename)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return mcpError(fmt.Sprintf("creating output directory: %v", err)), nil
		}
		if err := res.PDF.Save(path); err != nil {
			return mcpError(fmt.Sprintf("failed to save: %v", err)), nil
		}

		return mcpText(fmt.Sprintf("Saved %d-page résumé (%s) to %s", res.PDF.PageCount(), res.Locale, path)), nil
	}
}

// outputPath resolves where a generated file goes. A requested path that is
// an existing directory, or ends with a separator, receives the default filename.
func outputPath(requested, dir, filename string) string {
	if requested == "" {
		if dir == "" {
			dir = "."
		}
		return filepath.Join(dir, filename)
	}
	if strings.HasSuffix(requested, string(os.PathSeparator)) {
		return filepath.Join(requested, filename)
	}
	if fi, err := os.Stat(requested); err == nil && fi.IsDir() {
		return filepath.Join(requested, filename)
	}
	return requested
}

func mcpResourceLocales(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list := localeList(Deps{Generator: deps.Generator, DefaultLocale: deps.DefaultLocale})
		b, err := json.Marshal(list)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal locales: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
