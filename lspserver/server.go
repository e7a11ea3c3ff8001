package lspserver

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple" // required backend for glsp

	"github.com/solidity-analyzer/solidity-analyzer/db"
	"github.com/solidity-analyzer/solidity-analyzer/foundrycfg"
	"github.com/solidity-analyzer/solidity-analyzer/paths"
	"github.com/solidity-analyzer/solidity-analyzer/vfs"
)

const serverName = "solidity-analyzer-lsp"

// Config holds server-wide overrides set from the command line.
type Config struct {
	// ProjectRoot overrides the workspace root inferred from the
	// initialize request, for hosts that do not report one.
	ProjectRoot string
	// ActiveProfile overrides the Foundry profile foundrycfg.Load selects.
	ActiveProfile string
}

// Server is the Solidity analyzer's LSP server: a thin transport skin
// translating glsp requests into synchronous db.Snapshot queries, per
// spec.md §1/§6. It owns exactly one db.Database and project, matching
// spec.md §3's "exactly one project per server in the basic case".
type Server struct {
	logger    *slog.Logger
	sessionID string
	config    Config
	handler   protocol.Handler
	server    *server.Server

	mu      sync.Mutex
	dbase   *db.Database
	project db.ProjectId
	root    paths.NormalizedPath
	byURI   map[string]vfs.FileId
	byFile  map[vfs.FileId]string

	shutdownCalled bool
	closeOnce      sync.Once
	closeErr       error
}

// NewServer creates a new Solidity analyzer language server. If logger is
// nil, slog.Default() is used.
func NewServer(logger *slog.Logger, cfg Config) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New().String()
	s := &Server{
		logger:    logger.With(slog.String("component", "server"), slog.String("session", id)),
		sessionID: id,
		config:    cfg,
		dbase:     db.New(),
		byURI:     make(map[string]vfs.FileId),
		byFile:    make(map[vfs.FileId]string),
	}

	// glsp requires commonlog at runtime; this server logs exclusively via
	// slog, so commonlog is silenced rather than wired to a second sink.
	commonlog.Configure(0, nil)

	s.handler = protocol.Handler{
		Initialize:    s.initialize,
		Initialized:   s.initialized,
		Shutdown:      s.shutdown,
		Exit:          s.exit,
		SetTrace:      s.setTrace,
		CancelRequest: s.cancelRequest,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentDefinition:     s.textDocumentDefinition,
		TextDocumentReferences:     s.textDocumentReferences,
		TextDocumentHover:          s.textDocumentHover,
		TextDocumentSignatureHelp:  s.textDocumentSignatureHelp,
		TextDocumentCompletion:     s.textDocumentCompletion,
		TextDocumentRename:         s.textDocumentRename,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
		TextDocumentFormatting:     s.textDocumentFormatting,
		TextDocumentCodeAction:     s.textDocumentCodeAction,
		WorkspaceSymbol:            s.workspaceSymbol,
	}

	s.server = server.NewServer(&s.handler, serverName, false)
	return s
}

// Handler exposes the protocol handler for tests.
func (s *Server) Handler() *protocol.Handler { return &s.handler }

// RunStdio runs the server over stdio transport.
func (s *Server) RunStdio() error {
	if err := s.server.RunStdio(); err != nil {
		return fmt.Errorf("run stdio: %w", err)
	}
	return nil
}

// Shutdown logs the intent to shut down; the database holds no resources
// that need releasing beyond normal garbage collection.
func (s *Server) Shutdown() {
	s.logger.Info("initiating shutdown")
}

// Close closes the JSON-RPC connection, causing RunStdio to return. It is
// idempotent, mirroring the teacher's own Close contract.
func (s *Server) Close() error {
	conn := s.server.GetStdio()
	if conn == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		if err := conn.Close(); err != nil {
			s.closeErr = fmt.Errorf("close connection: %w", err)
		}
	})
	return s.closeErr
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	root := s.config.ProjectRoot
	switch {
	case root != "":
	case params.RootURI != nil:
		if p, err := uriToPath(*params.RootURI); err == nil {
			root = p.String()
		}
	case len(params.WorkspaceFolders) > 0:
		if p, err := uriToPath(params.WorkspaceFolders[0].URI); err == nil {
			root = p.String()
		}
	case params.RootPath != nil:
		root = *params.RootPath
	}

	s.logger.Info("initialize request received", slog.String("root", root))

	if root != "" {
		s.loadProject(paths.New(root))
	}

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	if opts, ok := capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions); ok {
		opts.Change = &syncKind
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{".", "\""},
	}
	capabilities.SignatureHelpProvider = &protocol.SignatureHelpOptions{
		TriggerCharacters: []string{"(", ","},
	}

	version := "dev"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

// loadProject reads Foundry configuration for root (spec.md §6.1) and
// registers the resulting ProjectInput as the server's single project.
func (s *Server) loadProject(root paths.NormalizedPath) {
	input, err := foundrycfg.Load(foundrycfg.OSFileSystem{}, root, s.config.ActiveProfile)
	if err != nil {
		s.logger.Warn("failed to load foundry config, using conventional layout", slog.String("error", err.Error()))
		input = db.ProjectInput{Workspace: db.Workspace{Root: root, Src: root.Join("src"), Lib: root.Join("lib"), Test: root.Join("test"), Script: root.Join("script")}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
	if s.project.IsZero() {
		s.project = s.dbase.NewProjectID()
	}
	s.dbase.SetProject(s.project, input)
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("server initialized")
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.logger.Info("shutdown request received")
	s.shutdownCalled = true
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) exit(_ *glsp.Context) error {
	code := 0
	if !s.shutdownCalled {
		s.logger.Warn("exit called without shutdown")
		code = 1
	}
	s.logger.Info("exit notification received", slog.Int("exit_code", code))
	os.Exit(code)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) cancelRequest(_ *glsp.Context, params *protocol.CancelParams) error {
	s.logger.Debug("cancelRequest", slog.Any("id", params.ID))
	return nil
}

// snapshot returns the current database snapshot and the server's project.
func (s *Server) snapshot() (*db.Snapshot, db.ProjectId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dbase.Snapshot(), s.project
}

// fileForURI returns the FileId and path tracked for uri, or false if uri
// has not been recorded by applyChange; it allocates nothing itself.
func (s *Server) fileForURI(uri string) (vfs.FileId, paths.NormalizedPath, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byURI[uri]
	if !ok {
		return 0, paths.NormalizedPath{}, false
	}
	p, _ := uriToPath(uri)
	return id, p, true
}
