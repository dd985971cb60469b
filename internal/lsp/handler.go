package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"corelang/internal/lexer"
)

var log = commonlog.GetLogger("core.lsp")

// SemanticTokenTypes is the legend advertised to the client; indexes match
// the token* constants.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"operator",
}

var SemanticTokenModifiers = []string{
	"declaration",
}

// CoreHandler implements the LSP server handlers for Core. Documents are
// kept in memory as sent by the client; nothing is read from disk.
type CoreHandler struct {
	name    string
	version string

	mu      sync.RWMutex
	content map[string]string
	tokens  map[string][]lexer.Token
}

func NewCoreHandler(name, version string) *CoreHandler {
	return &CoreHandler{
		name:    name,
		version: version,
		content: make(map[string]string),
		tokens:  make(map[string][]lexer.Token),
	}
}

// Initialize advertises the server's capabilities
func (h *CoreHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    h.name,
			Version: &h.version,
		},
	}, nil
}

func (h *CoreHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *CoreHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *CoreHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *CoreHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("opened %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (h *CoreHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	h.mu.RLock()
	text := h.content[uri]
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, c)
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}
	return h.update(ctx, uri, text)
}

func (h *CoreHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Infof("closed %s", uri)

	h.mu.Lock()
	delete(h.content, uri)
	delete(h.tokens, uri)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// TextDocumentCompletion offers keywords and the identifiers of the
// document, ranked against the word being typed.
func (h *CoreHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := params.TextDocument.URI

	h.mu.RLock()
	text, tokens := h.content[uri], h.tokens[uri]
	h.mu.RUnlock()

	prefix := wordBefore(text, params.Position)
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(prefix, tokens),
	}, nil
}

func (h *CoreHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := params.TextDocument.URI

	h.mu.RLock()
	tokens, ok := h.tokens[uri]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("document %s is not open", uri)
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(tokens)),
	}, nil
}

func (h *CoreHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	filename, err := uriToPath(uri)
	if err != nil {
		return err
	}

	tokens := lexer.Scan([]byte(text))
	h.mu.Lock()
	h.content[uri] = text
	h.tokens[uri] = tokens
	h.mu.Unlock()

	diagnostics := Diagnose(filename, text)
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

func completionItems(prefix string, tokens []lexer.Token) []protocol.CompletionItem {
	kinds := make(map[string]protocol.CompletionItemKind)
	for keyword := range lexer.KEYWORDS {
		kinds[keyword] = protocol.CompletionItemKindKeyword
	}
	for _, tok := range tokens {
		if tok.Type == lexer.IDENTIFIER && tok.Lexeme != prefix {
			kinds[tok.Lexeme] = protocol.CompletionItemKindVariable
		}
	}

	candidates := make([]string, 0, len(kinds))
	for label := range kinds {
		candidates = append(candidates, label)
	}
	sort.Strings(candidates)

	if prefix != "" {
		ranks := fuzzy.RankFindFold(prefix, candidates)
		sort.Stable(ranks)
		candidates = candidates[:0]
		for _, rank := range ranks {
			candidates = append(candidates, rank.Target)
		}
	}

	items := make([]protocol.CompletionItem, 0, len(candidates))
	for i, label := range candidates {
		kind := kinds[label]
		sortText := fmt.Sprintf("%04d", i)
		items = append(items, protocol.CompletionItem{
			Label:    label,
			Kind:     &kind,
			SortText: &sortText,
		})
	}
	return items
}

// wordBefore returns the letters and digits right before pos.
func wordBefore(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	end := min(int(pos.Character), len(line))

	start := end
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	return line[start:end]
}

func isWordByte(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// applyChange splices an incremental edit into text.
func applyChange(text string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}
	start := offsetOf(text, change.Range.Start)
	end := offsetOf(text, change.Range.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + change.Text + text[end:]
}

func offsetOf(text string, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			return len(text)
		}
		offset += next + 1
	}
	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - offset
	}
	return offset + min(int(pos.Character), lineEnd)
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) to get C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
