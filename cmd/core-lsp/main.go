// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"corelang/internal/lsp"
)

const lsName = "core-lsp"

var (
	version = "0.1.0"
	handler protocol.Handler
	log     = commonlog.GetLogger("core.lsp.main")
)

func main() {
	// Logs go to stderr; stdout carries the protocol.
	commonlog.Configure(1, nil)

	coreHandler := lsp.NewCoreHandler(lsName, version)

	handler = protocol.Handler{
		Initialize:                     coreHandler.Initialize,
		Initialized:                    coreHandler.Initialized,
		Shutdown:                       coreHandler.Shutdown,
		SetTrace:                       coreHandler.SetTrace,
		TextDocumentDidOpen:            coreHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           coreHandler.TextDocumentDidClose,
		TextDocumentDidChange:          coreHandler.TextDocumentDidChange,
		TextDocumentCompletion:         coreHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: coreHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s %s", lsName, version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("%s stopped: %s", lsName, err)
		os.Exit(1)
	}
}
