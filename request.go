package blazingagi

import "github.com/curatorsigma/blazing-agi/handler"

// Request and Handler are re-exported from the handler package, where
// they must live to avoid an import cycle (router.Router needs
// Handler, and Serve needs router.Router; see DESIGN.md). The aliases
// let callers write blazingagi.Handler/blazingagi.Request instead of
// reaching into the handler package directly, mirroring the crate's
// root-level pub use.
type Request = handler.Request
type Handler = handler.Handler
type HandlerFunc = handler.HandlerFunc
