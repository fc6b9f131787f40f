package router

import (
	"io"

	"go-atm-engine/common"
	"go-atm-engine/handler"
)

// Router dispatches terminal lines to command handlers.
type Router struct {
	routes map[string]func(io.Writer, *handler.Request)
}

// NewRouter registers the commands of every non-nil handler. Commands that
// touch the ledger are wrapped in the auth middleware.
func NewRouter(sessionHandler *handler.SessionHandler, accountHandler *handler.AccountHandler, transactionHandler *handler.TransactionHandler, session handler.SessionChecker) *Router {
	rt := &Router{routes: make(map[string]func(io.Writer, *handler.Request))}

	rt.Handle("help", handler.Help)

	if sessionHandler != nil {
		rt.Handle("login", sessionHandler.Login)
		rt.Handle("logout", sessionHandler.Logout)
	}

	if accountHandler != nil {
		rt.Handle("balance", handler.AuthMiddleware(session, accountHandler.Balance))
		rt.Handle("deposit", handler.AuthMiddleware(session, accountHandler.Deposit))
		rt.Handle("withdraw", handler.AuthMiddleware(session, accountHandler.Withdraw))
		rt.Handle("history", handler.AuthMiddleware(session, accountHandler.History))
	}

	if transactionHandler != nil {
		rt.Handle("transfer", handler.AuthMiddleware(session, transactionHandler.CreateTransfer))
	}

	return rt
}

func (rt *Router) Handle(command string, h handler.HandlerFunc) {
	rt.routes[command] = handler.ErrorHandlingMiddleware(h)
}

// Dispatch runs one line. It returns false when the line asks the terminal
// to exit.
func (rt *Router) Dispatch(w io.Writer, line string) bool {
	req := handler.ParseRequest(line)
	if req == nil {
		return true
	}
	if req.Command == "exit" || req.Command == "quit" {
		return false
	}

	route, ok := rt.routes[req.Command]
	if !ok {
		common.NewAppError(common.CodeNotFound, "Unknown command "+req.Command+". Type 'help' for the list.", nil).Send(w)
		return true
	}
	route(w, req)
	return true
}
