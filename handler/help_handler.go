package handler

import (
	"fmt"
	"io"

	"go-atm-engine/common"
)

const helpText = `Commands:
  login <pin>                       log in (login <user-id> <pin> on card terminals)
  logout                            end the session
  balance                           show the current balance
  deposit <amount>                  deposit money
  withdraw <amount>                 withdraw money
  transfer name <name> <amount> <passcode>   quote names with spaces: "John Smith"
  transfer account <number> <amount> <passcode>
  transfer phone <number> <amount> <passcode> [remarks]
  history [limit]                   recent transactions, newest first
  help                              show this list
  exit                              leave the terminal`

// Help prints the command list. It needs no session.
func Help(w io.Writer, r *Request) *common.AppError {
	fmt.Fprintln(w, helpText)
	return nil
}
