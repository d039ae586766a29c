package wallet

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/nhle/prodowl/internal/web3"
)

var errorMessages = []struct {
	err error
	msg string
}{
	{web3.ErrNoWallet, "No wallet found. Please install MetaMask or another Web3 wallet."},
	{web3.ErrUserRejected, "User rejected the connection request"},
	{web3.ErrChainNotSupported, "Chain not supported for switching"},
	{web3.ErrNoAccount, "No account connected"},
	{web3.ErrTaskNotFound, "Task not found"},
}

// Describe renders a wallet error as a sentence for the user. Errors it
// does not know keep their text with the first letter raised.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	for _, e := range errorMessages {
		if errors.Is(err, e.err) {
			return e.msg
		}
	}
	s := err.Error()
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
