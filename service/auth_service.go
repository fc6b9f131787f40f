package service

import (
	"fmt"
	"sync"
	"time"

	"go-atm-engine/common"
	"go-atm-engine/logger"
	"go-atm-engine/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const transferPasscodeRule = "required,number,len=4|len=6"

// OpenAccountParams carries the plain credentials an account is opened with.
type OpenAccountParams struct {
	HolderID         string
	PIN              string
	PINLength        int
	TransferPasscode string
	OpeningBalance   decimal.Decimal
	BcryptCost       int
}

// OpenAccount validates the credentials and opening balance and returns an
// account holding only the credential hashes.
func OpenAccount(p OpenAccountParams) (*model.Account, error) {
	if p.PINLength <= 0 {
		p.PINLength = 4
	}
	if err := common.Validator().Var(p.PIN, fmt.Sprintf("required,number,len=%d", p.PINLength)); err != nil {
		return nil, fmt.Errorf("pin must be %d digits: %w", p.PINLength, ErrMalformedCredential)
	}
	if err := common.Validator().Var(p.TransferPasscode, transferPasscodeRule); err != nil {
		return nil, fmt.Errorf("transfer passcode must be 4 or 6 digits: %w", ErrMalformedCredential)
	}
	if p.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("opening balance cannot be negative: %w", ErrInvalidAmount)
	}

	pinHash, err := HashCredential(p.PIN, p.BcryptCost)
	if err != nil {
		return nil, err
	}
	passcodeHash, err := HashCredential(p.TransferPasscode, p.BcryptCost)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"holder_id":       p.HolderID,
		"opening_balance": p.OpeningBalance.String(),
	}).Info("Account opened")

	return &model.Account{
		HolderID:             p.HolderID,
		Balance:              p.OpeningBalance,
		PINHash:              pinHash,
		TransferPasscodeHash: passcodeHash,
		OpenedAt:             time.Now(),
	}, nil
}

func HashCredential(secret string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash credential")
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(bytes), nil
}

func CheckCredentialHash(secret, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// AuthService is the session gate in front of the ledger. The session has two
// states and starts unauthenticated.
type AuthService struct {
	account *model.Account

	mu            sync.RWMutex
	authenticated bool
}

func NewAuthService(account *model.Account) *AuthService {
	return &AuthService{account: account}
}

// Authenticate opens the session if pin matches the account PIN. A failed
// attempt leaves the session unauthenticated, closing it if it was open.
func (s *AuthService) Authenticate(pin string) (model.AuthResult, error) {
	return s.authenticate(CheckCredentialHash(pin, s.account.PINHash))
}

// AuthenticateHolder is Authenticate for terminals that also ask for the card
// holder id. A wrong id is reported the same way as a wrong PIN.
func (s *AuthService) AuthenticateHolder(holderID, pin string) (model.AuthResult, error) {
	ok := CheckCredentialHash(pin, s.account.PINHash)
	return s.authenticate(ok && holderID == s.account.HolderID)
}

func (s *AuthService) authenticate(ok bool) (model.AuthResult, error) {
	s.mu.Lock()
	s.authenticated = ok
	s.mu.Unlock()

	log := logger.Log.WithField("holder_id", s.account.HolderID)
	if !ok {
		log.Warn("Login rejected: incorrect PIN")
		return model.AuthResult{Reason: ErrIncorrectCredential}, ErrIncorrectCredential
	}
	log.Info("Session authenticated")
	return model.AuthResult{OK: true}, nil
}

// Logout closes the session. It is safe to call on a closed session.
func (s *AuthService) Logout() {
	s.mu.Lock()
	wasOpen := s.authenticated
	s.authenticated = false
	s.mu.Unlock()

	if wasOpen {
		logger.Log.WithField("holder_id", s.account.HolderID).Info("Session closed")
	}
}

func (s *AuthService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// AuthorizeTransfer checks the secondary passcode required for outbound
// transfers. The shape is checked before the value, so a passcode that could
// never be valid is reported as malformed rather than incorrect.
func (s *AuthService) AuthorizeTransfer(passcode string) (model.AuthResult, error) {
	if err := common.Validator().Var(passcode, transferPasscodeRule); err != nil {
		return model.AuthResult{Reason: ErrMalformedCredential}, ErrMalformedCredential
	}
	if !CheckCredentialHash(passcode, s.account.TransferPasscodeHash) {
		logger.Log.WithField("holder_id", s.account.HolderID).Warn("Transfer authorization rejected")
		return model.AuthResult{Reason: ErrIncorrectCredential}, ErrIncorrectCredential
	}
	return model.AuthResult{OK: true}, nil
}
