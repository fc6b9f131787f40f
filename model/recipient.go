package model

// RecipientKind is the shape of an outbound transfer target.
type RecipientKind string

const (
	RecipientName    RecipientKind = "name"
	RecipientAccount RecipientKind = "account"
	RecipientPhone   RecipientKind = "phone"
)

// TransactionKind maps a recipient kind to the record kind it produces.
func (k RecipientKind) TransactionKind() (TransactionKind, bool) {
	switch k {
	case RecipientName:
		return KindTransferByName, true
	case RecipientAccount:
		return KindTransferByAccountNumber, true
	case RecipientPhone:
		return KindTransferByPhone, true
	}
	return "", false
}

// Recipient is a normalized transfer target. Remarks only apply to phone
// transfers.
type Recipient struct {
	Kind    RecipientKind `json:"kind"`
	Value   string        `json:"value"`
	Remarks string        `json:"remarks,omitempty"`
}
