package columns

// Role is one of the canonical field roles a statement column can satisfy.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleDebit       Role = "debit"
	RoleCredit      Role = "credit"
	RoleBalance     Role = "balance"
	// RoleAmount is the single signed amount column some banks use instead
	// of separate debit/credit columns. Tried only when neither resolves.
	RoleAmount Role = "amount"
)

// resolveOrder is the first-role-priority ordering: a header claimed by an
// earlier role can never be claimed by a later one.
var resolveOrder = []Role{RoleDate, RoleDescription, RoleDebit, RoleCredit, RoleBalance}

// SynonymTable maps each role to the header vocabulary that satisfies it.
// It is plain passed-in configuration: callers supporting a new bank extend
// a copy rather than mutating shared state.
type SynonymTable map[Role][]string

// DefaultSynonyms returns the built-in vocabulary. The fragment entries
// ("drawals", "posits", "alance") tolerate headers truncated by broken PDF
// table extraction.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		RoleDate:        {"date", "trans date", "transaction date", "posted date", "posting date", "value date", "tran date"},
		RoleDescription: {"description", "memo", "details", "merchant", "name", "payee", "particulars", "narration"},
		RoleDebit:       {"debit", "withdrawal", "withdrawals", "dr", "paid out", "drawals", "money out"},
		RoleCredit:      {"credit", "deposit", "deposits", "cr", "paid in", "posits", "money in"},
		RoleBalance:     {"balance", "running balance", "available balance", "alance"},
		RoleAmount:      {"amount", "transaction amount", "value"},
	}
}

// Extend returns a copy of the table with extra synonyms appended to role.
// The receiver is left untouched.
func (t SynonymTable) Extend(role Role, synonyms ...string) SynonymTable {
	out := make(SynonymTable, len(t))
	for r, syns := range t {
		out[r] = append([]string(nil), syns...)
	}
	out[role] = append(out[role], synonyms...)
	return out
}
