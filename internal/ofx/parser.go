// Package ofx turns OFX/QFX bank and credit card statements into ledger
// entries.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Veraticus/finanzas/internal/common"
	"github.com/Veraticus/finanzas/internal/ledger"
	"github.com/Veraticus/finanzas/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// Entry is one statement line ready for the ledger.
type Entry struct {
	FITID     string
	AccountID string
	TrnType   string
	Name      string
	ledger.NewTransaction
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// An SGML opening tag at end of line with its closing bracket missing.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN or ERROR
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, common.NewImportFormatError("not a valid OFX statement", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX statement. Lines with a zero amount are
// skipped and lines repeated within the file are kept once.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var (
		entries            []Entry
		bankStmts, ccStmts int
		seen               = make(map[string]bool)
	)
	add := func(accountID string, list *ofxgo.TransactionList) {
		if list == nil {
			return
		}
		for _, ofxTx := range list.Transactions {
			entry, ok := p.convertTransaction(ofxTx, accountID)
			if !ok {
				slog.Debug("Skipping zero-amount OFX line", "fitid", entry.FITID)
				continue
			}
			key := accountID + "/" + entry.FITID
			if entry.FITID != "" && seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, entry)
		}
	}

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			add(string(stmt.BankAcctFrom.AcctID), stmt.BankTranList)
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			add(string(stmt.CCAcctFrom.AcctID), stmt.BankTranList)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

// convertTransaction maps an OFX line to an entry. OFX signs debits
// negative; those become expenses and everything else income.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (Entry, bool) {
	entry := Entry{
		FITID:     string(ofxTx.FiTID),
		AccountID: accountID,
		TrnType:   fmt.Sprintf("%v", ofxTx.TrnType),
		Name:      string(ofxTx.Name),
	}

	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(4))
	if err != nil || amount.IsZero() {
		return entry, false
	}

	merchant := p.extractMerchantName(ofxTx)
	txType := model.TypeIncome
	if amount.IsNegative() {
		txType = model.TypeExpense
	}

	entry.NewTransaction = ledger.NewTransaction{
		Type:        txType,
		Amount:      amount.Abs(),
		Category:    Categorize(txType, entry.TrnType, merchant),
		Description: merchant,
		Date:        ofxTx.DtPosted.Time,
	}
	return entry, true
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually the cleanest merchant name
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
		"COMPRA POS ",
		"COMPRA EN ",
		"PAGO PSE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " date stamps
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
		"COMPRA",
		"PAGO",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// GetAccounts extracts unique account IDs from the OFX file.
func (p *Parser) GetAccounts(_ context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]bool)
	var accounts []string
	addAccount := func(id ofxgo.String) {
		if id == "" || accountMap[string(id)] {
			return
		}
		accountMap[string(id)] = true
		accounts = append(accounts, string(id))
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			addAccount(stmt.BankAcctFrom.AcctID)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			addAccount(stmt.CCAcctFrom.AcctID)
		}
	}

	return accounts, nil
}

// NewTransactions strips the OFX metadata from entries.
func NewTransactions(entries []Entry) []ledger.NewTransaction {
	out := make([]ledger.NewTransaction, len(entries))
	for i, e := range entries {
		out[i] = e.NewTransaction
	}
	return out
}
